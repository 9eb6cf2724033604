package workload

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	commentCode
	integerCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	commentToken    = parsly.NewToken(commentCode, "Comment", &commentMatcher{})
	integerToken    = parsly.NewToken(integerCode, "Integer", &integerMatcher{})
)

// commentMatcher matches '#' up to, not including, the line break
type commentMatcher struct{}

func (m *commentMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	if pos >= cursor.InputSize || input[pos] != '#' {
		return 0
	}
	matched := 1
	for i := pos + 1; i < cursor.InputSize && input[i] != '\n'; i++ {
		matched++
	}
	return matched
}

// integerMatcher matches an optionally signed decimal integer
type integerMatcher struct{}

func (m *integerMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos >= size {
		return 0
	}
	start := pos
	if input[pos] == '-' || input[pos] == '+' {
		start++
	}
	digits := 0
	for i := start; i < size && isDigit(input[i]); i++ {
		digits++
	}
	if digits == 0 {
		return 0
	}
	end := start + digits
	if end < size && !isSeparator(input[end]) {
		return 0
	}
	return end - pos
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '#':
		return true
	}
	return false
}

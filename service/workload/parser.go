package workload

import (
	"fmt"
	"strconv"

	"github.com/viant/jobsim/model"
	"github.com/viant/parsly"
)

// Parse reads "id size arrival" triples.
func Parse(input []byte) ([]*model.Job, error) {
	cursor := parsly.NewCursor("", input, 0)
	var values []int
	for {
		cursor.MatchOne(whitespaceToken)
		if cursor.Pos >= cursor.InputSize {
			break
		}
		matched := cursor.MatchAny(commentToken, integerToken)
		switch matched.Code {
		case commentCode:
		case integerCode:
			value, err := strconv.Atoi(matched.Text(cursor))
			if err != nil {
				return nil, fmt.Errorf("invalid integer at %d: %w", cursor.Pos, err)
			}
			values = append(values, value)
		default:
			return nil, cursor.NewError(integerToken)
		}
	}
	if len(values)%3 != 0 {
		return nil, fmt.Errorf("incomplete job definition: expected id size arrival triples, got %d values", len(values))
	}
	jobs := make([]*model.Job, 0, len(values)/3)
	for i := 0; i < len(values); i += 3 {
		jobs = append(jobs, model.NewJob(values[i], values[i+1], values[i+2]))
	}
	return jobs, nil
}

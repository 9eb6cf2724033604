package idgen

import "github.com/google/uuid"

// NewFunc produces run identifiers; tests may replace it.
var NewFunc = func() string { return uuid.New().String() }

// NewRunID returns a new globally unique run identifier.
func NewRunID() string { return NewFunc() }

package catalog

import "errors"

var (
	ErrEmptyLabel      = errors.New("catalog: label cannot be empty")
	ErrEmptyLanguage   = errors.New("catalog: language cannot be empty")
	ErrInvalidLanguage = errors.New("catalog: language not in allowed set")
	ErrMissingText     = errors.New("catalog: text not found")
	ErrUnknownLabel    = errors.New("catalog: unknown label")
	ErrParse           = errors.New("catalog: invalid catalog file")
	ErrValidation      = errors.New("catalog: invalid catalog entry")
	ErrFormat          = errors.New("catalog: missing placeholder value")
)

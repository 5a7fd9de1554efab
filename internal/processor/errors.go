package processor

import "errors"

var (
	ErrSourceOpen   = errors.New("cannot open source")
	ErrSourceRead   = errors.New("failed to read source")
	ErrTaskPanicked = errors.New("hashing task terminated abnormally")
)

package bird

import "errors"

var (
	ErrMalformedSize      = errors.New("malformed size value")
	ErrUnknownMemoryLabel = errors.New("unknown memory label")
	ErrMalformedHeader    = errors.New("malformed protocol header")
)

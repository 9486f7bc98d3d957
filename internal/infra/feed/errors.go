package feed

import "errors"

var (
	// ErrMalformedPayload возвращается при нечитаемом payload события
	ErrMalformedPayload = errors.New("feed: malformed event payload")
)

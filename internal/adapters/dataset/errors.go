package dataset

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingColumn   = errors.New("missing required column")
	ErrMalformedRecord = errors.New("malformed medal record")
	ErrUnknownSource   = errors.New("unknown data source")
)

package service

import "errors"

// Sentinel errors.
var (
	ErrNotStarted = errors.New("service not started")
	ErrNoDataset  = errors.New("service has no dataset")
)

package main

import "errors"

// Sentinel errors for command operations
var (
	ErrEvaluationFailed = errors.New("evaluation failed")
	ErrScanFailed       = errors.New("scan failed")
	ErrNoClass          = errors.New("either a class spec or --table is required")
	ErrUnknownTable     = errors.New("unknown table")
)

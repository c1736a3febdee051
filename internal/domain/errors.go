package domain

import "errors"

var (
	ErrInvalidThreshold     = errors.New("inactivity threshold must be positive")
	ErrNamespaceNotLoaded   = errors.New("namespace not loaded")
	ErrClaimNotFound        = errors.New("claim not found")
	ErrOwnerNotFound        = errors.New("owner not found")
	ErrUnknownExecutionMode = errors.New("unknown execution mode")
)

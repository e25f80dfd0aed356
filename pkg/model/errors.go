package model

import "github.com/m-mizutani/goerr/v2"

var (
	ErrNoActiveSession     = goerr.New("no active session")
	ErrSessionNotFound     = goerr.New("session not found")
	ErrBranchNotFound      = goerr.New("branch not found")
	ErrInvalidThoughtID    = goerr.New("invalid thought id")
	ErrMemoryLimitExceeded = goerr.New("session memory limit exceeded")
	ErrMaxBranchesExceeded = goerr.New("maximum branches exceeded")
	ErrInvalidArgument     = goerr.New("invalid argument")
)

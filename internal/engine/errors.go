package engine

import "errors"

var (
	// ErrNoProjects indicates the history is empty.
	ErrNoProjects = errors.New("no projects in history")

	// ErrAutoCreateDisabled indicates descriptor creation was refused
	// because the auto-create policy is set to never.
	ErrAutoCreateDisabled = errors.New("auto-create is disabled")
)

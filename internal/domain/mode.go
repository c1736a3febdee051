package domain

import (
	"fmt"
	"strings"
)

type ExecutionMode int

const (
	// ModePreview discovers claims without touching the directory.
	ModePreview ExecutionMode = iota + 1
	// ModeCommit removes every discovered claim.
	ModeCommit
)

func (m ExecutionMode) ShouldDelete() bool {
	return m == ModeCommit
}

func (m ExecutionMode) IsPreview() bool {
	return m == ModePreview
}

func (m ExecutionMode) Valid() bool {
	switch m {
	case ModePreview, ModeCommit:
		return true
	default:
		return false
	}
}

func (m ExecutionMode) String() string {
	switch m {
	case ModePreview:
		return "preview"
	case ModeCommit:
		return "commit"
	default:
		return fmt.Sprintf("ExecutionMode(%d)", int(m))
	}
}

func ParseExecutionMode(raw string) (ExecutionMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "preview", "dry-run", "dry_run", "dryrun":
		return ModePreview, nil
	case "commit", "real":
		return ModeCommit, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownExecutionMode, raw)
	}
}

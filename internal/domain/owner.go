package domain

import (
	"strings"
	"time"
)

type OwnerID string

type Owner struct {
	ID   OwnerID
	Name string
}

// DisplayName falls back to the owner ID when no name was ever recorded.
func (o Owner) DisplayName() string {
	if name := strings.TrimSpace(o.Name); name != "" {
		return name
	}
	if o.ID == "" {
		return "Unknown"
	}
	return string(o.ID)
}

// InactiveOwner is an owner selected for pruning together with the
// activity timestamp that made it eligible.
type InactiveOwner struct {
	Owner
	LastActivity time.Time
}

// ActivityObserved reports whether the timestamp carries any evidence of
// prior activity. Zero values and instants at or before the Unix epoch
// count as never observed.
func ActivityObserved(lastActivity time.Time) bool {
	if lastActivity.IsZero() {
		return false
	}
	return lastActivity.UnixMilli() > 0
}

// InactiveSince reports whether lastActivity lies strictly before now minus
// threshold. Never observed owners are never inactive.
func InactiveSince(lastActivity time.Time, threshold time.Duration, now time.Time) bool {
	if !ActivityObserved(lastActivity) {
		return false
	}
	cutoff := now.UnixMilli() - threshold.Milliseconds()
	return lastActivity.UnixMilli() < cutoff
}

package domain

import "time"

// OwnerState is the stored presence record of one owner.
type OwnerState struct {
	Owner
	Online   bool
	LastSeen time.Time
}

// WorldState is one namespace with its claim table. Unloaded worlds keep
// their claims but cannot be queried or modified.
type WorldState struct {
	Name   Namespace
	Loaded bool
	Claims []Claim
}

// Snapshot is the full shared state behind the activity and claim ports. It
// is what storage adapters exchange when seeding one store from another.
type Snapshot struct {
	Owners []OwnerState
	Worlds []WorldState
}

func (s Snapshot) ClaimCount() int {
	total := 0
	for _, world := range s.Worlds {
		total += len(world.Claims)
	}
	return total
}

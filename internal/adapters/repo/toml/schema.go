package toml

import (
	"fmt"
	"time"

	"github.com/bnema/autounclaim/internal/domain"
	"github.com/google/uuid"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Owners  []ownerSchema `toml:"owners"`
	Worlds  []worldSchema `toml:"worlds"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported claims schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// normalize rejects malformed owner IDs and rewrites valid ones in canonical
// form so claim membership compares equal to the owner table.
func (s *fileSchema) normalize() error {
	for i := range s.Owners {
		id, err := canonicalOwnerID(s.Owners[i].ID)
		if err != nil {
			return err
		}
		s.Owners[i].ID = id
	}

	for i := range s.Worlds {
		if s.Worlds[i].Name == "" {
			return fmt.Errorf("world %d has no name", i)
		}
		for j := range s.Worlds[i].Claims {
			claim := &s.Worlds[i].Claims[j]
			for k, owner := range claim.Owners {
				id, err := canonicalOwnerID(owner)
				if err != nil {
					return fmt.Errorf("claim %s in %s: %w", claim.ID, s.Worlds[i].Name, err)
				}
				claim.Owners[k] = id
			}
		}
	}

	return nil
}

func (s fileSchema) world(name domain.Namespace) (int, bool) {
	for i := range s.Worlds {
		if s.Worlds[i].Name == string(name) {
			return i, true
		}
	}
	return -1, false
}

type ownerSchema struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Online   bool   `toml:"online"`
	LastSeen string `toml:"last_seen,omitempty"`
}

type worldSchema struct {
	Name   string        `toml:"name"`
	Loaded bool          `toml:"loaded"`
	Claims []claimSchema `toml:"claims"`
}

type claimSchema struct {
	ID     string   `toml:"id"`
	Owners []string `toml:"owners"`
}

func canonicalOwnerID(raw string) (string, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid owner id %q: %w", raw, err)
	}
	return parsed.String(), nil
}

func toSnapshot(file fileSchema) domain.Snapshot {
	snapshot := domain.Snapshot{
		Owners: make([]domain.OwnerState, 0, len(file.Owners)),
		Worlds: make([]domain.WorldState, 0, len(file.Worlds)),
	}

	for _, owner := range file.Owners {
		snapshot.Owners = append(snapshot.Owners, fromOwnerSchema(owner))
	}
	for _, world := range file.Worlds {
		state := domain.WorldState{
			Name:   domain.Namespace(world.Name),
			Loaded: world.Loaded,
			Claims: make([]domain.Claim, 0, len(world.Claims)),
		}
		for _, claim := range world.Claims {
			state.Claims = append(state.Claims, fromClaimSchema(state.Name, claim))
		}
		snapshot.Worlds = append(snapshot.Worlds, state)
	}

	return snapshot
}

func fromSnapshot(snapshot domain.Snapshot) fileSchema {
	file := fileSchema{
		Version: currentSchemaVersion,
		Owners:  make([]ownerSchema, 0, len(snapshot.Owners)),
		Worlds:  make([]worldSchema, 0, len(snapshot.Worlds)),
	}

	for _, owner := range snapshot.Owners {
		file.Owners = append(file.Owners, ownerSchema{
			ID:       string(owner.ID),
			Name:     owner.Name,
			Online:   owner.Online,
			LastSeen: formatTime(owner.LastSeen),
		})
	}
	for _, world := range snapshot.Worlds {
		encoded := worldSchema{
			Name:   string(world.Name),
			Loaded: world.Loaded,
			Claims: make([]claimSchema, 0, len(world.Claims)),
		}
		for _, claim := range world.Claims {
			owners := make([]string, 0, len(claim.Owners))
			for _, owner := range claim.Owners {
				owners = append(owners, string(owner))
			}
			encoded.Claims = append(encoded.Claims, claimSchema{ID: string(claim.ID), Owners: owners})
		}
		file.Worlds = append(file.Worlds, encoded)
	}

	return file
}

func fromOwnerSchema(owner ownerSchema) domain.OwnerState {
	return domain.OwnerState{
		Owner:    domain.Owner{ID: domain.OwnerID(owner.ID), Name: owner.Name},
		Online:   owner.Online,
		LastSeen: parseTime(owner.LastSeen),
	}
}

func fromClaimSchema(namespace domain.Namespace, claim claimSchema) domain.Claim {
	owners := make([]domain.OwnerID, 0, len(claim.Owners))
	for _, owner := range claim.Owners {
		owners = append(owners, domain.OwnerID(owner))
	}
	return domain.Claim{ID: domain.ClaimID(claim.ID), Namespace: namespace, Owners: owners}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}

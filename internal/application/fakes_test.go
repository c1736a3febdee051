package application

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bnema/autounclaim/internal/domain"
)

type fakeOwner struct {
	owner  domain.Owner
	online bool
	last   time.Time
}

type inMemoryOracle struct {
	owners []fakeOwner
}

func (o *inMemoryOracle) AllKnownOwners(_ context.Context) ([]domain.Owner, error) {
	owners := make([]domain.Owner, 0, len(o.owners))
	for _, entry := range o.owners {
		owners = append(owners, entry.owner)
	}
	return owners, nil
}

func (o *inMemoryOracle) IsActive(_ context.Context, id domain.OwnerID) (bool, error) {
	for _, entry := range o.owners {
		if entry.owner.ID == id {
			return entry.online, nil
		}
	}
	return false, domain.ErrOwnerNotFound
}

func (o *inMemoryOracle) LastActivity(_ context.Context, id domain.OwnerID) (time.Time, error) {
	for _, entry := range o.owners {
		if entry.owner.ID == id {
			return entry.last, nil
		}
	}
	return time.Time{}, domain.ErrOwnerNotFound
}

type inMemoryDirectory struct {
	mu         sync.Mutex
	namespaces []domain.Namespace
	claims     map[domain.Namespace][]domain.Claim
	unloaded   map[domain.Namespace]bool
	failing    map[domain.ClaimID]error
	calls      int
	removed    []domain.ClaimKey
}

func newInMemoryDirectory(namespaces ...domain.Namespace) *inMemoryDirectory {
	return &inMemoryDirectory{
		namespaces: namespaces,
		claims:     map[domain.Namespace][]domain.Claim{},
		unloaded:   map[domain.Namespace]bool{},
		failing:    map[domain.ClaimID]error{},
	}
}

func (d *inMemoryDirectory) add(namespace domain.Namespace, id domain.ClaimID, owners ...domain.OwnerID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.claims[namespace] = append(d.claims[namespace], domain.Claim{ID: id, Namespace: namespace, Owners: owners})
}

func (d *inMemoryDirectory) ListNamespaces(_ context.Context) ([]domain.Namespace, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	return slices.Clone(d.namespaces), nil
}

func (d *inMemoryDirectory) ClaimsIn(_ context.Context, namespace domain.Namespace) ([]domain.Claim, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.unloaded[namespace] {
		return nil, domain.ErrNamespaceNotLoaded
	}
	return slices.Clone(d.claims[namespace]), nil
}

func (d *inMemoryDirectory) Remove(_ context.Context, namespace domain.Namespace, id domain.ClaimID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.unloaded[namespace] {
		return domain.ErrNamespaceNotLoaded
	}
	if err, ok := d.failing[id]; ok {
		return err
	}
	claims := d.claims[namespace]
	for i, claim := range claims {
		if claim.ID == id {
			d.claims[namespace] = slices.Delete(claims, i, i+1)
			d.removed = append(d.removed, domain.ClaimKey{Namespace: namespace, ClaimID: id})
			return nil
		}
	}
	return domain.ErrClaimNotFound
}

func (d *inMemoryDirectory) claimIDs(namespace domain.Namespace) []domain.ClaimID {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]domain.ClaimID, 0, len(d.claims[namespace]))
	for _, claim := range d.claims[namespace] {
		ids = append(ids, claim.ID)
	}
	return ids
}

func (d *inMemoryDirectory) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

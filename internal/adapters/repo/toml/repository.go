package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/bnema/autounclaim/internal/domain"
	"github.com/bnema/autounclaim/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	storePathKey    = "store.path"
	storeFileMode   = 0o600
	storeDirMode    = 0o700
	storeConfigDir  = ".autounclaim"
	storeConfigFile = "claims.toml"
	tempFilePattern = ".claims-*.toml.tmp"
)

// Repository serves both the activity oracle and the claim directory from a
// single TOML snapshot file. Every call rereads the file so external edits
// are picked up between prune passes.
type Repository struct {
	storePath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var (
	_ ports.ActivityOracle = (*Repository)(nil)
	_ ports.ClaimDirectory = (*Repository)(nil)
)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	storePath := cfg.GetString(storePathKey)
	if storePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		storePath = filepath.Join(homeDir, storeConfigDir, storeConfigFile)
	}

	storePath, err := normalizeStorePath(storePath)
	if err != nil {
		return nil, err
	}

	return &Repository{storePath: storePath, mu: lockForPath(storePath)}, nil
}

func (r *Repository) Path() string {
	return r.storePath
}

func (r *Repository) IsActive(ctx context.Context, id domain.OwnerID) (bool, error) {
	owner, err := r.owner(ctx, id)
	if err != nil {
		return false, err
	}
	return owner.Online, nil
}

func (r *Repository) LastActivity(ctx context.Context, id domain.OwnerID) (time.Time, error) {
	owner, err := r.owner(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	return parseTime(owner.LastSeen), nil
}

func (r *Repository) AllKnownOwners(ctx context.Context) ([]domain.Owner, error) {
	file, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	owners := make([]domain.Owner, 0, len(file.Owners))
	for _, entry := range file.Owners {
		owners = append(owners, domain.Owner{ID: domain.OwnerID(entry.ID), Name: entry.Name})
	}

	return owners, nil
}

func (r *Repository) ListNamespaces(ctx context.Context) ([]domain.Namespace, error) {
	file, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	namespaces := make([]domain.Namespace, 0, len(file.Worlds))
	for _, world := range file.Worlds {
		namespaces = append(namespaces, domain.Namespace(world.Name))
	}

	return namespaces, nil
}

func (r *Repository) ClaimsIn(ctx context.Context, namespace domain.Namespace) ([]domain.Claim, error) {
	file, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx, ok := file.world(namespace)
	if !ok || !file.Worlds[idx].Loaded {
		return nil, fmt.Errorf("world %s: %w", namespace, domain.ErrNamespaceNotLoaded)
	}

	claims := make([]domain.Claim, 0, len(file.Worlds[idx].Claims))
	for _, claim := range file.Worlds[idx].Claims {
		claims = append(claims, fromClaimSchema(namespace, claim))
	}

	return claims, nil
}

func (r *Repository) Remove(ctx context.Context, namespace domain.Namespace, id domain.ClaimID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	idx, ok := file.world(namespace)
	if !ok || !file.Worlds[idx].Loaded {
		return fmt.Errorf("world %s: %w", namespace, domain.ErrNamespaceNotLoaded)
	}

	world := &file.Worlds[idx]
	pos := slices.IndexFunc(world.Claims, func(claim claimSchema) bool {
		return claim.ID == string(id)
	})
	if pos < 0 {
		return fmt.Errorf("claim %s in %s: %w", id, namespace, domain.ErrClaimNotFound)
	}
	world.Claims = slices.Delete(world.Claims, pos, pos+1)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

// Snapshot returns the whole stored state.
func (r *Repository) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	file, err := r.load(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return toSnapshot(file), nil
}

// Save replaces the stored state with snapshot.
func (r *Repository) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file := fromSnapshot(snapshot)
	if err := file.normalize(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) owner(ctx context.Context, id domain.OwnerID) (ownerSchema, error) {
	file, err := r.load(ctx)
	if err != nil {
		return ownerSchema{}, err
	}

	for _, entry := range file.Owners {
		if entry.ID == string(id) {
			return entry, nil
		}
	}

	return ownerSchema{}, fmt.Errorf("owner %s: %w", id, domain.ErrOwnerNotFound)
}

func (r *Repository) load(ctx context.Context) (fileSchema, error) {
	if err := ctx.Err(); err != nil {
		return fileSchema{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.readSchema()
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.storePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read claims file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode claims file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	if err := file.normalize(); err != nil {
		return fileSchema{}, fmt.Errorf("validate claims file: %w", err)
	}
	file.applyDefaults()

	return file, nil
}

func normalizeStorePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve store path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.storePath), storeDirMode); err != nil {
		return fmt.Errorf("create claims directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode claims file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.storePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp claims file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp claims file: %w", err)
	}

	if err := tempFile.Chmod(storeFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp claims file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp claims file: %w", err)
	}

	if err := os.Rename(tempName, r.storePath); err != nil {
		return fmt.Errorf("replace claims file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.storePath, storeFileMode); err != nil {
		return fmt.Errorf("chmod claims file: %w", err)
	}

	return nil
}

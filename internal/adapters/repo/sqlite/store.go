package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/autounclaim/internal/domain"
	"github.com/bnema/autounclaim/internal/ports"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store serves the activity oracle and the claim directory from a sqlite
// database. Connections are capped at one so writes serialise in-process.
type Store struct {
	db   *sql.DB
	path string
	once sync.Once
}

var (
	_ ports.ActivityOracle = (*Store)(nil)
	_ ports.ClaimDirectory = (*Store)(nil)
)

func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

func initPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("apply %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS owners (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			online INTEGER NOT NULL DEFAULT 0,
			last_seen_ms INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS worlds (
			name TEXT PRIMARY KEY,
			loaded INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS claims (
			world TEXT NOT NULL REFERENCES worlds(name) ON DELETE CASCADE,
			id TEXT NOT NULL,
			PRIMARY KEY (world, id)
		);`,
		`CREATE TABLE IF NOT EXISTS claim_owners (
			world TEXT NOT NULL,
			claim_id TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			PRIMARY KEY (world, claim_id, owner_id),
			FOREIGN KEY (world, claim_id) REFERENCES claims(world, id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_claim_owners_owner ON claim_owners(owner_id);`,
		`INSERT OR IGNORE INTO meta(key,value) VALUES('schema_version','` + schemaVersion + `');`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	var err error
	s.once.Do(func() {
		err = s.db.Close()
	})
	return err
}

func (s *Store) IsActive(ctx context.Context, id domain.OwnerID) (bool, error) {
	var online bool
	err := s.db.QueryRowContext(ctx, `SELECT online FROM owners WHERE id=?`, string(id)).Scan(&online)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("owner %s: %w", id, domain.ErrOwnerNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("query owner %s: %w", id, err)
	}
	return online, nil
}

func (s *Store) LastActivity(ctx context.Context, id domain.OwnerID) (time.Time, error) {
	var lastSeen int64
	err := s.db.QueryRowContext(ctx, `SELECT last_seen_ms FROM owners WHERE id=?`, string(id)).Scan(&lastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("owner %s: %w", id, domain.ErrOwnerNotFound)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query owner %s: %w", id, err)
	}
	return fromMillis(lastSeen), nil
}

func (s *Store) AllKnownOwners(ctx context.Context) ([]domain.Owner, error) {
	states, err := s.owners(ctx)
	if err != nil {
		return nil, err
	}

	owners := make([]domain.Owner, 0, len(states))
	for _, state := range states {
		owners = append(owners, state.Owner)
	}
	return owners, nil
}

func (s *Store) ListNamespaces(ctx context.Context) ([]domain.Namespace, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM worlds ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query worlds: %w", err)
	}
	defer rows.Close()

	var namespaces []domain.Namespace
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan world: %w", err)
		}
		namespaces = append(namespaces, domain.Namespace(name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query worlds: %w", err)
	}
	return namespaces, nil
}

func (s *Store) ClaimsIn(ctx context.Context, namespace domain.Namespace) ([]domain.Claim, error) {
	if err := worldLoaded(ctx, s.db, namespace); err != nil {
		return nil, err
	}
	return claimsIn(ctx, s.db, namespace)
}

// Remove deletes the claim and its ownership rows in one transaction.
func (s *Store) Remove(ctx context.Context, namespace domain.Namespace, id domain.ClaimID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin remove: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := worldLoaded(ctx, tx, namespace); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM claim_owners WHERE world=? AND claim_id=?`, string(namespace), string(id)); err != nil {
		return fmt.Errorf("delete owners of %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM claims WHERE world=? AND id=?`, string(namespace), string(id))
	if err != nil {
		return fmt.Errorf("delete claim %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete claim %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("claim %s in %s: %w", id, namespace, domain.ErrClaimNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit remove: %w", err)
	}
	return nil
}

// Import replaces the stored state with snapshot.
func (s *Store) Import(ctx context.Context, snapshot domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"claim_owners", "claims", "worlds", "owners"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, owner := range snapshot.Owners {
		id, err := canonicalOwnerID(owner.ID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO owners(id,name,online,last_seen_ms) VALUES(?,?,?,?)`,
			id, owner.Name, owner.Online, toMillis(owner.LastSeen),
		); err != nil {
			return fmt.Errorf("insert owner %s: %w", id, err)
		}
	}

	for _, world := range snapshot.Worlds {
		if _, err := tx.ExecContext(ctx, `INSERT INTO worlds(name,loaded) VALUES(?,?)`, string(world.Name), world.Loaded); err != nil {
			return fmt.Errorf("insert world %s: %w", world.Name, err)
		}
		for _, claim := range world.Claims {
			if err := insertClaim(ctx, tx, world.Name, claim); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// Snapshot reads the whole stored state, including claims of unloaded worlds.
func (s *Store) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	owners, err := s.owners(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, loaded FROM worlds ORDER BY rowid`)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("query worlds: %w", err)
	}
	var worlds []domain.WorldState
	for rows.Next() {
		var world domain.WorldState
		if err := rows.Scan(&world.Name, &world.Loaded); err != nil {
			_ = rows.Close()
			return domain.Snapshot{}, fmt.Errorf("scan world: %w", err)
		}
		worlds = append(worlds, world)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("query worlds: %w", err)
	}

	for i := range worlds {
		claims, err := claimsIn(ctx, s.db, worlds[i].Name)
		if err != nil {
			return domain.Snapshot{}, err
		}
		worlds[i].Claims = claims
	}

	return domain.Snapshot{Owners: owners, Worlds: worlds}, nil
}

func (s *Store) owners(ctx context.Context) ([]domain.OwnerState, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, online, last_seen_ms FROM owners ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query owners: %w", err)
	}
	defer rows.Close()

	var owners []domain.OwnerState
	for rows.Next() {
		var (
			state    domain.OwnerState
			lastSeen int64
		)
		if err := rows.Scan(&state.ID, &state.Name, &state.Online, &lastSeen); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		state.LastSeen = fromMillis(lastSeen)
		owners = append(owners, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query owners: %w", err)
	}
	return owners, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func worldLoaded(ctx context.Context, q querier, namespace domain.Namespace) error {
	var loaded bool
	err := q.QueryRowContext(ctx, `SELECT loaded FROM worlds WHERE name=?`, string(namespace)).Scan(&loaded)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !loaded) {
		return fmt.Errorf("world %s: %w", namespace, domain.ErrNamespaceNotLoaded)
	}
	if err != nil {
		return fmt.Errorf("query world %s: %w", namespace, err)
	}
	return nil
}

func claimsIn(ctx context.Context, q querier, namespace domain.Namespace) ([]domain.Claim, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT c.id, co.owner_id
		FROM claims c
		LEFT JOIN claim_owners co ON co.world = c.world AND co.claim_id = c.id
		WHERE c.world = ?
		ORDER BY c.rowid, co.rowid`, string(namespace))
	if err != nil {
		return nil, fmt.Errorf("query claims in %s: %w", namespace, err)
	}
	defer rows.Close()

	claims := []domain.Claim{}
	for rows.Next() {
		var (
			id    string
			owner sql.NullString
		)
		if err := rows.Scan(&id, &owner); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		if n := len(claims); n == 0 || claims[n-1].ID != domain.ClaimID(id) {
			claims = append(claims, domain.Claim{ID: domain.ClaimID(id), Namespace: namespace, Owners: []domain.OwnerID{}})
		}
		if owner.Valid {
			last := &claims[len(claims)-1]
			last.Owners = append(last.Owners, domain.OwnerID(owner.String))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query claims in %s: %w", namespace, err)
	}
	return claims, nil
}

func insertClaim(ctx context.Context, tx *sql.Tx, namespace domain.Namespace, claim domain.Claim) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO claims(world,id) VALUES(?,?)`, string(namespace), string(claim.ID)); err != nil {
		return fmt.Errorf("insert claim %s in %s: %w", claim.ID, namespace, err)
	}
	for _, owner := range claim.Owners {
		id, err := canonicalOwnerID(owner)
		if err != nil {
			return fmt.Errorf("claim %s in %s: %w", claim.ID, namespace, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO claim_owners(world,claim_id,owner_id) VALUES(?,?,?)`,
			string(namespace), string(claim.ID), id,
		); err != nil {
			return fmt.Errorf("insert owner of %s: %w", claim.ID, err)
		}
	}
	return nil
}

func canonicalOwnerID(id domain.OwnerID) (string, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return "", fmt.Errorf("invalid owner id %q: %w", id, err)
	}
	return parsed.String(), nil
}

func toMillis(t time.Time) int64 {
	if !domain.ActivityObserved(t) {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

package repository

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/okian/scout/internal/domain/archetype"
	"github.com/okian/scout/internal/domain/scale"
	"github.com/okian/scout/internal/domain/similarity"
	"github.com/okian/scout/internal/domain/vector"
)

// SQLiteStore persists artifacts in a single SQLite database file.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore creates a store rooted at the given database path. The file
// need not exist yet; Load reports ErrNoArtifacts until a Save completes.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Path returns the database location.
func (s *SQLiteStore) Path() string {
	return s.path
}

const schema = `
	CREATE TABLE manifest (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		run_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		seed INTEGER NOT NULL,
		dimensions TEXT NOT NULL
	);
	CREATE TABLE scaler (
		dim INTEGER PRIMARY KEY,
		mean REAL NOT NULL,
		std REAL NOT NULL
	);
	CREATE TABLE centroids (
		cluster_id INTEGER PRIMARY KEY,
		vec BLOB NOT NULL
	);
	CREATE TABLE archetypes (
		cluster_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL
	);
	CREATE TABLE corpus (
		pos INTEGER PRIMARY KEY,
		player_id TEXT NOT NULL,
		name TEXT NOT NULL,
		vec BLOB NOT NULL
	);
`

// Save writes the bundle to a fresh database next to the target path and
// renames it over the old one. Retraining therefore replaces all artifacts
// in one step and never exposes a partially written model.
func (s *SQLiteStore) Save(ctx context.Context, a Artifacts) error {
	if err := a.Validate(); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	_ = os.Remove(tmp)

	db, err := sql.Open("sqlite", tmp)
	if err != nil {
		return fmt.Errorf("open artifact database: %w", err)
	}
	if err := s.write(ctx, db, a); err != nil {
		db.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := db.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close artifact database: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("swap artifact database: %w", err)
	}
	return nil
}

func (s *SQLiteStore) write(ctx context.Context, db *sql.DB, a Artifacts) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create artifact schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin artifact tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	dims, err := json.Marshal(a.Dimensions)
	if err != nil {
		return fmt.Errorf("encode dimensions: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO manifest (id, run_id, created_at, seed, dimensions) VALUES (1, ?, ?, ?, ?)",
		a.RunID, a.CreatedAt.UTC().Format(time.RFC3339Nano), a.Seed, string(dims)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	for i := range a.Scaler.Mean {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO scaler (dim, mean, std) VALUES (?, ?, ?)",
			i, a.Scaler.Mean[i], a.Scaler.Std[i]); err != nil {
			return fmt.Errorf("write scaler: %w", err)
		}
	}

	for id, c := range a.Centroids {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO centroids (cluster_id, vec) VALUES (?, ?)",
			id, encodeVector(c)); err != nil {
			return fmt.Errorf("write centroid %d: %w", id, err)
		}
	}

	for _, e := range a.Archetypes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO archetypes (cluster_id, name, description) VALUES (?, ?, ?)",
			e.ClusterID, e.Name, e.Description); err != nil {
			return fmt.Errorf("write archetype %d: %w", e.ClusterID, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO corpus (pos, player_id, name, vec) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare corpus insert: %w", err)
	}
	defer stmt.Close()
	for pos, p := range a.Corpus {
		if _, err := stmt.ExecContext(ctx, pos, p.ID, p.Name, encodeVector(p.Vector)); err != nil {
			return fmt.Errorf("write corpus row %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit artifacts: %w", err)
	}
	return nil
}

// Load reads the full artifact bundle and validates that every piece came
// from the same training run shape.
func (s *SQLiteStore) Load(ctx context.Context) (Artifacts, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return Artifacts{}, ErrNoArtifacts
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return Artifacts{}, fmt.Errorf("open artifact database: %w", err)
	}
	defer db.Close()

	var a Artifacts
	var created, dims string
	row := db.QueryRowContext(ctx, "SELECT run_id, created_at, seed, dimensions FROM manifest WHERE id = 1")
	if err := row.Scan(&a.RunID, &created, &a.Seed, &dims); err != nil {
		if err == sql.ErrNoRows {
			return Artifacts{}, ErrNoArtifacts
		}
		return Artifacts{}, fmt.Errorf("read manifest: %w", err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Artifacts{}, fmt.Errorf("parse manifest timestamp: %w", err)
	}
	if err := json.Unmarshal([]byte(dims), &a.Dimensions); err != nil {
		return Artifacts{}, fmt.Errorf("decode dimensions: %w", err)
	}

	if a.Scaler, err = s.loadScaler(ctx, db); err != nil {
		return Artifacts{}, err
	}
	if a.Centroids, err = s.loadCentroids(ctx, db); err != nil {
		return Artifacts{}, err
	}
	if a.Archetypes, err = s.loadArchetypes(ctx, db, a.Centroids); err != nil {
		return Artifacts{}, err
	}
	if a.Corpus, err = s.loadCorpus(ctx, db); err != nil {
		return Artifacts{}, err
	}

	if err := a.Validate(); err != nil {
		return Artifacts{}, err
	}
	return a, nil
}

func (s *SQLiteStore) loadScaler(ctx context.Context, db *sql.DB) (scale.Params, error) {
	rows, err := db.QueryContext(ctx, "SELECT mean, std FROM scaler ORDER BY dim")
	if err != nil {
		return scale.Params{}, fmt.Errorf("read scaler: %w", err)
	}
	defer rows.Close()

	var p scale.Params
	for rows.Next() {
		var mean, std float64
		if err := rows.Scan(&mean, &std); err != nil {
			return scale.Params{}, fmt.Errorf("scan scaler row: %w", err)
		}
		p.Mean = append(p.Mean, mean)
		p.Std = append(p.Std, std)
	}
	return p, rows.Err()
}

func (s *SQLiteStore) loadCentroids(ctx context.Context, db *sql.DB) ([]vector.Vector, error) {
	rows, err := db.QueryContext(ctx, "SELECT vec FROM centroids ORDER BY cluster_id")
	if err != nil {
		return nil, fmt.Errorf("read centroids: %w", err)
	}
	defer rows.Close()

	var centroids []vector.Vector
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("scan centroid row: %w", err)
		}
		centroids = append(centroids, decodeVector(blob))
	}
	return centroids, rows.Err()
}

func (s *SQLiteStore) loadArchetypes(ctx context.Context, db *sql.DB, centroids []vector.Vector) ([]archetype.Entry, error) {
	rows, err := db.QueryContext(ctx, "SELECT cluster_id, name, description FROM archetypes ORDER BY cluster_id")
	if err != nil {
		return nil, fmt.Errorf("read archetypes: %w", err)
	}
	defer rows.Close()

	var entries []archetype.Entry
	for rows.Next() {
		var e archetype.Entry
		if err := rows.Scan(&e.ClusterID, &e.Name, &e.Description); err != nil {
			return nil, fmt.Errorf("scan archetype row: %w", err)
		}
		if e.ClusterID >= 0 && e.ClusterID < len(centroids) {
			e.Centroid = centroids[e.ClusterID].Clone()
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) loadCorpus(ctx context.Context, db *sql.DB) ([]similarity.Player, error) {
	rows, err := db.QueryContext(ctx, "SELECT player_id, name, vec FROM corpus ORDER BY pos")
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	defer rows.Close()

	var players []similarity.Player
	for rows.Next() {
		var p similarity.Player
		var blob []byte
		if err := rows.Scan(&p.ID, &p.Name, &blob); err != nil {
			return nil, fmt.Errorf("scan corpus row: %w", err)
		}
		p.Vector = decodeVector(blob)
		players = append(players, p)
	}
	return players, rows.Err()
}

// encodeVector packs a vector as little-endian float64 bytes.
func encodeVector(v vector.Vector) []byte {
	buf := make([]byte, 8*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(x))
	}
	return buf
}

// decodeVector unpacks little-endian float64 bytes.
func decodeVector(buf []byte) vector.Vector {
	v := make(vector.Vector, len(buf)/8)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return v
}

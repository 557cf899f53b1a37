package progress

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists per-player per-level progress codes in SQLite. Write volume
// is one row per solved/saved puzzle, so plain synchronous statements are
// enough; WAL keeps readers cheap.
type Store struct {
	db *sql.DB
}

// Entry is one saved progress row.
type Entry struct {
	Player    string
	LevelID   string
	Code      string
	Solved    bool
	UpdatedAt time.Time
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS progress (
		player     TEXT NOT NULL,
		level_id   TEXT NOT NULL,
		code       TEXT NOT NULL,
		solved     INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (player, level_id)
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save upserts one progress row. A later save always wins.
func (s *Store) Save(e Entry) error {
	solved := 0
	if e.Solved {
		solved = 1
	}
	_, err := s.db.Exec(`INSERT INTO progress (player, level_id, code, solved, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(player, level_id) DO UPDATE SET
			code = excluded.code,
			solved = excluded.solved,
			updated_at = excluded.updated_at`,
		e.Player, e.LevelID, e.Code, solved, e.UpdatedAt.UTC().Format(time.RFC3339))
	return err
}

// Get returns the saved entry for (player, level), or ok=false.
func (s *Store) Get(player, levelID string) (Entry, bool, error) {
	var e Entry
	var solved int
	var updated string
	err := s.db.QueryRow(`SELECT code, solved, updated_at FROM progress
		WHERE player = ? AND level_id = ?`, player, levelID).
		Scan(&e.Code, &solved, &updated)
	if err == sql.ErrNoRows {
		return e, false, nil
	}
	if err != nil {
		return e, false, err
	}
	e.Player = player
	e.LevelID = levelID
	e.Solved = solved != 0
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return e, true, nil
}

// SolvedLevels lists the level ids a player has solved, sorted.
func (s *Store) SolvedLevels(player string) ([]string, error) {
	rows, err := s.db.Query(`SELECT level_id FROM progress
		WHERE player = ? AND solved = 1 ORDER BY level_id`, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

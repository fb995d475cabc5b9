package stock

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Formulary is a sqlite-backed catalog source. The clinic pharmacy edits
// availability between restarts with any sqlite client; the process only
// reads it once at startup. The position column preserves the resolver's
// scan order across the round trip.
type Formulary struct {
	db *sqlx.DB
}

const formularySchema = `
CREATE TABLE IF NOT EXISTS medications (
	position  INTEGER PRIMARY KEY,
	name      TEXT NOT NULL UNIQUE,
	available INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS alternatives (
	name       TEXT PRIMARY KEY,
	suggestion TEXT NOT NULL
);
`

// OpenFormulary opens (creating if needed) the formulary database at path.
func OpenFormulary(path string) (*Formulary, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open formulary db: %w", err)
	}
	if _, err := db.Exec(formularySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create formulary schema: %w", err)
	}
	return &Formulary{db: db}, nil
}

func (f *Formulary) Close() error { return f.db.Close() }

// SeedIfEmpty writes the catalog into an empty formulary database. A
// database that already has medication rows is left untouched so pharmacy
// edits survive restarts.
func (f *Formulary) SeedIfEmpty(c *Catalog) error {
	var n int
	if err := f.db.Get(&n, `SELECT COUNT(*) FROM medications`); err != nil {
		return fmt.Errorf("count medications: %w", err)
	}
	if n > 0 {
		return nil
	}
	tx, err := f.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for i, e := range c.Entries() {
		if _, err := tx.Exec(`INSERT INTO medications (position, name, available) VALUES (?, ?, ?)`,
			i, e.Name, boolToInt(e.Available)); err != nil {
			return fmt.Errorf("seed medication %q: %w", e.Name, err)
		}
	}
	for name, suggestion := range c.Alternatives() {
		if _, err := tx.Exec(`INSERT INTO alternatives (name, suggestion) VALUES (?, ?)`,
			name, suggestion); err != nil {
			return fmt.Errorf("seed alternative %q: %w", name, err)
		}
	}
	return tx.Commit()
}

// LoadCatalog reads the whole formulary into an in-memory catalog. Rows come
// back ordered by position so Resolve sees the same deterministic scan order
// the catalog was seeded with.
func (f *Formulary) LoadCatalog() (*Catalog, error) {
	rows, err := f.db.Queryx(`SELECT name, available FROM medications ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load medications: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var name string
		var available int
		if err := rows.Scan(&name, &available); err != nil {
			return nil, fmt.Errorf("scan medication row: %w", err)
		}
		entries = append(entries, Entry{Name: name, Available: available != 0})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	alts := map[string]string{}
	altRows, err := f.db.Queryx(`SELECT name, suggestion FROM alternatives`)
	if err != nil {
		return nil, fmt.Errorf("load alternatives: %w", err)
	}
	defer altRows.Close()
	for altRows.Next() {
		var name, suggestion string
		if err := altRows.Scan(&name, &suggestion); err != nil {
			return nil, fmt.Errorf("scan alternative row: %w", err)
		}
		alts[name] = suggestion
	}
	if err := altRows.Err(); err != nil {
		return nil, err
	}
	return NewCatalog(entries, alts), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

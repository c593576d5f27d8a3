package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"placementwiz/internal/posting"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS postings (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	title TEXT NOT NULL,
	slug TEXT NOT NULL,
	fields_json TEXT NOT NULL,
	approval TEXT NOT NULL,
	author TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS postings_approval ON postings (approval, created_at)`,
	`CREATE TABLE IF NOT EXISTS bookmarks (
	user_name TEXT NOT NULL,
	posting_id TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (user_name, posting_id)
)`,
}

const postingColumns = `id, kind, title, slug, fields_json, approval, author, created_at, updated_at`

// SQLiteStore keeps postings in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set store db journal mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set store db busy timeout: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("initialize store schema: %w", err)
		}
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosting(row rowScanner) (*posting.Posting, error) {
	var (
		p                    posting.Posting
		kind, approval       string
		fieldsJSON           string
		createdAt, updatedAt string
	)
	if err := row.Scan(&p.ID, &kind, &p.Title, &p.Slug, &fieldsJSON, &approval, &p.Author, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Kind = posting.Kind(kind)
	p.Approval = posting.Approval(approval)

	if err := json.Unmarshal([]byte(fieldsJSON), &p.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal posting %s fields: %w", p.ID, err)
	}
	var err error
	if p.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse posting %s created_at: %w", p.ID, err)
	}
	if p.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse posting %s updated_at: %w", p.ID, err)
	}
	return &p, nil
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]*posting.Posting, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	defer rows.Close()

	out := make([]*posting.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan posting row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posting rows: %w", err)
	}
	return out, nil
}

// Save implements [Store].
func (s *SQLiteStore) Save(ctx context.Context, p *posting.Posting) error {
	if err := validatePosting(p); err != nil {
		return err
	}

	fields := p.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal posting fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO postings (`+postingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		 kind = excluded.kind,
		 title = excluded.title,
		 slug = excluded.slug,
		 fields_json = excluded.fields_json,
		 approval = excluded.approval,
		 author = excluded.author,
		 created_at = excluded.created_at,
		 updated_at = excluded.updated_at`,
		p.ID,
		string(p.Kind),
		p.Title,
		p.Slug,
		string(payload),
		string(p.Approval),
		p.Author,
		p.CreatedAt.UTC().Format(timeLayout),
		p.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save posting: %w", err)
	}
	return nil
}

// Get implements [Store].
func (s *SQLiteStore) Get(ctx context.Context, id string) (*posting.Posting, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postingColumns+` FROM postings WHERE id = ?`, id)
	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("query posting %q: %w", id, err)
	}
	return p, nil
}

// List implements [Store].
func (s *SQLiteStore) List(ctx context.Context, f Filter) ([]*posting.Posting, error) {
	var (
		where []string
		args  []any
	)
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.Approval != "" {
		where = append(where, "approval = ?")
		args = append(args, string(f.Approval))
	}

	q := `SELECT ` + postingColumns + ` FROM postings`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC, id`

	return s.query(ctx, q, args...)
}

// SetApproval implements [Store].
func (s *SQLiteStore) SetApproval(ctx context.Context, id string, a posting.Approval) error {
	if !a.IsValid() {
		return fmt.Errorf("invalid approval: %s", a)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE postings SET approval = ?, updated_at = ? WHERE id = ?`,
		string(a), s.now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("update posting approval: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update posting approval: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Bookmark implements [Store].
func (s *SQLiteStore) Bookmark(ctx context.Context, user, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bookmarks (user_name, posting_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_name, posting_id) DO NOTHING`,
		user, id, s.now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("save bookmark: %w", err)
	}
	return nil
}

// Unbookmark implements [Store].
func (s *SQLiteStore) Unbookmark(ctx context.Context, user, id string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_name = ? AND posting_id = ?`, user, id); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

// Bookmarks implements [Store].
func (s *SQLiteStore) Bookmarks(ctx context.Context, user string) ([]*posting.Posting, error) {
	return s.query(ctx,
		`SELECT p.id, p.kind, p.title, p.slug, p.fields_json, p.approval, p.author, p.created_at, p.updated_at
		 FROM postings p JOIN bookmarks b ON b.posting_id = p.id
		 WHERE b.user_name = ?
		 ORDER BY p.created_at DESC, p.id`, user)
}

// Close implements [Store].
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

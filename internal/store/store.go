// Package store persists submitted postings, their approval state and user
// bookmarks.
//
// Two backends are provided:
//   - [YAMLStore]: a single YAML document, good for small cells and for
//     keeping postings in version control
//   - [SQLiteStore]: a SQLite database for larger or shared deployments
//
// Use [Open] to pick the backend from configuration. Both backends satisfy
// the session package's Submitter interface through [Store.Save].
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"placementwiz/internal/config"
	"placementwiz/internal/posting"
)

// Supported store drivers.
const (
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

// Default store locations relative to the working directory.
const (
	DefaultYAMLPath   = ".placementwiz/postings.yaml"
	DefaultSQLitePath = ".placementwiz/postings.db"
)

// PathEnv overrides the configured store path when set.
const PathEnv = "PLACEMENTWIZ_STORE_PATH"

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no posting exists with the requested ID.
	ErrNotFound = errors.New("posting not found")

	// ErrUnknownDriver indicates the configured driver is not supported.
	ErrUnknownDriver = errors.New("unknown store driver")
)

// Filter narrows [Store.List] results. Zero fields match everything.
type Filter struct {
	Kind     posting.Kind
	Approval posting.Approval
}

// Matches reports whether p passes the filter.
func (f Filter) Matches(p *posting.Posting) bool {
	if f.Kind != "" && p.Kind != f.Kind {
		return false
	}
	if f.Approval != "" && p.Approval != f.Approval {
		return false
	}
	return true
}

// Store persists postings and bookmarks.
//
// List and Bookmarks return postings newest first. Get, SetApproval and
// Bookmark return an error wrapping [ErrNotFound] for unknown IDs.
type Store interface {
	// Save inserts p, or replaces the posting with the same ID.
	Save(ctx context.Context, p *posting.Posting) error
	Get(ctx context.Context, id string) (*posting.Posting, error)
	List(ctx context.Context, f Filter) ([]*posting.Posting, error)
	SetApproval(ctx context.Context, id string, a posting.Approval) error

	// Bookmark and Unbookmark are idempotent.
	Bookmark(ctx context.Context, user, id string) error
	Unbookmark(ctx context.Context, user, id string) error
	Bookmarks(ctx context.Context, user string) ([]*posting.Posting, error)

	Close() error
}

// Open creates the store selected by cfg.Driver. An empty driver means YAML.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", DriverYAML:
		return NewYAMLStore(cfg.Path), nil
	case DriverSQLite:
		return NewSQLiteStore(ResolvePath(cfg.Path, DefaultSQLitePath))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// ResolvePath picks the store file location.
//
// Resolution order:
//  1. PLACEMENTWIZ_STORE_PATH environment variable (used as-is if set)
//  2. Explicit configured path (if non-empty)
//  3. The driver's default path
func ResolvePath(configured, fallback string) string {
	if envPath := os.Getenv(PathEnv); envPath != "" {
		return envPath
	}
	if configured != "" {
		return configured
	}
	return fallback
}

func validatePosting(p *posting.Posting) error {
	if p == nil {
		return errors.New("posting is nil")
	}
	if p.ID == "" {
		return errors.New("posting has no ID")
	}
	if !p.Kind.IsValid() {
		return fmt.Errorf("posting %s has unknown kind %q", p.ID, p.Kind)
	}
	return nil
}

// sortNewest orders postings by creation time, newest first, then by ID.
func sortNewest(ps []*posting.Posting) {
	sort.SliceStable(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		}
		return ps[i].ID < ps[j].ID
	})
}

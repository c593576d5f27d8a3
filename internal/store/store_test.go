package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placementwiz/internal/config"
	"placementwiz/internal/posting"
)

var base = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func makePosting(id string, kind posting.Kind, title string, age time.Duration) *posting.Posting {
	created := base.Add(-age)
	return &posting.Posting{
		ID:        id,
		Kind:      kind,
		Title:     title,
		Slug:      title,
		Fields:    map[string]string{"role": title},
		Approval:  posting.ApprovalPending,
		Author:    "tpo",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

type backend struct {
	name string
	open func(t *testing.T) Store
}

var backends = []backend{
	{
		name: "yaml",
		open: func(t *testing.T) Store {
			return NewYAMLStore(filepath.Join(t.TempDir(), "postings.yaml"))
		},
	},
	{
		name: "sqlite",
		open: func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "db", "postings.db"))
			require.NoError(t, err)
			return s
		},
	},
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Setenv(PathEnv, "")
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			t.Cleanup(func() { s.Close() })
			fn(t, s)
		})
	}
}

func seed(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []*posting.Posting{
		makePosting("b", posting.KindJob, "sde", 2*time.Hour),
		makePosting("a", posting.KindExam, "gate", time.Hour),
		makePosting("c", posting.KindInternship, "intern", 3*time.Hour),
		makePosting("d", posting.KindJob, "analyst", time.Hour),
	} {
		require.NoError(t, s.Save(ctx, p))
	}
}

func ids(ps []*posting.Posting) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestStore_SaveAndGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		p := makePosting("id-1", posting.KindJob, "SDE at Initech", 0)
		require.NoError(t, s.Save(ctx, p))

		got, err := s.Get(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, p.Title, got.Title)
		assert.Equal(t, posting.KindJob, got.Kind)
		assert.Equal(t, posting.ApprovalPending, got.Approval)
		assert.Equal(t, map[string]string{"role": "SDE at Initech"}, got.Fields)
		assert.Equal(t, "tpo", got.Author)
		assert.True(t, p.CreatedAt.Equal(got.CreatedAt), "created_at round trips")

		// Saving again replaces
		p.Title = "Senior SDE at Initech"
		require.NoError(t, s.Save(ctx, p))
		got, err = s.Get(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, "Senior SDE at Initech", got.Title)

		all, err := s.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestStore_SaveRejectsInvalid(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		assert.Error(t, s.Save(ctx, nil))
		assert.Error(t, s.Save(ctx, &posting.Posting{Kind: posting.KindJob}))
		assert.Error(t, s.Save(ctx, &posting.Posting{ID: "x", Kind: "scholarship"}))
	})
}

func TestStore_GetNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		p, err := s.Get(context.Background(), "missing")
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestStore_List(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "all newest first, ties by id", filter: Filter{}, want: []string{"a", "d", "b", "c"}},
		{name: "by kind", filter: Filter{Kind: posting.KindJob}, want: []string{"d", "b"}},
		{name: "by approval", filter: Filter{Approval: posting.ApprovalApproved}, want: []string{}},
	}

	forEachBackend(t, func(t *testing.T, s Store) {
		seed(t, s)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := s.List(context.Background(), tt.filter)
				require.NoError(t, err)
				assert.Equal(t, tt.want, ids(got))
			})
		}
	})
}

func TestStore_ListEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		got, err := s.List(context.Background(), Filter{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStore_SetApproval(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seed(t, s)

		require.NoError(t, s.SetApproval(ctx, "b", posting.ApprovalApproved))
		require.NoError(t, s.SetApproval(ctx, "c", posting.ApprovalRejected))

		pending, err := s.List(ctx, Filter{Approval: posting.ApprovalPending})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "d"}, ids(pending))

		approved, err := s.List(ctx, Filter{Kind: posting.KindJob, Approval: posting.ApprovalApproved})
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, ids(approved))
		assert.False(t, approved[0].UpdatedAt.Equal(approved[0].CreatedAt), "approval bumps updated_at")

		err = s.SetApproval(ctx, "missing", posting.ApprovalApproved)
		assert.True(t, errors.Is(err, ErrNotFound))

		err = s.SetApproval(ctx, "a", posting.Approval("archived"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid approval")
	})
}

func TestStore_Bookmarks(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seed(t, s)

		require.NoError(t, s.Bookmark(ctx, "asha", "c"))
		require.NoError(t, s.Bookmark(ctx, "asha", "a"))
		require.NoError(t, s.Bookmark(ctx, "asha", "a"), "bookmark is idempotent")
		require.NoError(t, s.Bookmark(ctx, "ravi", "b"))

		got, err := s.Bookmarks(ctx, "asha")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, ids(got))

		err = s.Bookmark(ctx, "asha", "missing")
		assert.True(t, errors.Is(err, ErrNotFound))

		require.NoError(t, s.Unbookmark(ctx, "asha", "a"))
		require.NoError(t, s.Unbookmark(ctx, "asha", "a"), "unbookmark is idempotent")
		require.NoError(t, s.Unbookmark(ctx, "nobody", "a"))

		got, err = s.Bookmarks(ctx, "asha")
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, ids(got))

		got, err = s.Bookmarks(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFilter_Matches(t *testing.T) {
	p := makePosting("x", posting.KindExam, "gate", 0)

	assert.True(t, Filter{}.Matches(p))
	assert.True(t, Filter{Kind: posting.KindExam, Approval: posting.ApprovalPending}.Matches(p))
	assert.False(t, Filter{Kind: posting.KindJob}.Matches(p))
	assert.False(t, Filter{Approval: posting.ApprovalRejected}.Matches(p))
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		configured string
		want       string
	}{
		{name: "env wins", env: "/env/postings.yaml", configured: "/cfg/postings.yaml", want: "/env/postings.yaml"},
		{name: "configured", configured: "/cfg/postings.yaml", want: "/cfg/postings.yaml"},
		{name: "fallback", want: DefaultYAMLPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(PathEnv, tt.env)
			assert.Equal(t, tt.want, ResolvePath(tt.configured, DefaultYAMLPath))
		})
	}
}

func TestOpen(t *testing.T) {
	t.Setenv(PathEnv, "")
	dir := t.TempDir()

	s, err := Open(config.StoreConfig{Path: filepath.Join(dir, "p.yaml")})
	require.NoError(t, err)
	assert.IsType(t, &YAMLStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(config.StoreConfig{Driver: DriverSQLite, Path: filepath.Join(dir, "p.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(config.StoreConfig{Driver: "postgres"})
	assert.True(t, errors.Is(err, ErrUnknownDriver))
}

func TestYAMLStore_FileLayout(t *testing.T) {
	t.Setenv(PathEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "postings.yaml")
	s := NewYAMLStore(path)
	assert.Equal(t, path, s.Path())

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, makePosting("id-1", posting.KindExam, "gate", 0)))
	require.NoError(t, s.Bookmark(ctx, "asha", "id-1"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "postings:")
	assert.Contains(t, string(data), "kind: exam")
	assert.Contains(t, string(data), "bookmarks:")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")
}

func TestYAMLStore_InvalidFile(t *testing.T) {
	t.Setenv(PathEnv, "")
	path := filepath.Join(t.TempDir(), "postings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("postings: [unclosed"), 0o644))

	_, err := NewYAMLStore(path).List(context.Background(), Filter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read postings")
}

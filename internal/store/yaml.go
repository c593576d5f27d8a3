package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"placementwiz/internal/posting"
)

// document is the on-disk layout of the YAML store.
type document struct {
	Postings []*posting.Posting `yaml:"postings"`

	// Bookmarks maps a user to the posting IDs they saved.
	Bookmarks map[string][]string `yaml:"bookmarks,omitempty"`
}

// YAMLStore keeps every posting in one YAML file.
//
// Each operation reads the file and each mutation rewrites it atomically
// (write to a temp file, then rename). A missing file is an empty store.
type YAMLStore struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewYAMLStore creates a [YAMLStore] at path, resolved with [ResolvePath].
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{
		path: ResolvePath(path, DefaultYAMLPath),
		now:  time.Now,
	}
}

// Path returns the resolved file location.
func (s *YAMLStore) Path() string {
	return s.path
}

func (s *YAMLStore) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read postings: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to read postings: %w", err)
	}
	return &doc, nil
}

func (s *YAMLStore) write(doc *document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal postings: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to write postings: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write postings: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write postings: %w", err)
	}
	return nil
}

func (d *document) find(id string) *posting.Posting {
	for _, p := range d.Postings {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Save implements [Store].
func (s *YAMLStore) Save(ctx context.Context, p *posting.Posting) error {
	if err := validatePosting(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	stored := *p
	if i := slices.IndexFunc(doc.Postings, func(q *posting.Posting) bool { return q.ID == p.ID }); i >= 0 {
		doc.Postings[i] = &stored
	} else {
		doc.Postings = append(doc.Postings, &stored)
	}
	return s.write(doc)
}

// Get implements [Store].
func (s *YAMLStore) Get(ctx context.Context, id string) (*posting.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	p := doc.find(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// List implements [Store].
func (s *YAMLStore) List(ctx context.Context, f Filter) ([]*posting.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	out := make([]*posting.Posting, 0, len(doc.Postings))
	for _, p := range doc.Postings {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	sortNewest(out)
	return out, nil
}

// SetApproval implements [Store].
func (s *YAMLStore) SetApproval(ctx context.Context, id string, a posting.Approval) error {
	if !a.IsValid() {
		return fmt.Errorf("invalid approval: %s", a)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	p := doc.find(id)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p.Approval = a
	p.UpdatedAt = s.now().UTC()
	return s.write(doc)
}

// Bookmark implements [Store].
func (s *YAMLStore) Bookmark(ctx context.Context, user, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if doc.find(id) == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if slices.Contains(doc.Bookmarks[user], id) {
		return nil
	}
	if doc.Bookmarks == nil {
		doc.Bookmarks = make(map[string][]string)
	}
	doc.Bookmarks[user] = append(doc.Bookmarks[user], id)
	return s.write(doc)
}

// Unbookmark implements [Store].
func (s *YAMLStore) Unbookmark(ctx context.Context, user, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	ids := doc.Bookmarks[user]
	i := slices.Index(ids, id)
	if i < 0 {
		return nil
	}
	doc.Bookmarks[user] = slices.Delete(ids, i, i+1)
	if len(doc.Bookmarks[user]) == 0 {
		delete(doc.Bookmarks, user)
	}
	return s.write(doc)
}

// Bookmarks implements [Store]. Bookmarks of postings that no longer exist
// are skipped.
func (s *YAMLStore) Bookmarks(ctx context.Context, user string) ([]*posting.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	out := make([]*posting.Posting, 0, len(doc.Bookmarks[user]))
	for _, id := range doc.Bookmarks[user] {
		if p := doc.find(id); p != nil {
			out = append(out, p)
		}
	}
	sortNewest(out)
	return out, nil
}

// Close implements [Store]. The YAML store holds no open resources.
func (s *YAMLStore) Close() error {
	return nil
}

package service

import (
	"context"
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kadalikavya/tinylink-backend/models"
)

// memStore is an in-memory Store for tests. Creation order drives a fake
// clock so List ordering is deterministic.
type memStore struct {
	mu    sync.Mutex
	links map[string]*models.Link
	seq   int
}

func newMemStore() *memStore {
	return &memStore{links: make(map[string]*models.Link)}
}

func (m *memStore) CreateLink(_ context.Context, code, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.links[code]; ok {
		return ErrConflict
	}
	m.seq++
	m.links[code] = &models.Link{
		Code:      code,
		URL:       url,
		CreatedAt: time.Unix(0, 0).Add(time.Duration(m.seq) * time.Second),
	}
	return nil
}

func (m *memStore) ListLinks(_ context.Context) ([]models.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Link, 0, len(m.links))
	for _, l := range m.links {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) GetLinkByCode(_ context.Context, code string) (*models.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.links[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) DeleteLink(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.links[code]; !ok {
		return ErrNotFound
	}
	delete(m.links, code)
	return nil
}

func (m *memStore) CodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.links[code]
	return ok, nil
}

func (m *memStore) RecordClick(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.links[code]
	if !ok {
		return nil
	}
	l.Clicks++
	now := time.Now()
	l.LastClicked = &now
	return nil
}

func newTestService(store Store) *Service {
	return NewService(store, NewGenerator(store), zap.NewNop())
}

var autoCodeRe = regexp.MustCompile(`^[A-Za-z0-9]{6}$`)

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		code    string
		wantErr error
	}{
		{"missing url", "", "", ErrMissingURL},
		{"whitespace url", "   ", "", ErrMissingURL},
		{"not a url", "not-a-url", "", ErrInvalidURL},
		{"unsupported scheme", "ftp://example.com/file", "", ErrInvalidURL},
		{"no host", "https://", "", ErrInvalidURL},
		{"code too short", "https://a.com", "short", ErrInvalidCode},
		{"code too long", "https://a.com", "waytoolongcode", ErrInvalidCode},
		{"code bad chars", "https://a.com", "abc-12", ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newMemStore())
			_, err := svc.Create(context.Background(), tt.url, tt.code)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestCreateGeneratesCode(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	link, err := svc.Create(context.Background(), "https://example.com", "")
	require.NoError(t, err)
	assert.Regexp(t, autoCodeRe, link.Code)
	assert.Equal(t, "https://example.com", link.URL)

	stored, err := store.GetLinkByCode(context.Background(), link.Code)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Clicks)
	assert.Nil(t, stored.LastClicked)
}

func TestCreateCustomCode(t *testing.T) {
	svc := newTestService(newMemStore())

	link, err := svc.Create(context.Background(), "https://example.com", "mycode1")
	require.NoError(t, err)
	assert.Equal(t, "mycode1", link.Code)

	// Same code again is a conflict.
	_, err = svc.Create(context.Background(), "https://other.com", "mycode1")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateTrimsCustomCode(t *testing.T) {
	svc := newTestService(newMemStore())

	link, err := svc.Create(context.Background(), "https://example.com", "  mycode1  ")
	require.NoError(t, err)
	assert.Equal(t, "mycode1", link.Code)
}

func TestResolveAndCount(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), "https://example.com", "abc123")
	require.NoError(t, err)

	before := time.Now()
	target, err := svc.ResolveAndCount(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", target)

	link, err := svc.GetByCode(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, 1, link.Clicks)
	require.NotNil(t, link.LastClicked)
	assert.False(t, link.LastClicked.Before(before))

	// Repeated resolutions accumulate.
	_, err = svc.ResolveAndCount(context.Background(), "abc123")
	require.NoError(t, err)
	link, err = svc.GetByCode(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, 2, link.Clicks)
}

func TestResolveUnknownCode(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.ResolveAndCount(context.Background(), "nosuch")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveReservedCodes(t *testing.T) {
	svc := newTestService(newMemStore())

	for _, code := range []string{"api", "healthz", "code", "static", "metrics", "swagger"} {
		_, err := svc.ResolveAndCount(context.Background(), code)
		assert.ErrorIs(t, err, ErrReserved, "code %q", code)
		assert.True(t, IsNotFound(err))
	}
}

func TestDeleteThenGet(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.Create(context.Background(), "https://example.com", "abc123")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "abc123"))

	_, err = svc.GetByCode(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "abc123"), ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService(newMemStore())

	for _, code := range []string{"first1", "second2", "third3"} {
		_, err := svc.Create(context.Background(), "https://example.com", code)
		require.NoError(t, err)
	}

	links, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "third3", links[0].Code)
	assert.Equal(t, "first1", links[2].Code)
}

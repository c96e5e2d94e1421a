package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scriptgen-workers/internal/common/config"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func newMiniStore(t *testing.T, ttlMs int) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewStore(rdb, config.LibraryConfig{KeyPrefix: "script:library:", TTL: ttlMs})
	tick := fixedNow
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s, mr
}

func createScript(title string) models.SavedScript {
	return models.SavedScript{
		Title:       title,
		ProductName: "Satin Slip Dress",
		Category:    "fashion",
		Framework:   "PAS",
		Metrics:     models.SavedScriptMetrics{Views: "1.2M", CTR: "4.1%", Sales: "320"},
		Content:     "Okay, sizing first...",
	}
}

// ==========================
// Save / Get
// ==========================

func TestStore_SaveAndGet(t *testing.T) {
	s, mr := newMiniStore(t, 0)
	ctx := context.Background()

	saved, err := s.Save(ctx, createScript("Sizing Truth"))
	require.NoError(t, err)
	assert.Equal(t, "id-1", saved.ID)
	assert.Equal(t, "2024-03-09", saved.DateCreated)

	assert.True(t, mr.Exists("script:library:id-1"))
	members, err := mr.ZMembers("script:library:index")
	require.NoError(t, err)
	assert.Equal(t, []string{"id-1"}, members)
	assert.Zero(t, mr.TTL("script:library:id-1"))

	got, err := s.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, *saved, *got)
}

func TestStore_SaveKeepsProvidedFields(t *testing.T) {
	s, _ := newMiniStore(t, 0)

	in := createScript("Mine")
	in.ID = "custom"
	in.DateCreated = "2023-11-15"

	saved, err := s.Save(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "custom", saved.ID)
	assert.Equal(t, "2023-11-15", saved.DateCreated)
}

func TestStore_SaveWithTTL(t *testing.T) {
	s, mr := newMiniStore(t, 60000)

	saved, err := s.Save(context.Background(), createScript("Expiring"))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("script:library:"+saved.ID))
}

func TestStore_GetNotFound(t *testing.T) {
	s, _ := newMiniStore(t, 0)

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// ==========================
// List
// ==========================

func TestStore_ListNewestFirst(t *testing.T) {
	s, _ := newMiniStore(t, 0)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.Save(ctx, createScript(title))
		require.NoError(t, err)
	}

	all, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Title)
	assert.Equal(t, "first", all[2].Title)

	top, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	none, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStore_ListDropsExpired(t *testing.T) {
	s, mr := newMiniStore(t, 1000)
	ctx := context.Background()

	_, err := s.Save(ctx, createScript("gone"))
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	list, err := s.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	members, _ := mr.ZMembers("script:library:index")
	assert.Empty(t, members)
}

// ==========================
// Failure paths
// ==========================

func TestStore_SaveFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Store, mr *miniredis.Miniredis)
	}{
		{
			name: "index fails",
			setup: func(s *Store, mr *miniredis.Miniredis) {
				require.NoError(t, mr.Set("script:library:index", "not a sorted set"))
			},
		},
		{
			name:  "client closed",
			setup: func(s *Store, mr *miniredis.Miniredis) { _ = s.rdb.Close() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mr := newMiniStore(t, 0)
			s.WithLogger(logger.NewTestLogger(t))
			tt.setup(s, mr)

			_, err := s.Save(context.Background(), createScript("Broken"))
			assert.ErrorIs(t, err, ErrWriteFailed)
			assert.False(t, mr.Exists("script:library:id-1"), "script key must not outlive a failed index write")
		})
	}
}

func TestStore_ListRedisError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectZRevRange("script:library:index", 0, 4).SetErr(errors.New("connection refused"))

	s := NewStore(rdb, config.LibraryConfig{})
	_, err := s.List(context.Background(), 5)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// HTTP
// ==========================

func TestHTTPHandler(t *testing.T) {
	s, _ := newMiniStore(t, 0)
	_, err := s.Save(context.Background(), createScript("Served"))
	require.NoError(t, err)

	h := NewHTTPHandler(s, 50, logger.NewTestLogger(t))

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/library", http.StatusOK},
		{"/library?limit=1", http.StatusOK},
		{"/library?limit=abc", http.StatusBadRequest},
		{"/library/id-1", http.StatusOK},
		{"/library/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library", nil))
	var body struct {
		Scripts []models.SavedScript `json:"scripts"`
		Count   int                  `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "Served", body.Scripts[0].Title)
}

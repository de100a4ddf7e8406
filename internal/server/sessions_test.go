package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-leadform/pkg/controller"
)

func newStore(t *testing.T, ttl time.Duration, counts *[]int) (*SessionStore, *time.Time) {
	t.Helper()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	factory := func(locale string) (*controller.Controller, error) {
		return controller.New(&stubExtractor{}, controller.WithLocale(locale))
	}
	store := NewSessionStore(ttl, factory, func(n int) { *counts = append(*counts, n) })
	store.now = func() time.Time { return now }
	return store, &now
}

func TestSessionStoreIsolatesVisitors(t *testing.T) {
	var counts []int
	store, _ := newStore(t, time.Minute, &counts)

	a, err := store.Create("en")
	require.NoError(t, err)
	b, err := store.Create("pt-BR")
	require.NoError(t, err)

	require.NoError(t, a.Controller.Change("company", "Acme"))
	assert.Empty(t, b.Controller.Snapshot().Data.Company)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.CSRF, b.CSRF)
	assert.Equal(t, "pt-BR", b.Controller.Locale())
	assert.Equal(t, []int{1, 2}, counts)
}

func TestSessionStoreExpiresIdleSessions(t *testing.T) {
	var counts []int
	store, now := newStore(t, time.Minute, &counts)

	a, err := store.Create("en")
	require.NoError(t, err)
	b, err := store.Create("en")
	require.NoError(t, err)

	*now = now.Add(45 * time.Second)
	_, ok := store.Get(a.ID)
	require.True(t, ok)

	*now = now.Add(30 * time.Second)
	assert.Equal(t, 1, store.Sweep())

	_, ok = store.Get(b.ID)
	assert.False(t, ok)
	_, ok = store.Get(a.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStoreGetExpired(t *testing.T) {
	var counts []int
	store, now := newStore(t, time.Minute, &counts)

	a, err := store.Create("en")
	require.NoError(t, err)
	*now = now.Add(2 * time.Minute)

	_, ok := store.Get(a.ID)
	assert.False(t, ok)
	assert.Zero(t, store.Len())
	assert.Equal(t, []int{1, 0}, counts)
}

package modules

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPutAndGet(t *testing.T) {
	store := NewStore()
	record := store.Put("job", "owner-1", map[string]any{"title": "Engineer"})
	require.NotEmpty(t, record.ID)
	require.Equal(t, "job", record.Kind)
	require.Equal(t, "owner-1", record.OwnerID)

	fetched, ok := store.Get(record.ID)
	require.True(t, ok)
	require.Equal(t, "Engineer", fetched.Fields["title"])

	_, ok = store.Get("missing")
	require.False(t, ok)
}

func TestListNewestFirstAndKindScoped(t *testing.T) {
	store := NewStore()
	for i := 0; i < 3; i++ {
		record := store.Put("job", "", map[string]any{"n": i})
		// Force distinct timestamps so ordering is deterministic.
		record.CreatedAt = record.CreatedAt.Add(time.Duration(i) * time.Second)
	}
	store.Put("budget", "", nil)

	records := store.List("job", nil, 0, 50)
	require.Len(t, records, 3)
	require.Equal(t, 2, records[0].Fields["n"])
	require.Equal(t, 0, records[2].Fields["n"])
}

func TestListFilterAndPagination(t *testing.T) {
	store := NewStore()
	for i := 0; i < 10; i++ {
		record := store.Put("job", "", map[string]any{"even": i%2 == 0})
		record.CreatedAt = record.CreatedAt.Add(time.Duration(i) * time.Second)
	}

	even := func(r *Record) bool {
		v, _ := r.Fields["even"].(bool)
		return v
	}
	require.Len(t, store.List("job", even, 0, 50), 5)
	require.Len(t, store.List("job", even, 0, 2), 2)
	require.Len(t, store.List("job", even, 4, 2), 1)
	require.Empty(t, store.List("job", even, 99, 2))
	require.Equal(t, 5, store.Count("job", even))
	require.Equal(t, 10, store.Count("job", nil))
}

func TestListDefaultsLimit(t *testing.T) {
	store := NewStore()
	for i := 0; i < 60; i++ {
		store.Put("job", "", map[string]any{"n": strconv.Itoa(i)})
	}
	require.Len(t, store.List("job", nil, 0, 0), 50)
}

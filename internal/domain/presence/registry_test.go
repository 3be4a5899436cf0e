package presence

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySetIsLastWriteWins(t *testing.T) {
	r := NewRegistry()

	r.Set("u", "c1")
	r.Set("u", "c2")

	conn, ok := r.Lookup("u")
	require.True(t, ok)
	assert.Equal(t, ConnectionID("c2"), conn)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRemoveIsIdempotent(t *testing.T) {
	tests := []struct {
		name    string
		present bool
	}{
		{name: "present", present: true},
		{name: "absent", present: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			if tt.present {
				r.Set("u", "c1")
			}

			r.Remove("u")
			r.Remove("u")

			_, ok := r.Lookup("u")
			assert.False(t, ok)
			assert.Equal(t, 0, r.Len())
		})
	}
}

func TestRegistryRemoveIf(t *testing.T) {
	r := NewRegistry()
	r.Set("u", "c2")

	assert.False(t, r.RemoveIf("u", "c1"), "stale handle must not evict")
	conn, ok := r.Lookup("u")
	require.True(t, ok)
	assert.Equal(t, ConnectionID("c2"), conn)

	assert.True(t, r.RemoveIf("u", "c2"))
	_, ok = r.Lookup("u")
	assert.False(t, ok)

	assert.False(t, r.RemoveIf("missing", "c2"))
}

func TestRegistrySnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Set("u1", "a")

	snap := r.Snapshot()
	snap["u2"] = "b"

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, map[UserID]ConnectionID{"u1": "a"}, r.Snapshot())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := UserID(fmt.Sprintf("u%d", i))
			conn := ConnectionID(fmt.Sprintf("c%d", i))
			r.Set(user, conn)
			r.Lookup(user)
			if i%2 == 0 {
				r.Remove(user)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, r.Len())
}

package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_GetOrCreateIsStable(t *testing.T) {
	reg := NewRegistry()

	s1 := reg.GetOrCreate("r1")
	s2 := reg.GetOrCreate("r1")
	require.Same(t, s1, s2)
	require.Equal(t, "r1", s1.ID())

	other := reg.GetOrCreate("r2")
	require.NotSame(t, s1, other)
	require.Equal(t, 2, reg.Count())
}

func TestRegistry_ConcurrentFirstJoin(t *testing.T) {
	reg := NewRegistry()

	const n = 50
	results := make([]*Session, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = reg.GetOrCreate("r1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		require.Same(t, results[0], results[i])
	}
	require.Equal(t, 1, reg.Count())
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Lookup("r1")
	require.False(t, ok)

	created := reg.GetOrCreate("r1")
	found, ok := reg.Lookup("r1")
	require.True(t, ok)
	require.Same(t, created, found)
}

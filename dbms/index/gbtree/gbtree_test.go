package gbtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := New[int64](4)
	for _, x := range []int64{5, 1, 9, 3} {
		require.True(t, s.Add(x))
	}
	require.False(t, s.Add(3))
	require.Equal(t, 4, s.Size())

	y, ok := s.Find(4)
	require.True(t, ok)
	require.EqualValues(t, 5, y)
	y, ok = s.Find(9)
	require.True(t, ok)
	require.EqualValues(t, 9, y)
	_, ok = s.Find(10)
	require.False(t, ok)

	y, ok = s.Remove(5)
	require.True(t, ok)
	require.EqualValues(t, 5, y)
	_, ok = s.Remove(5)
	require.False(t, ok)

	y, _ = s.Find(4)
	require.EqualValues(t, 9, y)
	require.Equal(t, 3, s.Size())
}

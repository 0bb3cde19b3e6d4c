package lsm

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyEncodingPreservesOrder(t *testing.T) {
	xs := []int64{math.MinInt64, -1000, -1, 0, 1, 42, math.MaxInt64}
	for i := 1; i < len(xs); i++ {
		a, b := encodeKey(xs[i-1]), encodeKey(xs[i])
		require.Negative(t, bytes.Compare(a, b), "%d vs %d", xs[i-1], xs[i])
	}
	for _, x := range xs {
		require.Equal(t, x, decodeKey(encodeKey(x)))
	}
}

func TestSet(t *testing.T) {
	s, err := Open(WithL0CompactionThreshold(2))
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	for _, x := range []int64{-5, 0, 7, 3} {
		require.True(t, s.Add(x))
	}
	require.False(t, s.Add(7))
	require.Equal(t, 4, s.Size())

	y, ok := s.Find(-10)
	require.True(t, ok)
	require.EqualValues(t, -5, y)
	y, ok = s.Find(1)
	require.True(t, ok)
	require.EqualValues(t, 3, y)
	_, ok = s.Find(8)
	require.False(t, ok)

	y, ok = s.Remove(3)
	require.True(t, ok)
	require.EqualValues(t, 3, y)
	_, ok = s.Remove(3)
	require.False(t, ok)
	require.Equal(t, 3, s.Size())

	y, _ = s.Find(1)
	require.EqualValues(t, 7, y)
}

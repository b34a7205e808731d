package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakPoint(t *testing.T) {
	dir := t.TempDir()

	bp, err := newBreakPoint(dir, "wien")
	require.NoError(t, err)
	assert.False(t, bp.IsDone(3))

	require.NoError(t, bp.SetDone(3))
	require.NoError(t, bp.SetDone(3))
	require.NoError(t, bp.SetDone(5))
	assert.True(t, bp.IsDone(3))
	require.NoError(t, bp.Close())
	assert.Error(t, bp.SetDone(6))

	bp, err = newBreakPoint(dir, "wien")
	require.NoError(t, err)
	defer bp.Close()
	assert.True(t, bp.IsDone(3))
	assert.True(t, bp.IsDone(5))
	assert.False(t, bp.IsDone(4))

	other, err := newBreakPoint(dir, "graz")
	require.NoError(t, err)
	defer other.Close()
	assert.False(t, other.IsDone(3))
}

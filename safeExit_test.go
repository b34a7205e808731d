package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeExit(t *testing.T) {
	s := new(SafeExit)
	var calls []int
	s.Register(func() { calls = append(calls, 1) })
	s.Register(func() { calls = append(calls, 2) })

	s.Exit()
	s.Exit()

	assert.Equal(t, []int{2, 1}, calls)
	assert.True(t, s.exited())
}

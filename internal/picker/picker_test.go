package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickReturnsACandidate(t *testing.T) {
	p := New(&Config{Seed: 42})
	candidates := []string{"alice", "bob", "carol"}

	for i := 0; i < 50; i++ {
		assert.Contains(t, candidates, p.Pick(candidates))
	}
}

func TestPickSeededIsDeterministic(t *testing.T) {
	candidates := []string{"alice", "bob", "carol", "dave"}

	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Pick(candidates), b.Pick(candidates))
	}
}

func TestPickEmpty(t *testing.T) {
	p := New(&Config{Seed: 1})
	assert.Equal(t, "", p.Pick(nil))
	assert.Equal(t, "", p.Pick([]string{}))
}

func TestPickSingle(t *testing.T) {
	p := New(nil)
	assert.Equal(t, "alice", p.Pick([]string{"alice"}))
}

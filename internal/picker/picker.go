package picker

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_picker.go github.com/KirkDiggler/geodraw/internal/picker Picker

// Picker chooses one candidate from a list. Kept behind an interface so
// tests can supply a deterministic chooser.
type Picker interface {
	Pick(candidates []string) string
}

// randomPicker picks uniformly at random
type randomPicker struct {
	random *rand.Rand
}

// Config for the random picker
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new random picker
func New(cfg *Config) *randomPicker {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &randomPicker{
		random: rand.New(source),
	}
}

// Pick returns one of the candidates uniformly at random, or an empty
// string when there are none
func (p *randomPicker) Pick(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[p.random.Intn(len(candidates))]
}

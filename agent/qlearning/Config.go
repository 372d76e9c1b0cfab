package qlearning

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/gemgrid/agent"
)

// Default learning parameters
const (
	DefaultLearningRate float64 = 0.1
	DefaultDiscount     float64 = 0.9
	DefaultEpsilon      float64 = 0.2
	DefaultEpsilonDecay float64 = 0.995
	DefaultEpsilonMin   float64 = 0.01
)

var _ agent.Config = Config{}

// Config represents a configuration for the QLearning agent
type Config struct {
	LearningRate float64 `json:"alpha"`
	Discount     float64 `json:"gamma"`
	Epsilon      float64 `json:"epsilon"` // initial epsilon for behaviour policy
	EpsilonDecay float64 `json:"epsilon_decay"`
	EpsilonMin   float64 `json:"epsilon_min"`
}

// DefaultConfig returns the default configuration: α = 0.1, γ = 0.9,
// and ε starting at 0.2, decaying by 0.995 per episode to at least 0.01
func DefaultConfig() Config {
	return Config{
		LearningRate: DefaultLearningRate,
		Discount:     DefaultDiscount,
		Epsilon:      DefaultEpsilon,
		EpsilonDecay: DefaultEpsilonDecay,
		EpsilonMin:   DefaultEpsilonMin,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("validate: learning rate must be in (0, 1] "+
			"(got %v)", c.LearningRate)
	}
	if c.Discount <= 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in (0, 1] (got %v)",
			c.Discount)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon must be in [0, 1] (got %v)",
			c.Epsilon)
	}
	if c.EpsilonMin < 0 || c.EpsilonMin > c.Epsilon {
		return fmt.Errorf("validate: minimum epsilon must be in [0, %v] "+
			"(got %v)", c.Epsilon, c.EpsilonMin)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return fmt.Errorf("validate: epsilon decay must be in (0, 1] "+
			"(got %v)", c.EpsilonDecay)
	}
	return nil
}

// DecayEpsilon returns max(epsilon * decay, minimum epsilon)
func (c Config) DecayEpsilon(epsilon float64) float64 {
	return math.Max(epsilon*c.EpsilonDecay, c.EpsilonMin)
}

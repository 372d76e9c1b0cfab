package experiment

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/samuelfneumann/gemgrid/agent/qlearning"
)

const (
	DefaultStepInterval time.Duration = 300 * time.Millisecond
	DefaultSettleDelay  time.Duration = time.Second
	DefaultPathCap      int           = 50
)

// Duration is a time.Duration which is written to and read from JSON
// as a string such as "300ms"
type Duration time.Duration

// MarshalJSON implements the json.Marshaler interface
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements the json.Unmarshaler interface. Both
// strings such as "1s" and numbers of nanoseconds are accepted.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("unmarshalJSON: %w", err)
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("unmarshalJSON: invalid duration %v", v)
	}
	return nil
}

// Config configures a Session
type Config struct {
	Agent qlearning.Config `json:"agent"`

	// Seed seeds the exploration source
	Seed uint64 `json:"seed"`

	// StepInterval is the time between steps when the session is
	// driven periodically
	StepInterval Duration `json:"step_interval"`

	// SettleDelay is how long the agent rests on a terminal cell
	// before the next episode starts
	SettleDelay Duration `json:"settle_delay"`

	// PathCap bounds the number of recent steps reported by
	// Session.Trajectory when no explicit bound is given
	PathCap int `json:"path_cap"`
}

// DefaultConfig returns the default session configuration
func DefaultConfig() Config {
	return Config{
		Agent:        qlearning.DefaultConfig(),
		Seed:         0,
		StepInterval: Duration(DefaultStepInterval),
		SettleDelay:  Duration(DefaultSettleDelay),
		PathCap:      DefaultPathCap,
	}
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("validate: invalid agent config: %w", err)
	}
	if c.StepInterval <= 0 {
		return fmt.Errorf("validate: step interval must be positive")
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("validate: settle delay cannot be negative")
	}
	if c.PathCap < 1 {
		return fmt.Errorf("validate: path cap must be at least 1")
	}
	return nil
}

// LoadConfig reads a Config from the JSON file at path. Fields missing
// from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not read config: %w",
			err)
	}

	c := DefaultConfig()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not decode config: %w",
			err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}
	return c, nil
}

package agent

// Config represents a configuration for creating an agent
type Config interface {
	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error
}

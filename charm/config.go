// ABOUTME: Configuration for the Charm KV backend connection
// ABOUTME: Server host and auto-sync settings

package charm

const (
	// DefaultCharmHost is the self-hosted 2389 research server.
	DefaultCharmHost = "charm.2389.dev"

	// AppName names the Charm KV database.
	AppName = "opslog"

	// KeyPrefix namespaces every key this app writes.
	KeyPrefix = "opslog:"

	// StateKey holds the whole state snapshot.
	StateKey = KeyPrefix + "state"
)

// Config holds charm connection settings.
type Config struct {
	Host string

	// AutoSync pushes after every write and pulls on open
	AutoSync bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultCharmHost,
		AutoSync: true,
	}
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.Host == "" {
		out.Host = DefaultCharmHost
	}
	return &out
}

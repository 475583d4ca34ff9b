package runtime

// Config carries the tunables of a Context. The zero value is usable;
// NewContext fills unset limits with defaults.
type Config struct {
	// RandomSeed seeds Math.random.
	RandomSeed int64 `yaml:"random_seed" toml:"random_seed"`
	// PrototypeChainLimit bounds every prototype walk.
	PrototypeChainLimit int `yaml:"prototype_chain_limit" toml:"prototype_chain_limit"`
	// Locale is a BCP 47 tag used by the toLocale* built-ins.
	Locale string `yaml:"locale" toml:"locale"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" toml:"log_level"`
	// Strict makes global scripts run as strict code.
	Strict bool `yaml:"strict" toml:"strict"`
}

const DefaultPrototypeChainLimit = 10000

func (c Config) withDefaults() Config {
	if c.PrototypeChainLimit <= 0 {
		c.PrototypeChainLimit = DefaultPrototypeChainLimit
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	return c
}

package reconcile

import "time"

const (
	BackendFirestore   = "firestore"
	BackendObjectStore = "objectstore"
)

// Config holds sync settings.
type Config struct {
	// Backend is the document store (firestore, objectstore).
	Backend string `mapstructure:"backend" default:"firestore"`
	// Collection overrides the collection derived from the table name.
	Collection string `mapstructure:"collection" default:""`
	// MaxRetries is the number of retries after a failed remote call.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RetryBaseMillis is the first retry delay; later delays double.
	RetryBaseMillis int `mapstructure:"retry_base_millis" default:"200"`
	// WatchDebounceMillis is how long the watch command waits for writes to settle.
	WatchDebounceMillis int `mapstructure:"watch_debounce_millis" default:"500"`
}

// IsValidBackend checks if the configured backend is known.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendFirestore, BackendObjectStore:
		return true
	default:
		return false
	}
}

// RetryPolicy builds the retry policy described by the config.
func (c Config) RetryPolicy() RetryPolicy {
	retries := c.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return RetryPolicy{
		MaxRetries: uint64(retries),
		Base:       time.Duration(c.RetryBaseMillis) * time.Millisecond,
	}
}

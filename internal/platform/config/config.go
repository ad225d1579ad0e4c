package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client captures everything the BFF client needs from the environment.
type Client struct {
	// BaseURL is the admin BFF origin all relative paths resolve against.
	BaseURL string
	// RequestTimeout bounds every outbound call. There is no per-call
	// override; a timed-out call surfaces as a network failure.
	RequestTimeout time.Duration
	// Development widens logger verbosity (INFO without the verbose flag)
	// and disables external error forwarding.
	Development bool
	// StateDir holds the session file and the persisted verbose flag.
	StateDir string
	// RedisURL, when set, switches the session store to Redis.
	RedisURL string
	// LogSinkBrokers and LogSinkTopic, when set, forward production ERROR
	// records to Kafka.
	LogSinkBrokers []string
	LogSinkTopic   string
}

// DefaultBaseURL is used when BFF_API_URL is unset.
const DefaultBaseURL = "http://localhost:3100"

// DefaultRequestTimeout matches the BFF's own upstream budget.
const DefaultRequestTimeout = 10 * time.Second

// FromEnv builds a Client config from environment variables so main stays lean.
func FromEnv() Client {
	baseURL := os.Getenv("BFF_API_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := DefaultRequestTimeout
	if raw := os.Getenv("BFF_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			timeout = d
		}
	}

	stateDir := os.Getenv("BACKOFFICE_STATE_DIR")
	if stateDir == "" {
		if base, err := os.UserConfigDir(); err == nil {
			stateDir = filepath.Join(base, "backoffice")
		} else {
			stateDir = ".backoffice"
		}
	}

	var brokers []string
	if raw := os.Getenv("LOG_SINK_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Client{
		BaseURL:        baseURL,
		RequestTimeout: timeout,
		Development:    os.Getenv("APP_ENV") == "development",
		StateDir:       stateDir,
		RedisURL:       os.Getenv("SESSION_REDIS_URL"),
		LogSinkBrokers: brokers,
		LogSinkTopic:   os.Getenv("LOG_SINK_TOPIC"),
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr           = "0.0.0.0:8080"
	defaultSSHHost            = "0.0.0.0"
	defaultSSHPort            = 2222
	defaultHostKeyPath        = ".data/host_ed25519"
	defaultIdleTimeout        = 10 * time.Minute
	defaultMaxSessions        = 32
	defaultRateLimitPerMinute = 30
	defaultRateLimitBurst     = 10
	defaultPrefsBackend       = PrefsMemory
	defaultPrefsPath          = ".data/prefs.json"
	defaultRedisAddr          = "127.0.0.1:6379"
	defaultLogLevel           = "info"
	defaultResendEndpoint     = "https://api.resend.com/emails"
	maximumConfiguredSessions = 1024
)

// Preference store backends.
const (
	PrefsMemory = "memory"
	PrefsFile   = "file"
	PrefsRedis  = "redis"
)

// Config captures startup settings for the folio entrypoint.
type Config struct {
	HTTPAddr string

	SSHHost            string
	SSHPort            int
	HostKeyPath        string
	IdleTimeout        time.Duration
	MaxSessions        int
	RateLimitPerMinute int
	RateLimitBurst     int

	ContentDir string

	PrefsBackend  string
	PrefsPath     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogFile  string

	Mail Mail
}

// Mail holds the contact relay settings. Missing values are not a load error:
// the contact endpoint reports CONFIG_MISSING at request time instead.
type Mail struct {
	APIKey   string
	To       string
	From     string
	Endpoint string
}

// Complete reports whether every value needed to send mail is present.
func (m Mail) Complete() bool {
	return m.APIKey != "" && m.To != "" && m.From != ""
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	// .env is optional when values come from the environment (Docker, CI).
	_ = godotenv.Load()
	return LoadFromEnv()
}

// LoadFromEnv loads runtime configuration from environment variables.
func LoadFromEnv() (Config, error) {
	httpAddr, err := readRequiredOrDefault("FOLIO_HTTP_ADDR", defaultHTTPAddr)
	if err != nil {
		return Config{}, err
	}

	sshHost, err := readRequiredOrDefault("FOLIO_SSH_HOST", defaultSSHHost)
	if err != nil {
		return Config{}, err
	}

	sshPort, err := readInt("FOLIO_SSH_PORT", defaultSSHPort, 1, 65535)
	if err != nil {
		return Config{}, err
	}

	hostKeyPath, err := readRequiredOrDefault("FOLIO_SSH_HOST_KEY_PATH", defaultHostKeyPath)
	if err != nil {
		return Config{}, err
	}
	cleanHostKeyPath := filepath.Clean(hostKeyPath)
	if cleanHostKeyPath == "." {
		return Config{}, fmt.Errorf("FOLIO_SSH_HOST_KEY_PATH must not resolve to current directory")
	}

	idleTimeout, err := readDuration("FOLIO_SSH_IDLE_TIMEOUT", defaultIdleTimeout)
	if err != nil {
		return Config{}, err
	}

	maxSessions, err := readInt("FOLIO_SSH_MAX_SESSIONS", defaultMaxSessions, 1, maximumConfiguredSessions)
	if err != nil {
		return Config{}, err
	}

	ratePerMinute, err := readInt("FOLIO_RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMinute, 1, 10000)
	if err != nil {
		return Config{}, err
	}

	rateBurst, err := readInt("FOLIO_RATE_LIMIT_BURST", defaultRateLimitBurst, 1, 1000)
	if err != nil {
		return Config{}, err
	}

	contentDir := ""
	if raw, ok := os.LookupEnv("FOLIO_CONTENT_DIR"); ok && strings.TrimSpace(raw) != "" {
		contentDir = filepath.Clean(raw)
	}

	prefsBackend, err := readChoice("FOLIO_PREFS_BACKEND", defaultPrefsBackend, PrefsMemory, PrefsFile, PrefsRedis)
	if err != nil {
		return Config{}, err
	}

	prefsPath, err := readRequiredOrDefault("FOLIO_PREFS_PATH", defaultPrefsPath)
	if err != nil {
		return Config{}, err
	}

	redisAddr, err := readRequiredOrDefault("FOLIO_REDIS_ADDR", defaultRedisAddr)
	if err != nil {
		return Config{}, err
	}

	redisDB, err := readInt("FOLIO_REDIS_DB", 0, 0, 15)
	if err != nil {
		return Config{}, err
	}

	logLevel, err := readChoice("FOLIO_LOG_LEVEL", defaultLogLevel, "debug", "info", "warn", "error")
	if err != nil {
		return Config{}, err
	}

	endpoint, err := readRequiredOrDefault("RESEND_ENDPOINT", defaultResendEndpoint)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPAddr:           httpAddr,
		SSHHost:            sshHost,
		SSHPort:            sshPort,
		HostKeyPath:        cleanHostKeyPath,
		IdleTimeout:        idleTimeout,
		MaxSessions:        maxSessions,
		RateLimitPerMinute: ratePerMinute,
		RateLimitBurst:     rateBurst,
		ContentDir:         contentDir,
		PrefsBackend:       prefsBackend,
		PrefsPath:          filepath.Clean(prefsPath),
		RedisAddr:          redisAddr,
		RedisPassword:      os.Getenv("FOLIO_REDIS_PASSWORD"),
		RedisDB:            redisDB,
		LogLevel:           logLevel,
		LogFile:            strings.TrimSpace(os.Getenv("FOLIO_LOG_FILE")),
		Mail: Mail{
			APIKey:   strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
			To:       strings.TrimSpace(os.Getenv("CONTACT_TO_EMAIL")),
			From:     strings.TrimSpace(os.Getenv("CONTACT_FROM_EMAIL")),
			Endpoint: endpoint,
		},
	}, nil
}

// SSHAddress joins the SSH host and port.
func (c Config) SSHAddress() string {
	return fmt.Sprintf("%s:%d", c.SSHHost, c.SSHPort)
}

func readRequiredOrDefault(key, fallback string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}

	return raw, nil
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}

	return parsed, nil
}

func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

func readChoice(key, fallback string, choices ...string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	value := strings.ToLower(strings.TrimSpace(raw))
	for _, choice := range choices {
		if value == choice {
			return value, nil
		}
	}
	return "", fmt.Errorf("%s must be one of %s", key, strings.Join(choices, "|"))
}

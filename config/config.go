package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultPort               = 8000

	// DefaultExpoAPIURL is the public Expo push service host.
	DefaultExpoAPIURL = "https://exp.host"
	// DefaultExpoAccessTokenEnv names the variable holding the Expo access token.
	DefaultExpoAccessTokenEnv = "EXPO_PUSH_AUTH_TOKEN"
	// MaxExpoBatchSize is the largest batch the Expo push API accepts.
	MaxExpoBatchSize = 100

	defaultExpoRequestTimeout   = 30 * time.Second
	defaultRetryInitialInterval = 500 * time.Millisecond
	defaultRetryMaxInterval     = 5 * time.Second
	defaultMetricsPath          = "/metrics"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Expo push service configuration
	Expo ExpoConfig `json:"expo" yaml:"expo"`

	// Firebase configuration for delivering non-Expo tokens through FCM
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// ExpoConfig defines how the relay talks to the Expo push API
type ExpoConfig struct {
	// Base URL of the push service, without the /--/api/v2 suffix
	APIURL string `json:"apiUrl" yaml:"apiUrl"`

	// Name of the environment variable read at send time for the access token
	AccessTokenEnv string `json:"accessTokenEnv" yaml:"accessTokenEnv"`

	// Messages per push request (1..100)
	BatchSize int `json:"batchSize" yaml:"batchSize"`

	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`

	Retry RetryConfig `json:"retry" yaml:"retry"`
}

// RetryConfig bounds retries of a single push request
type RetryConfig struct {
	MaxRetries      int           `json:"maxRetries" yaml:"maxRetries"`
	InitialInterval time.Duration `json:"initialInterval" yaml:"initialInterval"`
	MaxInterval     time.Duration `json:"maxInterval" yaml:"maxInterval"`
}

// FirebaseConfig defines Firebase configuration for push notifications
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Only variables that land on a leaf of a known YAML section are
	// overlaid; PATH, HOME or a bare ENV stay out of the tree.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Example: EXPO_RETRY_MAXRETRIES -> expo.retry.maxRetries
			key := canonicalizeEnvKey(k, existingConfigMap)
			if !overlaysLeaf(key, existingConfigMap) {
				return "", nil
			}

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills every zero value that has a sensible default.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = defaultPort
	}
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if strings.TrimSpace(c.Env.Log.Level) == "" {
		c.Env.Log.Level = "info"
	}

	if strings.TrimSpace(c.Expo.APIURL) == "" {
		c.Expo.APIURL = DefaultExpoAPIURL
	}
	c.Expo.APIURL = strings.TrimRight(c.Expo.APIURL, "/")
	if strings.TrimSpace(c.Expo.AccessTokenEnv) == "" {
		c.Expo.AccessTokenEnv = DefaultExpoAccessTokenEnv
	}
	if c.Expo.BatchSize <= 0 {
		c.Expo.BatchSize = MaxExpoBatchSize
	}
	if c.Expo.RequestTimeout <= 0 {
		c.Expo.RequestTimeout = defaultExpoRequestTimeout
	}
	if c.Expo.Retry.InitialInterval <= 0 {
		c.Expo.Retry.InitialInterval = defaultRetryInitialInterval
	}
	if c.Expo.Retry.MaxInterval <= 0 {
		c.Expo.Retry.MaxInterval = defaultRetryMaxInterval
	}

	if strings.TrimSpace(c.Metrics.Path) == "" {
		c.Metrics.Path = defaultMetricsPath
	}

	// An empty firebase section is the same as none.
	if c.Firebase != nil && strings.TrimSpace(c.Firebase.CredentialsPath) == "" {
		c.Firebase = nil
	}
}

// Validate rejects values that would only fail later at send time.
func (c *Config) Validate() error {
	if c.Expo.BatchSize > MaxExpoBatchSize {
		return errors.Errorf("expo.batchSize must be at most %d, got %d", MaxExpoBatchSize, c.Expo.BatchSize)
	}
	if c.Expo.Retry.MaxRetries < 0 {
		return errors.Errorf("expo.retry.maxRetries must not be negative, got %d", c.Expo.Retry.MaxRetries)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

// overlaysLeaf reports whether key lands under a known section without
// replacing a whole section with a scalar (ENV must not clobber env.*).
func overlaysLeaf(key string, existing map[string]any) bool {
	segments := strings.Split(key, ".")
	if _, ok := existing[segments[0]]; !ok {
		return false
	}

	var node any = existing
	for _, segment := range segments {
		section, ok := node.(map[string]any)
		if !ok {
			return false
		}

		child, present := section[segment]
		if !present {
			return true
		}
		node = child
	}

	_, isSection := node.(map[string]any)

	return !isSection
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

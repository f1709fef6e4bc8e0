package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  env: test
  serviceName: pushrelay
  log:
    level: debug
http:
  port: 9090
expo:
  apiUrl: https://push.example.com/
  batchSize: 50
  retry:
    maxRetries: 1
    initialInterval: 10ms
metrics:
  enabled: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	t.Chdir(writeConfig(t, testConfigYAML))

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://push.example.com/", cfg.Expo.APIURL)
	assert.Equal(t, 50, cfg.Expo.BatchSize)
	assert.Equal(t, 1, cfg.Expo.Retry.MaxRetries)
	assert.Equal(t, 10*time.Millisecond, cfg.Expo.Retry.InitialInterval)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Nil(t, cfg.Firebase)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	t.Chdir(writeConfig(t, testConfigYAML))
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("EXPO_BATCHSIZE", "25")
	t.Setenv("EXPO_RETRY_INITIALINTERVAL", "2s")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.Equal(t, 25, cfg.Expo.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.Expo.Retry.InitialInterval)
}

func TestLoadWithEnv_IgnoresSectionLevelVariables(t *testing.T) {
	t.Chdir(writeConfig(t, testConfigYAML))
	t.Setenv("ENV", "/etc/shrc")
	t.Setenv("HTTP", "1")
	t.Setenv("ENV_ENV", "staging")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Env.Env)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.yaml not found")
}

func TestNew_AppliesDefaults(t *testing.T) {
	t.Chdir(writeConfig(t, "env:\n  env: test\n"))

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.HTTP.Port)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "info", cfg.Env.Log.Level)
	assert.Equal(t, DefaultExpoAPIURL, cfg.Expo.APIURL)
	assert.Equal(t, DefaultExpoAccessTokenEnv, cfg.Expo.AccessTokenEnv)
	assert.Equal(t, MaxExpoBatchSize, cfg.Expo.BatchSize)
	assert.Equal(t, defaultExpoRequestTimeout, cfg.Expo.RequestTimeout)
	assert.Equal(t, defaultMetricsPath, cfg.Metrics.Path)
}

func TestApplyDefaults_TrimsAPIURLAndDropsEmptyFirebase(t *testing.T) {
	cfg := &Config{}
	cfg.Expo.APIURL = "https://push.example.com/"
	cfg.Firebase = &FirebaseConfig{ProjectID: "demo"}

	cfg.ApplyDefaults()

	assert.Equal(t, "https://push.example.com", cfg.Expo.APIURL)
	assert.Nil(t, cfg.Firebase)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "batch size above provider limit",
			mutate:  func(c *Config) { c.Expo.BatchSize = 101 },
			wantErr: "expo.batchSize",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.Expo.Retry.MaxRetries = -1 },
			wantErr: "expo.retry.maxRetries",
		},
		{
			name:    "relative metrics path",
			mutate:  func(c *Config) { c.Metrics.Path = "metrics" },
			wantErr: "metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.ApplyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

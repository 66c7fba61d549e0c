package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func intPtr(n int) *int { return &n }

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"fuzzy_threshold": 0.85,
		"honesty_threshold": 0.25,
		"top_n": 15,
		"max_retries": 0,
		"retry_base_delay": "500ms",
		"retry_max_delay": 4000,
		"model": "gemini-2.5-flash",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 0.85, cfg.FuzzyThreshold)
	assert.Equal(t, 0.25, cfg.HonestyThreshold)
	assert.Equal(t, 15, cfg.TopN)
	require.NotNil(t, cfg.MaxRetries)
	assert.Equal(t, 0, *cfg.MaxRetries)
	assert.Equal(t, Duration(500*time.Millisecond), cfg.RetryBaseDelay)
	assert.Equal(t, Duration(4*time.Second), cfg.RetryMaxDelay)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "empty path",
			path:    func(*testing.T) string { return "" },
			wantErr: "config path is empty",
		},
		{
			name:    "missing file",
			path:    func(*testing.T) string { return "/nonexistent/path/config.json" },
			wantErr: "failed to read config file",
		},
		{
			name:    "invalid JSON",
			path:    func(t *testing.T) string { return writeConfig(t, `{ invalid json }`) },
			wantErr: "failed to parse config JSON",
		},
		{
			name:    "unknown field",
			path:    func(t *testing.T) string { return writeConfig(t, `{"job_url": "https://example.com"}`) },
			wantErr: "failed to parse config JSON",
		},
		{
			name:    "bad duration",
			path:    func(t *testing.T) string { return writeConfig(t, `{"retry_base_delay": "soon"}`) },
			wantErr: "invalid duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path(t))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty config", cfg: Config{}},
		{name: "defaults", cfg: Defaults()},
		{name: "fuzzy threshold above one", cfg: Config{FuzzyThreshold: 1.5}, wantErr: "'fuzzy_threshold' failed lte=1"},
		{name: "negative honesty threshold", cfg: Config{HonestyThreshold: -0.1}, wantErr: "'honesty_threshold' failed gt=0"},
		{name: "too many retries", cfg: Config{MaxRetries: intPtr(50)}, wantErr: "'max_retries' failed max=10"},
		{name: "zero retries allowed", cfg: Config{MaxRetries: intPtr(0)}},
		{name: "bad log format", cfg: Config{LogFormat: "xml"}, wantErr: "'log_format' failed oneof"},
		{
			name:    "base delay above max",
			cfg:     Config{RetryBaseDelay: Duration(10 * time.Second), RetryMaxDelay: Duration(time.Second)},
			wantErr: "exceeds 'retry_max_delay'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{TopN: 5, MaxRetries: intPtr(0)}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 5, merged.TopN)
	assert.Equal(t, 0, *merged.MaxRetries)
	assert.Equal(t, Defaults().FuzzyThreshold, merged.FuzzyThreshold)
	assert.Equal(t, Defaults().HonestyThreshold, merged.HonestyThreshold)
	assert.Equal(t, Defaults().Model, merged.Model)
	assert.Equal(t, "text", merged.LogFormat)

	// the receiver is not modified
	assert.Equal(t, 0.0, cfg.FuzzyThreshold)

	empty := Config{}
	assert.Equal(t, *Defaults().MaxRetries, *empty.MergeWithDefaults(Defaults()).MaxRetries)
}

func TestRetryPolicy(t *testing.T) {
	cfg := Config{
		MaxRetries:     intPtr(1),
		RetryBaseDelay: Duration(200 * time.Millisecond),
	}
	policy := cfg.RetryPolicy()

	assert.Equal(t, 1, policy.MaxRetries)
	assert.Equal(t, 200*time.Millisecond, policy.BaseDelay)
	assert.Greater(t, policy.MaxDelay, time.Duration(0))
}

func TestDuration_JSON(t *testing.T) {
	data, err := json.Marshal(Duration(1500 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, `"1.5s"`, string(data))

	var d Duration
	require.NoError(t, json.Unmarshal(data, &d))
	assert.Equal(t, Duration(1500*time.Millisecond), d)
}

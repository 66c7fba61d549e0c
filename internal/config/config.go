// Package config provides configuration loading and validation for the CLI.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-guard/internal/llm"
	"github.com/jonathan/resume-guard/internal/parsing"
	"github.com/jonathan/resume-guard/internal/repair"
	"github.com/jonathan/resume-guard/internal/rewriting"
)

// Duration is a time.Duration written as a Go duration string ("1s", "250ms") in JSON
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of milliseconds
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("duration must be a string like \"1s\" or milliseconds: %s", data)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// MarshalJSON writes the duration as a string
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or come from CLI flags.
type Config struct {
	// Matching
	FuzzyThreshold   float64 `json:"fuzzy_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	HonestyThreshold float64 `json:"honesty_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	TopN             int     `json:"top_n,omitempty" validate:"omitempty,min=1,max=200"`

	// Generation
	MaxRetries     *int     `json:"max_retries,omitempty" validate:"omitempty,min=0,max=10"`
	RetryBaseDelay Duration `json:"retry_base_delay,omitempty"`
	RetryMaxDelay  Duration `json:"retry_max_delay,omitempty"`
	APIKey         string   `json:"api_key,omitempty"`
	Model          string   `json:"model,omitempty"`

	// Output
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=text json"`
	Verbose   bool   `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	maxRetries := repair.DefaultMaxRetries
	return Config{
		FuzzyThreshold:   parsing.DefaultFuzzyThreshold,
		HonestyThreshold: rewriting.DefaultHonestyThreshold,
		TopN:             parsing.DefaultTopN,
		MaxRetries:       &maxRetries,
		RetryBaseDelay:   Duration(repair.DefaultBaseDelay),
		RetryMaxDelay:    Duration(repair.DefaultMaxDelay),
		Model:            llm.DefaultConfig().GetModel(llm.TierAdvanced),
		LogFormat:        "text",
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed %s%s", fe.Field(), fe.Tag(), paramSuffix(fe.Param())))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.RetryBaseDelay < 0 || c.RetryMaxDelay < 0 {
		return fmt.Errorf("config error: retry delays must be non-negative")
	}
	if c.RetryBaseDelay > 0 && c.RetryMaxDelay > 0 && c.RetryBaseDelay > c.RetryMaxDelay {
		return fmt.Errorf("config error: 'retry_base_delay' exceeds 'retry_max_delay'")
	}

	return nil
}

func paramSuffix(param string) string {
	if param == "" {
		return ""
	}
	return "=" + param
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.FuzzyThreshold == 0 {
		result.FuzzyThreshold = defaults.FuzzyThreshold
	}
	if result.HonestyThreshold == 0 {
		result.HonestyThreshold = defaults.HonestyThreshold
	}
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.MaxRetries == nil && defaults.MaxRetries != nil {
		n := *defaults.MaxRetries
		result.MaxRetries = &n
	}
	if result.RetryBaseDelay == 0 {
		result.RetryBaseDelay = defaults.RetryBaseDelay
	}
	if result.RetryMaxDelay == 0 {
		result.RetryMaxDelay = defaults.RetryMaxDelay
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// bools cannot distinguish unset from false; CLI flags win

	return result
}

// RetryPolicy returns the retry policy described by the configuration
func (c *Config) RetryPolicy() repair.Policy {
	policy := repair.DefaultPolicy()
	if c.MaxRetries != nil {
		policy.MaxRetries = *c.MaxRetries
	}
	if c.RetryBaseDelay > 0 {
		policy.BaseDelay = time.Duration(c.RetryBaseDelay)
	}
	if c.RetryMaxDelay > 0 {
		policy.MaxDelay = time.Duration(c.RetryMaxDelay)
	}
	return policy
}

package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/stricklysoft-enrichers/internal/testutil"
	sserr "github.com/StricklySoft/stricklysoft-enrichers/pkg/errors"
	"github.com/StricklySoft/stricklysoft-enrichers/pkg/exception"
)

var configEnvVars = []string{
	"FRIENDLY_PROPERTY_NAME",
	"FRIENDLY_LINE_SEPARATOR",
	"FRIENDLY_ERROR_KEYS",
	"FRIENDLY_MAX_DEPTH",
	"FRIENDLY_PREPARE",
	"FRIENDLY_CACHED_TRACE",
	"FRIENDLY_SPAN_EVENTS",
}

// clearConfigEnv unsets every variable LoadConfig reads.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		testutil.UnsetEnv(t, key)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	assert.Equal(t, "FriendlyException", cfg.PropertyName)
	assert.Equal(t, "\n", cfg.LineSeparator)
	assert.Equal(t, exception.DefaultMaxDepth, cfg.MaxDepth)
	assert.Empty(t, cfg.ErrorKeys)
	assert.False(t, cfg.PrepareForSerialization)
	assert.False(t, cfg.IncludeCachedTrace)
	assert.False(t, cfg.RecordSpanEvents)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*Config)
		code   sserr.Code
		field  string
	}{
		{"empty property name", func(c *Config) { c.PropertyName = "" }, sserr.CodeValidationRequired, "PropertyName"},
		{"reserved property name", func(c *Config) { c.PropertyName = exception.AsyncStackTraceKey }, sserr.CodeValidation, "PropertyName"},
		{"empty line separator", func(c *Config) { c.LineSeparator = "" }, sserr.CodeValidationRequired, "LineSeparator"},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, sserr.CodeValidationRange, "MaxDepth"},
		{"excessive depth", func(c *Config) { c.MaxDepth = maxDepthLimit + 1 }, sserr.CodeValidationRange, "MaxDepth"},
		{"empty error key", func(c *Config) { c.ErrorKeys = []string{"error", ""} }, sserr.CodeValidationFormat, "ErrorKeys"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			testutil.RequireErrorCode(t, err, tt.code)
			ssErr, _ := sserr.AsError(err)
			assert.Equal(t, tt.field, ssErr.Details["field"])
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Env(t *testing.T) {
	clearConfigEnv(t)
	testutil.SetEnv(t, "FRIENDLY_PROPERTY_NAME", "exception.friendly")
	testutil.SetEnv(t, "FRIENDLY_LINE_SEPARATOR", `\r\n`)
	testutil.SetEnv(t, "FRIENDLY_ERROR_KEYS", "error, err")
	testutil.SetEnv(t, "FRIENDLY_MAX_DEPTH", "8")
	testutil.SetEnv(t, "FRIENDLY_PREPARE", "true")
	testutil.SetEnv(t, "FRIENDLY_CACHED_TRACE", "true")
	testutil.SetEnv(t, "FRIENDLY_SPAN_EVENTS", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Config{
		PropertyName:            "exception.friendly",
		LineSeparator:           "\r\n",
		ErrorKeys:               []string{"error", "err"},
		MaxDepth:                8,
		PrepareForSerialization: true,
		IncludeCachedTrace:      true,
		RecordSpanEvents:        true,
	}, cfg)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	clearConfigEnv(t)
	path := testutil.TempConfigFile(t, `
property_name: FromFile
max_depth: 16
error_keys: [error]
span_events: true
`, ".yaml")
	testutil.SetEnv(t, "FRIENDLY_MAX_DEPTH", "4")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "FromFile", cfg.PropertyName)
	assert.Equal(t, 4, cfg.MaxDepth, "env overrides the file")
	assert.Equal(t, []string{"error"}, cfg.ErrorKeys)
	assert.True(t, cfg.RecordSpanEvents)
	assert.Equal(t, "\n", cfg.LineSeparator)
}

func TestLoadConfig_JSONFile(t *testing.T) {
	clearConfigEnv(t)
	path := testutil.TempConfigFile(t, `{"line_separator": "\r\n", "prepare": true}`, ".json")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "\r\n", cfg.LineSeparator)
	assert.True(t, cfg.PrepareForSerialization)
	assert.Equal(t, DefaultPropertyName, cfg.PropertyName)
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearConfigEnv(t)
	testutil.SetEnv(t, "FRIENDLY_MAX_DEPTH", "0")
	_, err := LoadConfig("")
	testutil.RequireErrorCode(t, err, sserr.CodeValidationRange)

	testutil.SetEnv(t, "FRIENDLY_MAX_DEPTH", "deep")
	_, err = LoadConfig("")
	testutil.RequireErrorCode(t, err, sserr.CodeInternalConfiguration)
}

package enrich

import (
	"slices"

	"github.com/StricklySoft/stricklysoft-enrichers/pkg/config"
	sserr "github.com/StricklySoft/stricklysoft-enrichers/pkg/errors"
	"github.com/StricklySoft/stricklysoft-enrichers/pkg/exception"
)

const (
	// DefaultPropertyName is the attribute key of the friendly message.
	DefaultPropertyName = "FriendlyException"

	// EnvPrefix prefixes the environment variables read by [LoadConfig].
	EnvPrefix = "FRIENDLY"

	maxDepthLimit = 1024
)

// Config controls a [Handler].
type Config struct {
	// PropertyName is the attribute key the friendly message is stored
	// under.
	PropertyName string `env:"PROPERTY_NAME" envDefault:"FriendlyException" yaml:"property_name" json:"property_name" required:"true"`

	// LineSeparator is the line break found in error messages and native
	// stack traces.
	LineSeparator string `env:"LINE_SEPARATOR" envDefault:"\n" escape:"true" yaml:"line_separator" json:"line_separator"`

	// ErrorKeys restricts which attributes may carry the error. Empty
	// means any error-valued attribute.
	ErrorKeys []string `env:"ERROR_KEYS" yaml:"error_keys" json:"error_keys"`

	// MaxDepth bounds how many nested errors are converted.
	MaxDepth int `env:"MAX_DEPTH" envDefault:"64" yaml:"max_depth" json:"max_depth"`

	// PrepareForSerialization caches friendly stack traces on the
	// converted exception graph before rendering.
	PrepareForSerialization bool `env:"PREPARE" envDefault:"false" yaml:"prepare" json:"prepare"`

	// IncludeCachedTrace also emits the cached trace of the outermost
	// exception under [exception.AsyncStackTraceKey]. It has no effect
	// unless PrepareForSerialization is set.
	IncludeCachedTrace bool `env:"CACHED_TRACE" envDefault:"false" yaml:"cached_trace" json:"cached_trace"`

	// RecordSpanEvents adds an "exception" event to the recording span
	// found in the record's context.
	RecordSpanEvents bool `env:"SPAN_EVENTS" envDefault:"false" yaml:"span_events" json:"span_events"`
}

// DefaultConfig returns the configuration used by [WithFriendlyException].
func DefaultConfig() Config {
	return Config{
		PropertyName:  DefaultPropertyName,
		LineSeparator: exception.DefaultLineSeparator,
		MaxDepth:      exception.DefaultMaxDepth,
	}
}

// Validate implements [config.Validator].
func (c *Config) Validate() error {
	if c.PropertyName == "" {
		return sserr.New(sserr.CodeValidationRequired,
			"enrich: property name must not be empty").WithDetail("field", "PropertyName")
	}
	if c.PropertyName == exception.AsyncStackTraceKey {
		return sserr.Newf(sserr.CodeValidation,
			"enrich: property name %q is reserved for the cached stack trace", c.PropertyName).
			WithDetail("field", "PropertyName")
	}
	if c.LineSeparator == "" {
		return sserr.New(sserr.CodeValidationRequired,
			"enrich: line separator must not be empty").WithDetail("field", "LineSeparator")
	}
	if c.MaxDepth < 1 || c.MaxDepth > maxDepthLimit {
		return sserr.Newf(sserr.CodeValidationRange,
			"enrich: max depth %d is out of range [1, %d]", c.MaxDepth, maxDepthLimit).
			WithDetail("field", "MaxDepth")
	}
	if slices.Contains(c.ErrorKeys, "") {
		return sserr.New(sserr.CodeValidationFormat,
			"enrich: error keys must not contain an empty key").WithDetail("field", "ErrorKeys")
	}
	return nil
}

// LoadConfig resolves a Config from defaults, the optional YAML or JSON
// file at path (empty for none) and FRIENDLY_* environment variables.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	loader := config.New().WithEnvPrefix(EnvPrefix)
	if path != "" {
		loader = loader.WithFile(path)
	}
	if err := loader.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

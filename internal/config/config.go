// Package config holds the run settings and their loading and validation.
//
// Precedence, highest first: command-line flags (bound into viper by the
// cmd layer), the YAML config file, GEMMATRAN_-prefixed environment
// variables, built-in defaults.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/vkozyrev/gemmatran/internal"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// GEMMATRAN_MODEL_NAME.
const EnvPrefix = "GEMMATRAN"

// AutoCode as a source code asks for language auto-detection.
const AutoCode = "auto"

// Settings is the immutable per-run configuration. Construct it through
// Load; it is not mutated after that.
type Settings struct {
	ModelName    string `mapstructure:"model_name" validate:"required"`
	APIBase      string `mapstructure:"api_base" validate:"required,url"`
	API          string `mapstructure:"api" validate:"required,oneof=ollama openai"`
	SourceLang   string `mapstructure:"source_lang"`
	SourceCode   string `mapstructure:"source_code" validate:"required"`
	TargetLang   string `mapstructure:"target_lang"`
	TargetCode   string `mapstructure:"target_code" validate:"required"`
	ChunkSize    int    `mapstructure:"chunk_size" validate:"gt=0"`
	ChunkOverlap int    `mapstructure:"chunk_overlap" validate:"gte=0"`
}

// Source returns the source language pair.
func (s *Settings) Source() internal.Language {
	return internal.Language{Name: s.SourceLang, Code: s.SourceCode}
}

// Target returns the target language pair.
func (s *Settings) Target() internal.Language {
	return internal.Language{Name: s.TargetLang, Code: s.TargetCode}
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("model_name", "translategemma:12b")
	v.SetDefault("api_base", "http://localhost:11434")
	v.SetDefault("api", "ollama")
	// Language names are resolved from the codes when not set, so only
	// the codes carry defaults; overriding just a code never leaves a
	// stale default name behind.
	v.SetDefault("source_code", "en")
	v.SetDefault("target_code", "es")
	v.SetDefault("chunk_size", 1000)
	v.SetDefault("chunk_overlap", 0)
}

// Load unmarshals the merged configuration from v, fills in missing
// language names from their codes, and validates the result. A non-nil
// error is a configuration error; nothing has been translated yet.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if s.SourceLang == "" && s.SourceCode != "" && s.SourceCode != AutoCode {
		s.SourceLang = LanguageName(s.SourceCode)
	}
	if s.TargetLang == "" && s.TargetCode != "" {
		s.TargetLang = LanguageName(s.TargetCode)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks field constraints and the cross-field overlap rule.
func (s *Settings) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if s.ChunkOverlap >= s.ChunkSize {
		return fmt.Errorf("invalid configuration: chunk_overlap (%d) must be smaller than chunk_size (%d)", s.ChunkOverlap, s.ChunkSize)
	}
	return nil
}

// LanguageName resolves an ISO 639-1 code to its English display name
// ("uk" → "Ukrainian"). Unknown codes come back unchanged so the prompt
// still names something.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

package consumer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is stripped from environment variables during loading
// (e.g., OAUTH_GITHUB__CLIENT_ID → github.client_id)
const DefaultEnvPrefix = "OAUTH_"

// LoadOptions configures Load
type LoadOptions struct {
	// File is an optional TOML file to load first
	File string

	// Section selects a nested table, e.g. "github" for [github]. Empty means top level.
	Section string

	// EnvPrefix overrides DefaultEnvPrefix
	EnvPrefix string

	// DefaultCallbackURL is used when no source sets callback_url
	DefaultCallbackURL string

	// EnvironFunc replaces os.Environ. Useful in tests.
	EnvironFunc func() []string
}

type credentialsConfig struct {
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret"`
	CallbackURL  string `json:"callback_url" validate:"omitempty,url"`
}

// Load reads credentials with precedence: defaults → config file → environment variables.
// A missing client ID yields an error wrapping ErrMissingClientID.
func Load(opts LoadOptions) (Credentials, error) {
	k := koanf.New(".")

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	environFunc := opts.EnvironFunc
	if environFunc == nil {
		environFunc = os.Environ
	}

	// 1. Defaults
	if opts.DefaultCallbackURL != "" {
		defaults := map[string]any{sectionKey(opts.Section, "callback_url"): opts.DefaultCallbackURL}
		if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
			return Credentials{}, fmt.Errorf("loading defaults: %w", err)
		}
	}

	// 2. Config file
	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), toml.Parser()); err != nil {
			return Credentials{}, fmt.Errorf("loading config file: %w", err)
		}
	}

	// 3. Environment variables
	envProvider := env.Provider(".", env.Opt{
		Prefix: prefix,
		TransformFunc: func(key, value string) (string, any) {
			stripped := strings.TrimPrefix(key, prefix)
			nested := strings.ToLower(strings.ReplaceAll(stripped, "__", "."))
			return nested, value
		},
		EnvironFunc: environFunc,
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Credentials{}, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := &credentialsConfig{}
	if err := k.UnmarshalWithConf(opts.Section, cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return Credentials{}, fmt.Errorf("unmarshaling credentials: %w", err)
	}

	if err := validate(cfg); err != nil {
		return Credentials{}, fmt.Errorf("invalid credentials: %w", err)
	}

	return NewCredentials(cfg.ClientID, cfg.ClientSecret, cfg.CallbackURL), nil
}

func validate(cfg *credentialsConfig) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "ClientID" {
				return ErrMissingClientID
			}
		}
	}
	return err
}

func sectionKey(section, key string) string {
	if section == "" {
		return key
	}
	return section + "." + key
}

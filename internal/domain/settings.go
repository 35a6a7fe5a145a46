package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Settings holds project-level configuration loaded from .standard.yml.
type Settings struct {
	Fix            bool     `yaml:"fix"             json:"fix,omitempty"`
	Format         string   `yaml:"format"          json:"format,omitempty"          validate:"omitempty,formatter"`
	Parallel       bool     `yaml:"parallel"        json:"parallel,omitempty"`
	RubyVersion    string   `yaml:"ruby_version"    json:"ruby_version,omitempty"    validate:"omitempty,rubyversion"`
	DefaultIgnores *bool    `yaml:"default_ignores" json:"default_ignores,omitempty"`
	Ignore         []Ignore `yaml:"ignore"          json:"ignore,omitempty"          validate:"dive"`
	ExtendConfig   []string `yaml:"extend_config"   json:"extend_config,omitempty"   validate:"dive,required"`
	Plugins        []string `yaml:"plugins"         json:"plugins,omitempty"         validate:"dive,required"`

	// Path is the file the settings were read from; empty for defaults.
	Path string `yaml:"-" json:"path,omitempty"`
}

// DefaultSettings returns settings that change nothing.
func DefaultSettings() Settings {
	return Settings{}
}

// UsesDefaultIgnores reports whether DefaultIgnores apply.
func (s Settings) UsesDefaultIgnores() bool {
	return s.DefaultIgnores == nil || *s.DefaultIgnores
}

// EffectiveRubyVersion returns the configured target Ruby version or the default.
func (s Settings) EffectiveRubyVersion() string {
	if s.RubyVersion == "" {
		return DefaultRubyVersion
	}
	return s.RubyVersion
}

var (
	rubyVersionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)
	formatterPattern   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_:]*$`)

	settingsValidate = newSettingsValidator()
)

func newSettingsValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("rubyversion", func(fl validator.FieldLevel) bool {
		return rubyVersionPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("formatter", func(fl validator.FieldLevel) bool {
		return formatterPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks the settings for invalid values and returns a descriptive error.
func (s Settings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for i, ig := range s.Ignore {
		if strings.TrimSpace(ig.Pattern) == "" {
			return fmt.Errorf("%w: ignore[%d] has an empty pattern", ErrInvalidConfig, i)
		}
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "rubyversion":
		return fmt.Sprintf("ruby_version %q is not a Ruby version like 3.2", fe.Value())
	case "formatter":
		return fmt.Sprintf("format %q is not a formatter name", fe.Value())
	case "required":
		return fmt.Sprintf("%s must not contain empty entries", fe.Namespace())
	default:
		return fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
	}
}

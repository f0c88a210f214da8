package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// mapSize matches the "WIDTHxHEIGHT" form the static map service expects
var mapSize = regexp.MustCompile(`^[1-9][0-9]{0,3}x[1-9][0-9]{0,3}$`)

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report config keys rather than Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("mapsize", func(fl validator.FieldLevel) bool {
		return mapSize.MatchString(fl.Field().String())
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		lc := sl.Current().Interface().(LoggingConfig)
		if lc.Output == "file" && lc.FilePath == "" {
			sl.ReportError(lc.FilePath, "file_path", "FilePath", "required_with_file_output", "")
		}
	}, LoggingConfig{})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		dc := sl.Current().Interface().(DatabaseConfig)
		if dc.Type == "postgres" && dc.URL == "" && (dc.Host == "" || dc.Name == "") {
			sl.ReportError(dc.URL, "url", "URL", "url_or_host_and_name", "")
		}
	}, DatabaseConfig{})

	return v
}

// ValidateConfig checks cfg against its struct tags and the cross-field
// rules, listing every failure by config key
func ValidateConfig(cfg *Config) error {
	err := newConfigValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := fe.Namespace()
		if _, rest, ok := strings.Cut(key, "."); ok {
			key = rest
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		lines = append(lines, fmt.Sprintf("%s: %s (got %v)", key, rule, fe.Value()))
	}
	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

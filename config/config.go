// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/filesystem"
	"github.com/touchctl/touchctl/where"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// Parse converts raw command-line values into the type of the field registered under name.
func Parse(name string, raw []string) (any, error) {
	field, ok := Default[name]
	if !ok {
		return nil, fmt.Errorf("unknown key %s", name)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("no value given for %s", name)
	}

	var (
		v   any
		err error
	)

	switch field.Value.(type) {
	case string:
		v = raw[0]
	case int:
		v, err = cast.ToIntE(raw[0])
	case float64:
		v, err = cast.ToFloat64E(raw[0])
	case bool:
		v, err = cast.ToBoolE(raw[0])
	case []string:
		v = raw
	default:
		err = fmt.Errorf("unsupported type %T", field.Value)
	}

	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", field.typeName(), strings.Join(raw, " "), err)
	}

	return v, nil
}

// Package configmanager loads the installer configuration from files,
// environment variables, and flags.
//
// Configuration priority: defaults < config file < environment variables < flags.
package configmanager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	v1alpha1 "github.com/ffcarrasco/astrogaia-setup/pkg/apis/setup/v1alpha1"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/envvar"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/notify"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/timer"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// configName is the config file base name, astrogaia-setup.yaml.
	configName = "astrogaia-setup"
	// envPrefix prefixes environment variable overrides,
	// e.g. ASTROGAIA_SETUP_ENV_NAME.
	envPrefix = "ASTROGAIA_SETUP"
)

// flagBindings maps flag names to configuration keys.
//
//nolint:gochecknoglobals // Static lookup table.
var flagBindings = map[string]string{
	"repo":                "repo.url",
	"branch":              "repo.branch",
	"clone-dir":           "repo.dir",
	"env-name":            "env.name",
	"python":              "python.binary",
	"ignore-check-python": "python.ignorecheck",
}

// ConfigManager implements configuration management for v1alpha1.Setup.
type ConfigManager struct {
	Viper        *viper.Viper
	Config       *v1alpha1.Setup
	Writer       io.Writer
	configLoaded bool
}

// NewConfigManager creates a configuration manager writing notifications to writer.
func NewConfigManager(writer io.Writer) *ConfigManager {
	return &ConfigManager{
		Viper:  InitializeViper(),
		Config: v1alpha1.NewSetup(),
		Writer: writer,
	}
}

// InitializeViper creates a Viper instance with config paths, environment
// handling, and defaults registered.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()

	viperInstance.SetConfigName(configName)
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err == nil {
		viperInstance.AddConfigPath(filepath.Join(home, ".config", configName))
	}

	viperInstance.SetEnvPrefix(envPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	setDefaults(viperInstance)

	return viperInstance
}

// setDefaults registers the default Setup values so every key is known to
// Viper and can be overridden from the environment.
func setDefaults(viperInstance *viper.Viper) {
	defaults := v1alpha1.NewSetup()

	viperInstance.SetDefault("repo.url", defaults.Repo.URL)
	viperInstance.SetDefault("repo.branch", defaults.Repo.Branch)
	viperInstance.SetDefault("repo.dir", defaults.Repo.Dir)
	viperInstance.SetDefault("repo.manifest", defaults.Repo.Manifest)
	viperInstance.SetDefault("repo.entrypoint", defaults.Repo.Entrypoint)
	viperInstance.SetDefault("env.name", defaults.Env.Name)
	viperInstance.SetDefault("python.binary", defaults.Python.Binary)
	viperInstance.SetDefault("python.minversion", defaults.Python.MinVersion)
	viperInstance.SetDefault("python.ignorecheck", defaults.Python.IgnoreCheck)
}

// BindFlags binds recognized flags from the flag set onto configuration keys.
// Unknown flags are left alone.
func (m *ConfigManager) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagBindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}

		err := m.Viper.BindPFlag(key, flag)
		if err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	return nil
}

// LoadConfig loads the configuration. A missing config file is not an error;
// defaults, environment variables, and bound flags still apply. Returns the
// loaded config, cached on subsequent calls.
func (m *ConfigManager) LoadConfig(tmr timer.Timer) (*v1alpha1.Setup, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	err = m.Viper.Unmarshal(m.Config, viper.DecodeHook(expandEnvHook()))
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	err = m.Config.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	m.configLoaded = true

	if used := m.Viper.ConfigFileUsed(); used != "" {
		notify.SuccessWithTimerf(m.Writer, tmr, "config loaded from %s", used)
	} else {
		notify.SuccessWithTimerf(m.Writer, tmr, "config loaded (defaults)")
	}

	return m.Config, nil
}

// expandEnvHook expands ${VAR} placeholders in every string-typed config value.
func expandEnvHook() mapstructure.DecodeHookFunc {
	return mapstructure.DecodeHookFuncType(
		func(from reflect.Type, to reflect.Type, data any) (any, error) {
			if from.Kind() != reflect.String || to.Kind() != reflect.String {
				return data, nil
			}

			value, ok := data.(string)
			if !ok {
				return data, nil
			}

			return envvar.Expand(value), nil
		},
	)
}

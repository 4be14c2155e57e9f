package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/logging"
	"github.com/alekulyn/limo/pkg/paths"
)

// EnvPrefix is the prefix of configuration environment variables.
const EnvPrefix = "LIMO_"

// Variables that share the prefix but select files and directories rather
// than configuration keys.
var reservedEnv = map[string]bool{
	paths.EnvConfigDir:  true,
	paths.EnvDataDir:    true,
	paths.EnvStateDir:   true,
	paths.EnvConfigFile: true,
}

// Load merges the defaults, the user file at configFile (skipped when it
// does not exist or configFile is empty) and the environment.
func Load(configFile string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(confmap.Provider(getSystemDefaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default config")
	}

	// 2. User file
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configFile).
					WithDetail("path", configFile)
			}
			logger.Debug().Str("path", configFile).Msg("Loaded user config")
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", configFile)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				lowerStringHookFunc("level", "format"),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 5. Post-process
	postProcessConfig(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("deployers", len(cfg.Deployers)).
		Int("dialects", len(cfg.Dialects)).
		Msg("Configuration loaded")
	return &cfg, nil
}

// envKey maps LIMO_OUTPUT_FORMAT to output.format. Only the first
// underscore separates section and key, so LIMO_LOGGING_SOME_KEY becomes
// logging.some_key.
func envKey(s string) string {
	if reservedEnv[s] {
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func getSystemDefaults() map[string]interface{} {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return map[string]interface{}{}
	}
	return k.All()
}

// lowerStringHookFunc lower-cases and trims the string values stored under
// keys whenever a map is decoded into a struct.
func lowerStringHookFunc(keys ...string) mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.Map || t.Kind() != reflect.Struct {
			return data, nil
		}
		m, ok := data.(map[string]interface{})
		if !ok {
			return data, nil
		}
		for _, key := range keys {
			if s, ok := m[key].(string); ok {
				m[key] = strings.ToLower(strings.TrimSpace(s))
			}
		}
		return m, nil
	}
}

func postProcessConfig(cfg *Config) {
	for i := range cfg.Deployers {
		expandDirs(&cfg.Deployers[i])
	}
}

/*
Package config loads settings of the `sqlcond` command. Sources are layered in
order of increasing priority: built-in defaults, an optional YAML file, then
environment variables prefixed with "SQLCOND_".

	SQLCOND_SEP=OR
	SQLCOND_NULL_POLICY=skip
	SQLCOND_LOG_LEVEL=debug
	SQLCOND_LOG_FORMAT=console
*/
package config

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mitranim/sqlcond"
)

// Prefix of environment variables recognized by `Load`.
const EnvPrefix = `SQLCOND_`

type Config struct {
	Sep        string `koanf:"sep"         yaml:"sep"         validate:"required,oneof=AND OR and or"`
	NullPolicy string `koanf:"null_policy" yaml:"null_policy" validate:"oneof=is_null skip bind"`
	Log        Log    `koanf:"log"         yaml:"log"`
}

type Log struct {
	Level  string `koanf:"level"  yaml:"level"  validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" yaml:"format" validate:"oneof=json console"`
}

func Default() Config {
	return Config{
		Sep:        sqlcond.DefaultSep,
		NullPolicy: sqlcond.NullIsNull.String(),
		Log: Log{
			Level:  `info`,
			Format: `json`,
		},
	}
}

/*
Loads the configuration. An empty path skips the file layer. The result is
validated before being returned.
*/
func Load(path string) (Config, error) {
	k := koanf.New(`.`)

	defaults := Default()
	err := k.Load(structs.Provider(&defaults, `koanf`), nil)
	if err != nil {
		return Config{}, errors.Wrap(err, `failed to load defaults`)
	}

	if path != `` {
		err = k.Load(file.Provider(path), yaml.Parser())
		if err != nil {
			return Config{}, errors.Wrapf(err, `failed to load config file %s`, path)
		}
	}

	err = k.Load(env.Provider(EnvPrefix, `.`, envKey), nil)
	if err != nil {
		return Config{}, errors.Wrap(err, `failed to load environment variables`)
	}

	var cfg Config
	err = k.Unmarshal(``, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(err, `failed to unmarshal configuration`)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

/*
Maps environment variable names to config paths:

	SQLCOND_NULL_POLICY -> null_policy
	SQLCOND_LOG_LEVEL   -> log.level
*/
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	rest, ok := strings.CutPrefix(key, `log_`)
	if ok {
		return `log.` + rest
	}
	return key
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func (self Config) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	err := validate.Struct(self)
	if err != nil {
		return errors.Wrap(err, `configuration validation failed`)
	}
	return nil
}

// Returns a builder configured with these settings and the given logger.
func (self Config) Builder(log *zerolog.Logger) (out sqlcond.Builder, err error) {
	err = out.Null.Parse(self.NullPolicy)
	if err != nil {
		return
	}
	out.Sep = self.Sep
	out.Log = log
	return
}

// Package configuration loads parameters from command line flags, environment variables and an optional config file.
package configuration

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration binds parameter structs to flags and fills them from all configuration sources. Flags that were set
// explicitly win over environment variables, which win over the config file, which wins over the defaults.
type Configuration struct {
	flags  *pflag.FlagSet
	viper  *viper.Viper
	fields map[string]reflect.Value

	configName    *string
	configDirPath *string
}

// New creates a Configuration that defines its flags on flags.
func New(flags *pflag.FlagSet) *Configuration {
	c := &Configuration{
		flags:  flags,
		viper:  viper.New(),
		fields: make(map[string]reflect.Value),
	}
	c.configName = flags.StringP("config", "c", "config", "Filename of the config file without the file extension")
	c.configDirPath = flags.StringP("config-dir", "d", ".", "Path to the directory containing the config file")

	// replace dots with underscores in env, so node.url is read from NODE_URL
	c.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.viper.AutomaticEnv()

	return c
}

// Flags returns the flag set the parameters are defined on.
func (c *Configuration) Flags() *pflag.FlagSet {
	return c.flags
}

// Viper returns the underlying viper instance.
func (c *Configuration) Viper() *viper.Viper {
	return c.viper
}

func (c *Configuration) bind(key string, field reflect.Value) {
	c.fields[key] = field
}

// Load parses args and fills all defined parameters. A missing config file is not an error.
func (c *Configuration) Load(args []string) error {
	if err := c.flags.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse flags")
	}
	if err := c.viper.BindPFlags(c.flags); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}

	c.viper.SetConfigName(*c.configName)
	c.viper.AddConfigPath(*c.configDirPath)
	if err := c.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read config file")
		}
	}

	for key, field := range c.fields {
		if err := c.apply(key, field); err != nil {
			return err
		}
	}

	return nil
}

// apply copies the resolved value of key into its parameter field.
func (c *Configuration) apply(key string, field reflect.Value) error {
	if field.Type() == durationType {
		field.Set(reflect.ValueOf(c.viper.GetDuration(key)))
		return nil
	}

	switch field.Interface().(type) {
	case bool:
		field.SetBool(c.viper.GetBool(key))
	case int:
		field.SetInt(int64(c.viper.GetInt(key)))
	case int64:
		field.SetInt(c.viper.GetInt64(key))
	case uint64:
		field.SetUint(c.viper.GetUint64(key))
	case string:
		field.SetString(c.viper.GetString(key))
	case []string:
		field.Set(reflect.ValueOf(c.viper.GetStringSlice(key)))
	default:
		return errors.Newf("unsupported type %s of parameter %s", field.Type(), key)
	}
	return nil
}

// ConfigFileUsed returns the path of the config file that was read, if any.
func (c *Configuration) ConfigFileUsed() string {
	return c.viper.ConfigFileUsed()
}

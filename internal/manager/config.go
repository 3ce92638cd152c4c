package manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hoppxi/lc/pkg/backlight"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved, read-only configuration of one invocation.
type Config struct {
	Root    string
	Device  string
	Logind  bool
	Notify  bool
	Verbose bool
	File    string
}

type ConfigManager struct {
	v *viper.Viper
	// configDir overrides os.UserConfigDir; tests set it.
	configDir string
}

func NewConfigManager() *ConfigManager {
	return &ConfigManager{v: viper.New()}
}

func (c *ConfigManager) dir() (string, error) {
	if c.configDir != "" {
		return c.configDir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lc"), nil
}

// Load merges flags, LC_* environment variables, the optional lc.yaml and
// defaults, in that order of precedence. An absent config file is fine, an
// unreadable one is not. Flags that are not defined in fs are ignored.
func (c *ConfigManager) Load(fs *pflag.FlagSet, file string) (Config, error) {
	v := c.v
	v.SetDefault("root", backlight.DefaultRoot)
	v.SetDefault("device", "")
	v.SetDefault("logind", false)
	v.SetDefault("notify", false)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("lc")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for _, key := range []string{"root", "device", "logind", "notify", "verbose"} {
			if f := fs.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	explicit := file != ""
	if !explicit {
		dir, err := c.dir()
		if err == nil {
			file = filepath.Join(dir, "lc.yaml")
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
			file = ""
		}
	}

	return Config{
		Root:    v.GetString("root"),
		Device:  v.GetString("device"),
		Logind:  v.GetBool("logind"),
		Notify:  v.GetBool("notify"),
		Verbose: v.GetBool("verbose"),
		File:    file,
	}, nil
}

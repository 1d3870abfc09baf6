package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/libinsight-cli/internal/dataset"
	"github.com/KaramelBytes/libinsight-cli/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Charts
	TopN          int    `mapstructure:"top_n" yaml:"top_n"`
	ChartWidth    int    `mapstructure:"chart_width" yaml:"chart_width"`
	FillMonthGaps bool   `mapstructure:"fill_month_gaps" yaml:"fill_month_gaps"`
	ExportFormat  string `mapstructure:"export_format" yaml:"export_format"`

	// Loader
	DateLayouts []string `mapstructure:"date_layouts" yaml:"date_layouts,omitempty"`
	NAValues    []string `mapstructure:"na_values" yaml:"na_values,omitempty"`
}

// Defaults returns the configuration used when no file sets a key.
func Defaults() *Global {
	return &Global{
		TopN:         5,
		ChartWidth:   40,
		ExportFormat: "json",
		DateLayouts:  append([]string(nil), dataset.DefaultDateLayouts...),
		NAValues:     append([]string(nil), dataset.DefaultNAValues...),
	}
}

// LoaderOptions maps the loader-related keys onto dataset options.
func (c *Global) LoaderOptions() dataset.Options {
	opt := dataset.DefaultOptions()
	if c == nil {
		return opt
	}
	if len(c.DateLayouts) > 0 {
		opt.DateLayouts = c.DateLayouts
	}
	if c.NAValues != nil {
		opt.NAValues = c.NAValues
	}
	return opt
}

// DefaultPath returns ~/.libinsight/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".libinsight", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.libinsight/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from the config file and defaults, then validates it.
// Precedence: flags (applied by the caller) > config file > defaults.
// Environment variables are not consulted.
func Load(cfgFile string) (*Global, error) {
	c, err := LoadRaw(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first setting that is out of range.
func (c *Global) Validate() error {
	if c.TopN < 1 {
		return fmt.Errorf("invalid top_n: %d (must be >= 1)", c.TopN)
	}
	return nil
}

// LoadRaw reads the config file over the defaults without validating values,
// so that `config set` can repair a file holding an invalid setting.
func LoadRaw(cfgFile string) (*Global, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("top_n", d.TopN)
	v.SetDefault("chart_width", d.ChartWidth)
	v.SetDefault("fill_month_gaps", d.FillMonthGaps)
	v.SetDefault("export_format", d.ExportFormat)
	v.SetDefault("date_layouts", d.DateLayouts)
	v.SetDefault("na_values", d.NAValues)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

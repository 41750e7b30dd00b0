package config

import (
	"fmt"
	"strings"

	internal "github.com/ZanzyTHEbar/dirmeta/dirmeta"
	"github.com/ZanzyTHEbar/dirmeta/dirmeta/options"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Listing ListingConfig `mapstructure:"listing"`
}

// ListingConfig stores the defaults for metadata resolution and tree
// expansion. The CLI's flag layer overrides individual fields before the
// options are built.
type ListingConfig struct {
	Depth          int      `mapstructure:"depth"`
	Display        string   `mapstructure:"display"`
	Layout         string   `mapstructure:"layout"`
	Dereference    bool     `mapstructure:"dereference"`
	TotalSize      bool     `mapstructure:"totalSize"`
	IgnorePatterns []string `mapstructure:"ignorePatterns"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	// Repeated loads must not inherit a previously forced config file.
	viper.Reset()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("listing.depth", internal.DefaultDepth)
	viper.SetDefault("listing.display", internal.DefaultDisplay)
	viper.SetDefault("listing.layout", internal.DefaultLayout)
	viper.SetDefault("listing.dereference", internal.DefaultDereference)
	viper.SetDefault("listing.totalSize", false)
	viper.SetDefault("listing.ignorePatterns", []string{})

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // e.g. listing.ignorePatterns becomes LISTING_IGNOREPATTERNS

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; defaults will be used.
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}

// Options compiles the listing configuration into the immutable option set
// the walker consumes, including the pre-built ignore matcher.
func (lc ListingConfig) Options() (options.ListOptions, error) {
	display, err := parseDisplay(lc.Display)
	if err != nil {
		return options.ListOptions{}, err
	}

	layout, err := parseLayout(lc.Layout)
	if err != nil {
		return options.ListOptions{}, err
	}

	opts := options.ListOptions{
		Dereference: lc.Dereference,
		Display:     display,
		Layout:      layout,
		Depth:       lc.Depth,
		TotalSize:   lc.TotalSize,
	}

	if len(lc.IgnorePatterns) > 0 {
		opts.Ignore = ignore.CompileIgnoreLines(lc.IgnorePatterns...)
	}

	return opts, nil
}

func parseDisplay(value string) (options.DisplayMode, error) {
	switch options.DisplayMode(value) {
	case options.DisplayVisibleOnly, options.DisplayAlmostAll, options.DisplayAll,
		options.DisplaySystemProtected, options.DisplayDirectoryOnly:
		return options.DisplayMode(value), nil
	default:
		return "", fmt.Errorf("unknown display mode: %q", value)
	}
}

func parseLayout(value string) (options.Layout, error) {
	switch options.Layout(value) {
	case options.LayoutOneLine, options.LayoutTree, options.LayoutGrid:
		return options.Layout(value), nil
	default:
		return "", fmt.Errorf("unknown layout: %q", value)
	}
}

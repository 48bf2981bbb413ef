package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sigrok-cross/cleanlinkrsp/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyOrder   = "order"
	KeyLayout  = "layout"
	KeyVerbose = "verbose"
)

var knownKeys = map[string]string{
	KeyOrder:   "comma-separated group order, e.g. search-paths,prefix-libs,archives,import-libs,other-libs",
	KeyLayout:  "path to a layout file used when --layout is not given",
	KeyVerbose: "log diagnostics to stderr (true/false)",
}

// Settings is a snapshot of the loaded configuration.
type Settings struct {
	Order   string
	Layout  string
	Verbose bool
}

// Dir returns the config directory: $CLEANLINKRSP_HOME if set, otherwise
// ~/.cleanlinkrsp/.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Calling it again discards previously loaded values.
func Load() {
	viper.Reset()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the loaded settings.
func Current() Settings {
	return Settings{
		Order:   viper.GetString(KeyOrder),
		Layout:  viper.GetString(KeyLayout),
		Verbose: viper.GetBool(KeyVerbose),
	}
}

// Keys returns the recognized keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Describe returns a one-line description of key, or "" if it is unknown.
func Describe(key string) string {
	return knownKeys[key]
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("unknown key %q (known keys: %v)", key, Keys())
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Package config holds the application settings of the renderer,
// read from missioncard.cfg.json and MISSIONCARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the name of the configuration file, looked up in the config directory.
const FileName = "missioncard.cfg.json"

// RenderConfig holds the output image settings
type RenderConfig struct {
	WidthPx       int    `json:"widthPx" mapstructure:"widthPx"`
	HeightPx      int    `json:"heightPx" mapstructure:"heightPx"`
	PixelsPerInch int    `json:"pixelsPerInch" mapstructure:"pixelsPerInch"`
	ErrorMode     string `json:"errorMode" mapstructure:"errorMode"` // ignore, warn or strict
}

// OutputConfig holds the output file settings
type OutputConfig struct {
	Dir      string `json:"dir" mapstructure:"dir"`
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// MissionConfig holds the mission loading settings
type MissionConfig struct {
	ValidateSchema bool `json:"validateSchema" mapstructure:"validateSchema"`
}

// Settings is the typed view of the whole configuration.
type Settings struct {
	LogLevel string        `json:"logLevel" mapstructure:"logLevel"`
	LogsDir  string        `json:"logsDir" mapstructure:"logsDir"`
	Render   RenderConfig  `json:"render" mapstructure:"render"`
	Output   OutputConfig  `json:"output" mapstructure:"output"`
	Mission  MissionConfig `json:"mission" mapstructure:"mission"`
}

// Load sets default values, then reads the configuration file from configDir
// and the environment. A missing file is not an error.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "")

	viper.SetDefault("render.widthPx", 600)
	viper.SetDefault("render.heightPx", 440)
	viper.SetDefault("render.pixelsPerInch", 20)
	viper.SetDefault("render.errorMode", "warn")

	viper.SetDefault("output.dir", "./out")
	viper.SetDefault("output.compress", false)

	viper.SetDefault("mission.validateSchema", true)

	viper.SetEnvPrefix("MISSIONCARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Get returns the typed settings.
func Get() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

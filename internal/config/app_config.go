package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/codeheader/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	HomeDirectory    string
	ExplicitFilePath string
}

// ApplicationConfiguration holds defaults that command line flags may override.
type ApplicationConfiguration struct {
	Format     string   `mapstructure:"format"`
	Summary    *bool    `mapstructure:"summary"`
	Progress   *bool    `mapstructure:"progress"`
	Clipboard  *bool    `mapstructure:"clipboard"`
	Extensions []string `mapstructure:"extensions"`
}

// LoadApplicationConfiguration loads the global configuration and then the explicit file, if any.
// Missing files contribute nothing; an explicit file that does not exist is an error.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, []string, error) {
	var merged ApplicationConfiguration
	var sources []string

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, homeError := os.UserHomeDir(); homeError == nil {
			homeDirectory = resolvedHome
		}
	}
	if homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, found, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, nil, loadErr
		}
		if found {
			merged = merged.Merge(globalConfig)
			sources = append(sources, globalPath)
		}
	}

	if options.ExplicitFilePath != "" {
		explicitConfig, _, loadErr := loadConfigurationFromPath(options.ExplicitFilePath, true)
		if loadErr != nil {
			return ApplicationConfiguration{}, nil, loadErr
		}
		merged = merged.Merge(explicitConfig)
		sources = append(sources, options.ExplicitFilePath)
	}

	merged.Extensions = NormalizeExtensions(merged.Extensions)
	return merged, sources, nil
}

func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, bool, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, false, nil
		}
		return ApplicationConfiguration{}, false, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, false, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, false, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, false, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, true, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
// Extensions accumulate; scalar values are replaced when set.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Summary != nil {
		result.Summary = cloneBool(override.Summary)
	}
	if override.Progress != nil {
		result.Progress = cloneBool(override.Progress)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if len(override.Extensions) > 0 {
		combined := append(append([]string{}, config.Extensions...), override.Extensions...)
		result.Extensions = utils.DeduplicateStrings(combined)
	}
	return result
}

// BoolOrDefault returns the value behind pointer or fallback when it is unset.
func BoolOrDefault(pointer *bool, fallback bool) bool {
	if pointer == nil {
		return fallback
	}
	return *pointer
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

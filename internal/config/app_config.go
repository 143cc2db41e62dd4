// Package config loads and merges dirsnap configuration from the global and
// per-project YAML files. Pointer fields distinguish "not configured" from an
// explicit false or zero, so later layers only override what they actually
// set.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/dirsnap/dirsnap/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds per-command configuration defaults.
type ApplicationConfiguration struct {
	Snapshot SnapshotCommandConfiguration `mapstructure:"snapshot"`
	Tree     TreeCommandConfiguration     `mapstructure:"tree"`
}

// SnapshotCommandConfiguration defines defaults for the snapshot command.
type SnapshotCommandConfiguration struct {
	Recursive *bool              `mapstructure:"recursive"`
	Format    string             `mapstructure:"format"`
	Title     string             `mapstructure:"title"`
	FontSize  *int               `mapstructure:"font_size"`
	Clipboard *bool              `mapstructure:"clipboard"`
	Tokens    TokenConfiguration `mapstructure:"tokens"`
	Limits    LimitConfiguration `mapstructure:"limits"`
	Paths     PathConfiguration  `mapstructure:"paths"`
}

// TreeCommandConfiguration defines defaults for the tree command.
type TreeCommandConfiguration struct {
	Recursive *bool             `mapstructure:"recursive"`
	Paths     PathConfiguration `mapstructure:"paths"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LimitConfiguration overrides the content truncation policy.
type LimitConfiguration struct {
	Lines      *int `mapstructure:"lines"`
	LineLength *int `mapstructure:"line_length"`
}

// PathConfiguration configures exclusion rules for traversal.
type PathConfiguration struct {
	Exclude []string `mapstructure:"exclude"`
}

// LoadApplicationConfiguration loads configuration from the global and local
// files, the local file overriding the global one. Missing files are not an
// error; unreadable or malformed files are.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfig, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfig)
	}

	merged.Snapshot.Paths.Exclude = utils.DeduplicatePatterns(merged.Snapshot.Paths.Exclude)
	merged.Tree.Paths.Exclude = utils.DeduplicatePatterns(merged.Tree.Paths.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, absoluteError := filepath.Abs(explicitPath)
			if absoluteError != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, absoluteError)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	pathInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if pathInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Snapshot = result.Snapshot.merge(override.Snapshot)
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

func (configuration SnapshotCommandConfiguration) merge(override SnapshotCommandConfiguration) SnapshotCommandConfiguration {
	result := configuration
	if override.Recursive != nil {
		result.Recursive = cloneBool(override.Recursive)
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Title != "" {
		result.Title = override.Title
	}
	if override.FontSize != nil {
		result.FontSize = cloneInt(override.FontSize)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	result.Limits = result.Limits.merge(override.Limits)
	result.Paths = result.Paths.merge(override.Paths)
	return result
}

func (configuration TreeCommandConfiguration) merge(override TreeCommandConfiguration) TreeCommandConfiguration {
	result := configuration
	if override.Recursive != nil {
		result.Recursive = cloneBool(override.Recursive)
	}
	result.Paths = result.Paths.merge(override.Paths)
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func (configuration LimitConfiguration) merge(override LimitConfiguration) LimitConfiguration {
	result := configuration
	if override.Lines != nil {
		result.Lines = cloneInt(override.Lines)
	}
	if override.LineLength != nil {
		result.LineLength = cloneInt(override.LineLength)
	}
	return result
}

func (configuration PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := configuration
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

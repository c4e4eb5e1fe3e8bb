package config

import "path/filepath"

// SourceConfig holds per-file overrides for a single password file.
// This allows auditing files with different policies in one run, such as
// a legacy export that still tolerates shorter passwords.
type SourceConfig struct {
	// MinLength overrides the recommended minimum length for this file.
	// If zero, the global minimum is used.
	MinLength int `yaml:"min_length,omitempty"`

	// WeakestCount overrides how many weakest passwords to highlight.
	// If zero, the global count is used.
	WeakestCount int `yaml:"weakest_count,omitempty"`

	// DetailCount overrides how many leading passwords get a breakdown.
	// If zero, the global count is used.
	DetailCount int `yaml:"detail_count,omitempty"`
}

// File represents the structure of the .password-auditor configuration file.
type File struct {
	// Sources maps password file paths to their overrides.
	// Keys may be full paths or bare file names; bare names match any
	// audited file with that base name.
	Sources map[string]SourceConfig `yaml:"sources,omitempty"`

	// Defaults contains overrides applied to every audited file unless
	// a source-specific entry wins.
	Defaults SourceConfig `yaml:"defaults,omitempty"`

	// ExtraCommonPasswords extends the embedded common-password list.
	// Entries are matched case-insensitively, like the embedded list.
	ExtraCommonPasswords []string `yaml:"extra_common_passwords,omitempty"`
}

// GetSourceConfig returns the configuration for a password file.
// It merges the source-specific configuration with defaults; zero values
// in the source entry mean "not set" and leave the default in place.
func (cf *File) GetSourceConfig(path string) SourceConfig {
	// Start with defaults
	result := cf.Defaults

	sourceConfig, ok := cf.Sources[path]
	if !ok {
		// Fall back to the bare file name
		sourceConfig, ok = cf.Sources[filepath.Base(path)]
	}
	if ok {
		if sourceConfig.MinLength != 0 {
			result.MinLength = sourceConfig.MinLength
		}
		if sourceConfig.WeakestCount != 0 {
			result.WeakestCount = sourceConfig.WeakestCount
		}
		if sourceConfig.DetailCount != 0 {
			result.DetailCount = sourceConfig.DetailCount
		}
	}

	return result
}

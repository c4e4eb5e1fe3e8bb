// Package config provides configuration structures and utilities for
// password-auditor. It defines the scoring policy constants, the runtime
// options populated from CLI flags, and per-source overrides loaded from
// the optional .password-auditor YAML file.
package config

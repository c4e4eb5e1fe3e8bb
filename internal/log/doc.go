// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of password-bearing attributes
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// password-auditor handles plaintext passwords in memory, so its logs are a
// leak vector. The SecureHandler automatically sanitizes sensitive
// information in log output:
//   - Attributes keyed password, passphrase, secret, token and similar
//   - Credential-shaped values detected by pattern matching (JWTs, bearer
//     and basic auth strings, API keys, private key markers)
//
// Even in verbose mode, sensitive values are masked to prevent accidental
// exposure of audited passwords in logs that may be shared or stored.
// Code that must reference a specific password in a log line should log
// its digest instead (see the model package).
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Warn("weak password found",
//	    "password", "hunter2",  // Will be sanitized to "***REDACTED***"
//	    "source", "passwords.txt",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log

package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Scanner buffer sizing. Password lines are normally short, but vault
// exports can carry very long generated passwords; lines beyond the
// maximum make the scanner fail rather than truncate silently.
const (
	initialBufferSize = 64 * 1024
	maxLineSize       = 1024 * 1024
)

// Options controls how input lines are interpreted.
type Options struct {
	// KeepBlank treats blank lines as empty-string passwords instead of
	// skipping them. Blank lines are counted either way.
	KeepBlank bool
}

// Result is the outcome of loading a password list.
type Result struct {
	// Passwords holds the passwords in file order.
	Passwords []string

	// BlankLines counts blank input lines. With KeepBlank set, the
	// blanks also appear in Passwords as empty strings.
	BlankLines int
}

// Load reads a password file, one password per line.
// A missing or unreadable file is an error; an empty file is a valid
// input and yields an empty result.
func Load(path string, opts Options) (*Result, error) {
	file, err := os.Open(path) //nolint:gosec // User-provided password file path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open password file: %w", err)
	}
	defer file.Close()

	result, err := LoadReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read password file %s: %w", path, err)
	}
	return result, nil
}

// LoadReader reads a password list from an arbitrary reader.
// Trailing spaces, tabs and carriage returns are trimmed from each
// line; leading whitespace is preserved because it may be part of the
// password.
func LoadReader(r io.Reader, opts Options) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, initialBufferSize), maxLineSize)

	result := &Result{Passwords: make([]string, 0)}
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")

		if line == "" {
			result.BlankLines++
			if !opts.KeepBlank {
				continue
			}
		}
		result.Passwords = append(result.Passwords, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan password lines: %w", err)
	}

	return result, nil
}

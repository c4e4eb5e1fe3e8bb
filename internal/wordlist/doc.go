// Package wordlist loads password candidate lists from text files.
//
// # Purpose
//
// This package turns a password file, one password per line, into the
// string slice the scorer consumes. It owns the line-level policy
// decisions: trailing whitespace is trimmed, blank lines are skipped
// and counted (or kept as empty-string passwords on request), and
// overlong lines are rejected instead of silently truncated.
//
// # File Format
//
// Input files are plain text, one password per line. Passwords are
// taken verbatim apart from trailing spaces, tabs and carriage returns,
// which editors and Windows line endings introduce without the user's
// intent. Leading whitespace is preserved; it may be part of the
// password.
//
// # Usage
//
//	result, err := wordlist.Load("passwords.txt", wordlist.Options{})
//	if err != nil {
//		return err
//	}
//	evaluations := scorer.EvaluateAll(result.Passwords)
//
// An empty file is a valid input and yields an empty result, not an
// error. A missing or unreadable file is an error for the caller to
// surface.
package wordlist

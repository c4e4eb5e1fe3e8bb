package model

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// digestPrefix domain-separates password digests from any other SHA3-256 use.
var digestPrefix = []byte("password-auditor digest v1")

// shortDigestLen is the number of hex characters of a digest shown in
// terminal output.
const shortDigestLen = 12

// Digest returns the hex SHA3-256 digest of a password.
// The history database stores digests instead of plaintext, so a leaked
// database never reveals the audited passwords.
func Digest(password string) string {
	data := make([]byte, 0, len(digestPrefix)+len(password))
	data = append(data, digestPrefix...)
	data = append(data, password...)

	hash := sha3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortDigest returns a truncated digest of a password for display.
func ShortDigest(password string) string {
	return ShortenDigest(Digest(password))
}

// ShortenDigest truncates an already-computed digest for display.
func ShortenDigest(digest string) string {
	if len(digest) <= shortDigestLen {
		return digest
	}
	return digest[:shortDigestLen]
}

package model

import (
	"regexp"
	"testing"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// TestDigest tests digest determinism and format.
func TestDigest(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		if Digest("hunter2") != Digest("hunter2") {
			t.Error("same password must produce the same digest")
		}
	})

	t.Run("hex sha3-256", func(t *testing.T) {
		t.Parallel()
		d := Digest("hunter2")
		if !hexPattern.MatchString(d) {
			t.Errorf("digest %q is not 64 lowercase hex characters", d)
		}
	})

	t.Run("distinct inputs differ", func(t *testing.T) {
		t.Parallel()
		if Digest("hunter2") == Digest("hunter3") {
			t.Error("different passwords must produce different digests")
		}
	})

	t.Run("empty password digestible", func(t *testing.T) {
		t.Parallel()
		if !hexPattern.MatchString(Digest("")) {
			t.Error("empty password must still produce a full digest")
		}
	})
}

// TestShortDigest tests the display truncation helpers.
func TestShortDigest(t *testing.T) {
	t.Parallel()

	full := Digest("hunter2")
	short := ShortDigest("hunter2")

	if len(short) != 12 {
		t.Errorf("len(short) = %d, expected 12", len(short))
	}
	if full[:12] != short {
		t.Error("ShortDigest must be a prefix of Digest")
	}
	if ShortenDigest("abc") != "abc" {
		t.Error("ShortenDigest must pass short strings through")
	}
}

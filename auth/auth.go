package auth

import (
	"crypto/hmac"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/sha3"
)

// ErrEmptyName means a name normalized down to nothing.
var ErrEmptyName = errors.New("name is empty after normalization")

// ErrInvalidName means a name carries characters that may not appear in an
// identity. The roster line format depends on identities being free of
// commas and line breaks, so derivation rejects anything outside letters
// and digits rather than letting it reach storage.
var ErrInvalidName = errors.New("name contains invalid characters")

// secretLen is the hex length of derived secrets: 8 digest bytes.
const secretLen = 16

// altCohortMarker is appended to the local part of alternate-cohort
// identities so the two cohorts can never collide on a name.
const altCohortMarker = "2"

// NormalizeName lowercases a name and strips the punctuation that varies
// between renderings of the same name, so "De La-Cruz", "O'Brien", and
// "delacruz"/"obrien" derive the same identity.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch r {
		case ' ', '\t', '-', '\'', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// validName reports whether a normalized name is safe to embed in an
// identity: letters and digits only.
func validName(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// DeriveIdentity maps a normalized (first, last, cohort) triple to the
// institutional email-shaped identity used as the roster key. The result
// never contains a comma, which the roster line format relies on.
func DeriveIdentity(first, last string, altCohort bool, domain string) (string, error) {
	f := NormalizeName(first)
	l := NormalizeName(last)
	if f == "" || l == "" {
		return "", ErrEmptyName
	}
	if !validName(f) || !validName(l) {
		return "", ErrInvalidName
	}

	local := f + "." + l
	if altCohort {
		local += altCohortMarker
	}
	return local + "@" + domain, nil
}

// DeriveSecret produces the fixed-length credential secret for an identity:
// a truncated HMAC-SHA3-256 under a server-side salt. Deterministic, so it
// is re-derivable for validation; without the salt it cannot be computed
// from the identity alone.
func DeriveSecret(identity, salt string) string {
	h := hmac.New(sha3.New256, []byte(salt))
	h.Write([]byte(identity))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)[:secretLen]
}

// VerifySecret compares a presented secret against the stored one in
// constant time.
func VerifySecret(presented, stored string) bool {
	return hmac.Equal([]byte(presented), []byte(stored))
}

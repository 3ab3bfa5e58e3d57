/*
Package auth derives voter identities and credential secrets.

# Identities

An identity is the institutional email address composed from a normalized
first and last name plus a cohort marker:

	identity, err := auth.DeriveIdentity("Jane", "De La-Cruz", false, "campus.edu")
	// "jane.delacruz@campus.edu"

Normalization lowercases and strips whitespace, hyphens, apostrophes, and
periods, so the same person always derives the same identity. That
determinism is what makes the duplicate-registration check reliable without
a secondary index.

After normalization, anything but letters and digits is rejected with
ErrInvalidName. Identities are embedded in a comma-separated, line-oriented
roster document; a comma or line break in an identity could corrupt it or
forge a record, so the constraint is enforced at derivation, before any
write.

# Secrets

Secrets are truncated HMAC-SHA3-256 digests of the identity under a
server-side salt:

	secret := auth.DeriveSecret(identity, salt)

Because the digest is keyed, knowing an identity is not enough to compute
its secret. The secret is mailed to the derived institutional address, so
possession of that mailbox is what actually gates authentication.
*/
package auth

// Package auth issues and verifies bearer credentials and hashes account
// passwords. Verification is pure: it depends only on the signing secret
// handed to NewJWTService at startup and the current time.
package auth

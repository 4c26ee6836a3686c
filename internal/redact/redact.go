// Package redact produces safe display forms of matched secret values.
// Every snippet shown to a user goes through Mask; raw secret text is never
// stored or logged outside of transient matching.
package redact

const shortMask = "********"

// Mask returns a partially disclosed form of a secret: the first four and
// last four characters with a fixed ellipsis between them. Values shorter
// than eight characters are fully masked, since partial disclosure of very
// short strings reveals too much.
func Mask(secret string) string {
	if len(secret) < 8 {
		return shortMask
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

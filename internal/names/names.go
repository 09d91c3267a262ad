// Package names generates the random file names used for persisted images.
package names

import "math/rand/v2"

// Length is the number of characters in a generated name.
const Length = 26

// Alphabet is the set of symbols a name is drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// New returns a random name of Length characters drawn uniformly from
// Alphabet. No check is made against existing files; with 36^26 possible
// names a collision is not a practical concern.
func New() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = Alphabet[rand.IntN(len(Alphabet))]
	}
	return string(b)
}

package game

import "math/rand"

// Alphabet for room codes. 0/O and 1/I are left out so codes survive being
// read aloud or typed from a projector.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the length of a room code.
const CodeLength = 6

// NewCode returns a random room code. Uniqueness is the caller's problem.
func NewCode() string {
	b := make([]byte, CodeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// UniqueCode generates codes until exists reports an unused one. The code
// space is 32^6 so a handful of retries is the worst realistic case.
func UniqueCode(exists func(string) bool) string {
	for {
		code := NewCode()
		if !exists(code) {
			return code
		}
	}
}

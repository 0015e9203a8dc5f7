package session

import (
	"math/rand"
	"strings"
)

const (
	codeLength   = 4
	codeAttempts = 100
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ" // no I or O
)

var letters = []rune(codeAlphabet)

// GenerateCode returns a join code that is not in taken. Spectators type it,
// so letters that read like digits are left out.
func GenerateCode(taken map[string]bool) string {
	code := drawCode()
	for i := 1; i < codeAttempts && taken[code]; i++ {
		code = drawCode()
	}
	// 24^4 codes; a collision after every attempt means the server is
	// hopelessly overloaded anyway.
	return code
}

func drawCode() string {
	var b strings.Builder
	b.Grow(codeLength)
	for range codeLength {
		b.WriteRune(letters[rand.Intn(len(letters))])
	}
	return b.String()
}

package random

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestSeq(t *testing.T) {
	s := Seq(64)
	assert.Len(t, s, 64)
	for _, r := range s {
		assert.True(t, unicode.IsDigit(r) || unicode.IsLetter(r), "unexpected rune %q", r)
	}
	assert.NotEqual(t, s, Seq(64))
	assert.Empty(t, Seq(0))
}

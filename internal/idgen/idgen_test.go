package idgen

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^ex_[0-9a-f]{8}$`), New("ex"))
	assert.NotEqual(t, New("plan"), New("plan"))
}

func TestResource(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Regexp(t, regexp.MustCompile(`^resource-1700000000123-[0-9a-f]{9}$`), Resource(now))
}

func TestAnonymous(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^anon_[0-9a-f]{12}$`), Anonymous())
}

func TestToken_ClampsLength(t *testing.T) {
	assert.Len(t, Token(64), 32)
}

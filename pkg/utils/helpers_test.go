package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, ParseDuration("30s"))
	assert.Equal(t, 5*time.Minute, ParseDuration(""))
	assert.Equal(t, 5*time.Minute, ParseDuration("bogus"))
}

func TestParsePercent(t *testing.T) {
	assert.Equal(t, 42.0, ParsePercent("42"))
	assert.Equal(t, 12.5, ParsePercent(" 12.5 "))
	assert.Equal(t, 0.0, ParsePercent(""))
	assert.Equal(t, 0.0, ParsePercent("n/a"))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 33.3, Round1(33.333))
	assert.Equal(t, 33.4, Round1(33.35))
	assert.Equal(t, 0.0, Round1(0))
	assert.Equal(t, 100.0, Round1(99.96))
}

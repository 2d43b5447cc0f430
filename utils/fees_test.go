package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformFee(t *testing.T) {
	assert.Equal(t, 490, PlatformFee(4900))
	assert.Equal(t, 0, PlatformFee(0))
	// Integer division floors: the creator keeps the remainder.
	assert.Equal(t, 99, PlatformFee(999))
	assert.Equal(t, 999-99, 999-PlatformFee(999))
}

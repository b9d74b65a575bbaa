package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeep(t *testing.T) {
	Keep(42)
	assert.Equal(t, uint32(42), Last())
	Keep(0xffffffff)
	assert.Equal(t, uint32(0xffffffff), Last())
}

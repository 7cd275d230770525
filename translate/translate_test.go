package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("stack empty", From("stack empty"))
	assert.Equal("edge 12 bad", From("edge %d %v", 12, "bad"))
}

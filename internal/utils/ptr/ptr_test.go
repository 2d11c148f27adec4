package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointers(t *testing.T) {
	assert.Equal(t, "tool", *String("tool"))
	assert.False(t, *Bool(false))
	assert.Equal(t, 1, *Int(1))
	assert.Equal(t, 2.5, *To(2.5))
}

func TestMutationIndependence(t *testing.T) {
	v := 1
	p := To(v)
	*p = 2
	assert.Equal(t, 1, v)
	assert.NotSame(t, String("a"), String("a"))
}

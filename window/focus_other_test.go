//go:build !windows

package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocusUnsupported(t *testing.T) {
	assert.ErrorIs(t, Focus("Monster Hunter Wilds"), ErrUnsupported)
}

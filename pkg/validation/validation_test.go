package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLength_CountsUTF16Units(t *testing.T) {
	assert.Equal(t, 0, Length(""))
	assert.Equal(t, 5, Length("hello"))
	assert.Equal(t, 6, Length("привет"))
	assert.Equal(t, 2, Length("🚀"))
	assert.Equal(t, 3, Length("a🚀"))
}

func TestMinLength(t *testing.T) {
	const msg = "too short"
	cases := []struct {
		name string
		text string
		ok   bool
	}{
		{"exact ascii", strings.Repeat("a", 20), true},
		{"short ascii", strings.Repeat("a", 19), false},
		{"padding is trimmed", "  " + strings.Repeat("a", 19) + "\n\t", false},
		{"astral chars count twice", strings.Repeat("🚀", 10), true},
		{"nine astral chars", strings.Repeat("🚀", 9) + "a", false},
		{"cyrillic", strings.Repeat("ж", 20), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := MinLength(tc.text, 20, msg)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, msg)
			assert.True(t, Is(err))
		})
	}
}

func TestIsAndFirst(t *testing.T) {
	wrapped := fmt.Errorf("save: %w", Error("Skill name is required."))
	assert.True(t, Is(wrapped))
	assert.False(t, Is(errors.New("boom")))

	assert.NoError(t, First(nil, nil))
	assert.Equal(t, Error("b"), First(nil, Required(" ", "b"), Required("", "c")))
}

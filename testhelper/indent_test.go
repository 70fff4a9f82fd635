package testhelper

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTrimIndent(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"single line", "1+2", "1+2"},
		{"tabs", "\n\t\t1 +\n\t\t\t2\n\t", "1 +\n\t2"},
		{"spaces", "\n    a\n      b\n  ", "a\n  b"},
		{"blank lines do not count", "\n\t\ta\n\n\t\tb\n", "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimIndent(t, tt.src))
		})
	}
}

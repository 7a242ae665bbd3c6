package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeAmpersands(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single", "Food & Shelter", `Food \& Shelter`},
		{"already escaped", `Fourth \& Hope`, `Fourth \& Hope`},
		{"leading", "&tab", `\&tab`},
		{"adjacent", "&&", `\&\&`},
		{"table row", "Meals & 3120 \\\\", `Meals \& 3120 \\`},
		{"none", "no reserved chars", "no reserved chars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeAmpersands(tt.in))
		})
	}
}

func TestEscapeAmpersandsLeavesNoBareAmpersand(t *testing.T) {
	inputs := []string{"a & b & c", "&&&", `x \& y & z`, "é&ü"}
	for _, in := range inputs {
		out := EscapeAmpersands(in)
		for i := 0; i < len(out); i++ {
			if out[i] == '&' {
				assert.True(t, i > 0 && out[i-1] == '\\', "bare & in %q", out)
			}
		}
		assert.Equal(t, out, EscapeAmpersands(out), "escaping twice changed %q", in)
		assert.Equal(t, strings.Count(in, "&"), strings.Count(out, "&"))
	}
}

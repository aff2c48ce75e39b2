package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"line endings and blank runs", "a\r\nb\r\r\nc\n\n\nd", "a\nb\nc\nd"},
		{"nbsp", "a\u00a0b", "a b"},
		{"zero width", "a\u200bb\u200cc\u200dd\ufeffe", "abcde"},
		{"trailing blanks", "a  \t\nb \n", "a\nb"},
		{"trailing blanks hidden by zero width", "a \u200b\n\nb", "a\nb"},
		{"outer whitespace", "\n\n  hello  \n\n", "hello"},
		{"leading indent kept", "a\n    code", "a\n    code"},
		{"empty", "", ""},
		{"only whitespace", "\u00a0\r\n\t  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"a\r\nb\r\r\nc\n\n\nd",
		" \t\n \n\u200b \nx \r \n",
		"## Page 1\nA\n\n## Page 3\nB",
		"\ufeff# Title\r\n\r\n\r\nBody  \n\t\n",
		"a \n \n \nb\u3000\n",
		"**[IMAGE: x.png]**\n\n> [No text detected]\n",
		"\r\r\r",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

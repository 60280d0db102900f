package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text unchanged", in: "Mix flour", want: "Mix flour"},
		{name: "nbsp becomes space", in: "2\u00a0cups", want: "2 cups"},
		{name: "trims surrounding whitespace", in: "  \n Soup \t\n", want: "Soup"},
		{name: "crlf normalized", in: "a\r\nb\rc", want: "a\nb\nc"},
		{name: "tabs dropped", in: "a\tb", want: "ab"},
		{name: "control characters dropped", in: "a\x00b\x07c", want: "abc"},
		{name: "bom dropped", in: "\ufeffTitle", want: "Title"},
		{name: "unicode letters kept", in: "Crème brûlée", want: "Crème brûlée"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "  \r\n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	in := " Soup\r\n - 1 onion\x01\r\n"
	once := Sanitize(in)
	assert.Equal(t, once, Sanitize(once))
}

func TestLines(t *testing.T) {
	assert.Nil(t, Lines(""))
	assert.Equal(t, []string{"a", "", "b"}, Lines("a\n\nb"))
}

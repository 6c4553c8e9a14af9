package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidHostname(t *testing.T) {
	longLabel := strings.Repeat("a", 64)
	longName := strings.Repeat(strings.Repeat("b", 60)+".", 5) + "com"

	cases := []struct {
		input string
		want  bool
	}{
		{"example.com", true},
		{"localhost", true},
		{"ads.sub-domain.example.co.uk", true},
		{"1.2.3.4", true},
		{"xn--bcher-kva.example", true},
		{"a", true},
		{strings.Repeat("a", 63) + ".com", true},
		{"", false},
		{"not a host!", false},
		{" example.com", false},
		{"example.com.", false},
		{".example.com", false},
		{"exa..mple.com", false},
		{"-example.com", false},
		{"example-.com", false},
		{"under_score.com", false},
		{"*.example.com", false},
		{"http://example.com", false},
		{longLabel + ".com", false},
		{longName, false},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidHostname(tc.input))
		})
	}
}

func TestDefaultValidator(t *testing.T) {
	assert.True(t, Default("example.com"))
	assert.False(t, Default("not a host!"))
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"example.com", "example.com", false},
		{"Example.COM", "example.com", false},
		{"  school.example.org  ", "school.example.org", false},
		{"example.com.", "example.com", false},
		{"a-b.example.co.uk", "a-b.example.co.uk", false},
		{"xn--bcher-kva.example", "xn--bcher-kva.example", false},
		{"", "", true},
		{"   ", "", true},
		{"localhost", "", true}, // no TLD
		{"-bad.example.com", "", true},
		{"bad-.example.com", "", true},
		{"exa mple.com", "", true},
		{"https://example.com", "", true}, // URLs are not domains
		{"example.com/path", "", true},
		{"example..com", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeDomain(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidDomain, "in=%q", tc.in)
			continue
		}
		require.NoError(t, err, "in=%q", tc.in)
		assert.Equal(t, tc.want, got, "in=%q", tc.in)
	}
}

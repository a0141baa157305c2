package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSearch(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ORD-20260314", "ORD-20260314"},
		{"  +92 300 1234567 ", "+92 300 1234567"},
		{"ayesha@example.com", "ayeshaexamplecom"},
		{"%' OR 1=1 --", "OR 11 --"},
		{"_%_", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeSearch(tt.in), "input %q", tt.in)
	}
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"My Report (final).pdf", "My_Report__final_.pdf"},
		{"quarterly-2024_v2.pdf", "quarterly-2024_v2.pdf"},
		{"résumé.pdf", "r_sum_.pdf"},
		{"a/b\\c.pdf", "a_b_c.pdf"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.in), "input %q", tt.in)
	}
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct{ in, out string }{
		{"Villa Azur", "villa-azur"},
		{"Penthouse  --  Monaco", "penthouse-monaco"},
		{"Château d'Èze, vue mer", "chateau-d-eze-vue-mer"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"2026 Summer Collection", "2026-summer-collection"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, Slugify(tt.in), "input %q", tt.in)
	}
}

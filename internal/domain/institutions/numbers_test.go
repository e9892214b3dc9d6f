package institutions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		compact bool
		want    string
	}{
		{"dotted display", "3120260042", false, "31.2026.0042"},
		{"compact passthrough", "3120260042", true, "3120260042"},
		{"longer region code", "317420260042", false, "3174.2026.0042"},
		{"too short stays raw", "2026", false, "2026"},
		{"whitespace trimmed", "  3120260042 ", false, "31.2026.0042"},
		{"no region prefix", "20260042", false, "2026.0042"},
		{"empty", "", false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FormatNumber(tc.raw, tc.compact))
		})
	}
}

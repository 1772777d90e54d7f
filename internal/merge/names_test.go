package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalRegionName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cook County", "COOK"},
		{"Cook", "COOK"},
		{"  DuPage County ", "DUPAGE"},
		{"st. clair county", "ST. CLAIR"},
		{"JoDaviess", "JODAVIESS"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalRegionName(tt.in))
		})
	}
}

func TestCoerceFIPS(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"17031", "17031"},
		{"17031.0", "17031"},
		{"1001", "01001"},
		{"1001.0", "01001"},
		{" 17031 ", "17031"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceFIPS(tt.in))
		})
	}
}

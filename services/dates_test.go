package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDates(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantDepart string
		wantReturn string
	}{
		{"empty", "", "", ""},
		{"no dates", "next weekend sometime", "", ""},
		{"one date", "2026-02-01", "2026-02-01", ""},
		{"one date embedded", "leaving around 2026-02-01 please", "2026-02-01", ""},
		{"two dates", "2026-02-01 to 2026-02-10", "2026-02-01", "2026-02-10"},
		{"two dates with noise", "from 2026-02-01 until 2026-02-10 roughly", "2026-02-01", "2026-02-10"},
		{"three dates ignores extras", "2026-02-01 2026-02-10 2026-03-05", "2026-02-01", "2026-02-10"},
		{"return before departure not validated", "2026-02-10 to 2026-02-01", "2026-02-10", "2026-02-01"},
		{"partial date ignored", "2026-02 and 02-01", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depart, ret := ParseDates(tt.input)
			assert.Equal(t, tt.wantDepart, depart)
			assert.Equal(t, tt.wantReturn, ret)
		})
	}
}

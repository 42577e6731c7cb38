package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNightsForAmount(t *testing.T) {
	cases := []struct {
		amount int64
		nights int
	}{
		{2000, 4}, // plan amount, overrides formula result of 4
		{3600, 8}, // plan amount, formula would floor 7.2 to 7
		{1000, 2},
		{750, 1}, // floor of 1.5
		{500, 1},
		{499, 0},
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.nights, NightsForAmount(tc.amount), "amount=%d", tc.amount)
	}
}

package plotkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandTicks(t *testing.T) {
	s := NewBandScale([]string{"a", "b", "c", "d"}, NewRange(20, 120), 0, false)
	want := []Tick{
		{Offset: 12.5, Text: "a"},
		{Offset: 37.5, Text: "b"},
		{Offset: 62.5, Text: "c"},
		{Offset: 87.5, Text: "d"},
	}
	assert.Equal(t, want, BandTicks(s))
}

func TestLinearTicks(t *testing.T) {
	s := NewLinearScale(0, 10, NewRange(120, 20))
	want := []Tick{
		{Offset: 100, Text: "0"},
		{Offset: 50, Text: "5"},
		{Offset: 0, Text: "10"},
	}
	assert.Equal(t, want, LinearTicks(s, 2, nil))

	percent := func(f float64) string {
		return formatTick(f*10) + "%"
	}
	got := LinearTicks(s, 1, percent)
	assert.Equal(t, "0%", got[0].Text)
	assert.Equal(t, "100%", got[1].Text)
}

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/ledsign"
	"github.com/BeatGlow/ledsign/sim"
)

func TestCheckLine(t *testing.T) {
	for _, test := range []struct {
		line int
		want byte
		ok   bool
	}{
		{1, 1, true},
		{4, 4, true},
		{0, 0, false},
		{5, 0, false},
		{-1, 0, false},
		{258, 0, false},
	} {
		got, err := checkLine(test.line, 4)
		if test.ok {
			require.NoErrorf(t, err, "line %d", test.line)
			assert.Equal(t, test.want, got)
		} else {
			assert.Errorf(t, err, "line %d", test.line)
		}
	}
}

func TestHaltBlanksPanel(t *testing.T) {
	panel := sim.NewPanel(64, 32)
	sign, err := ledsign.New(panel, &ledsign.Config{Width: 64, Height: 32})
	require.NoError(t, err)
	require.NoError(t, sign.Poll())
	require.True(t, panel.Shown())

	boom := errors.New("boom")
	assert.Same(t, boom, halt(sign, boom))
	assert.False(t, panel.Shown())
}

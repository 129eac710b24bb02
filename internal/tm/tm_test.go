package tm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sligocki/busy-beaver/internal/tm"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"1RB1LB_1LA1RZ",                       // BB(2) champion
		"1RB1LC_1RC1RB_1RD0LE_1LA1LD_1RZ0LA",  // BB(5) champion
		"1RB2RA1LC_2LC1RB2RB_---2LA1LA",       // "Bigfoot"
		"---------_---------",
	}
	for _, s := range cases {
		m, err := tm.Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, m.String())
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Z", tm.HaltState.String())
	assert.Equal(t, "B", tm.RunStateOf(1).String())
}

func TestTransLookup(t *testing.T) {
	m, err := tm.Parse("1RB1LB_1LA1RZ")
	require.NoError(t, err)

	trans, ok := m.Trans(tm.RunStateOf(0), 0)
	require.True(t, ok)
	assert.Equal(t, tm.Symbol(1), trans.Symbol)
	assert.Equal(t, tm.Right, trans.Dir)
	assert.Equal(t, tm.RunStateOf(1), trans.State)

	_, ok = m.Trans(tm.HaltState, 0)
	assert.False(t, ok)
}

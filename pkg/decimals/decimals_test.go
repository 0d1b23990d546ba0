package decimals

import (
	"testing"

	"github.com/gaze-network/tzbot/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutezToTez(t *testing.T) {
	testcases := []struct {
		mutez    int64
		expected string
	}{
		{0, "0"},
		{1, "0.000001"},
		{42, "0.000042"},
		{1_000_000, "1"},
		{1_500_000, "1.5"},
		{123_456_789, "123.456789"},
	}
	for _, tc := range testcases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, MutezToTez(tc.mutez).String())
		})
	}
}

func TestTezToMutez(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		testcases := map[string]int64{
			"0":          0,
			"0.000001":   1,
			"1":          1_000_000,
			"1.5":        1_500_000,
			"123.456789": 123_456_789,
			"2.100000":   2_100_000,
		}
		for input, expected := range testcases {
			mutez, err := TezToMutez(input)
			require.NoError(t, err, input)
			assert.Equal(t, expected, mutez, input)
			assert.True(t, MustFromString(input).Equal(MutezToTez(mutez)), input)
		}
	})
	t.Run("invalid", func(t *testing.T) {
		for _, input := range []string{"", "abc", "-1", "0.0000001", "1e30"} {
			_, err := TezToMutez(input)
			assert.ErrorIs(t, err, errs.InvalidArgument, input)
		}
	})
}

func TestMustFromString(t *testing.T) {
	assert.Panics(t, func() { MustFromString("nope") })
	assert.Equal(t, "0.25", MustFromString("0.25").String())
}

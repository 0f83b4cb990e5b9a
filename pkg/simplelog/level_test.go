package simplelog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allLevels = []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel}

func TestLevelRanks(t *testing.T) {
	for i, l := range allLevels {
		assert.Equal(t, i, l.Rank(), "rank of %s", l)
		assert.True(t, l.Valid())
	}
	assert.False(t, Level(5).Valid())
}

func TestShouldEmitMatrix(t *testing.T) {
	for _, level := range allLevels {
		for _, threshold := range allLevels {
			level, threshold := level, threshold
			t.Run(fmt.Sprintf("%s_at_%s", level, threshold), func(t *testing.T) {
				want := level.Rank() >= threshold.Rank()
				assert.Equal(t, want, ShouldEmit(level, threshold))
			})
		}
	}
}

func TestShouldEmitEdges(t *testing.T) {
	for _, l := range allLevels {
		assert.True(t, ShouldEmit(l, DebugLevel), "debug threshold passes %s", l)
	}
	for _, l := range allLevels[:4] {
		assert.False(t, ShouldEmit(l, FatalLevel), "fatal threshold blocks %s", l)
	}
	assert.True(t, ShouldEmit(FatalLevel, FatalLevel))
}

func TestLevelString(t *testing.T) {
	testCases := []struct {
		level Level
		want  string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
		{Level(9), "LEVEL(9)"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"Warn", WarnLevel, false},
		{"warning", WarnLevel, false},
		{" error ", ErrorLevel, false},
		{"fatal", FatalLevel, false},
		{"trace", 0, true},
		{"", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseLevel(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseLevelRoundTrip(t *testing.T) {
	for _, l := range allLevels {
		got, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
}

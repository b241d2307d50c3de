package lis200

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ======================================
// Archive Command Tests
// ======================================

func TestNewArchiveReadout_Defaults(t *testing.T) {
	cmd, err := NewArchiveReadout(1)
	require.NoError(t, err)

	assert.Equal(t, byte('0'), cmd.Attribute)
	assert.Equal(t, 1, cmd.Position)
	assert.False(t, cmd.PartialBlocks)
	assert.Equal(t, "\x01R1\x021:V.0(1;;;)\x03*", cmd.Representation())
}

func TestNewArchiveReadout_PartialBlocksWithRange(t *testing.T) {
	start := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC)

	cmd, err := NewArchiveReadout(1,
		WithRange(start, end),
		WithPartialBlocks(10),
	)
	require.NoError(t, err)

	assert.Equal(t,
		"\x01R3\x021:V.0(1;2017-01-01,00:00:00;2017-01-02,00:00:00;10)\x03*",
		cmd.Representation())
}

func TestNewArchiveReadout_Attribute(t *testing.T) {
	cmd, err := NewArchiveReadout(1, WithAttribute('4'))
	require.NoError(t, err)
	assert.Equal(t, "\x01R1\x021:V.4(1;;;)\x03.", cmd.Representation())

	cmd, err = NewArchiveReadout(1, WithAttribute('3'))
	require.NoError(t, err)
	assert.Equal(t, "\x01R1\x021:V.3(1;;;)\x03)", cmd.Representation())
}

func TestNewArchiveReadout_Position(t *testing.T) {
	cmd, err := NewArchiveReadout(3, WithPosition(3))
	require.NoError(t, err)
	assert.Equal(t, "\x01R1\x023:V.0(3;;;)\x03*", cmd.Representation())
}

func TestNewArchiveReadout_OpenLowerLimit(t *testing.T) {
	end := time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC)

	cmd, err := NewArchiveReadout(1, WithRange(time.Time{}, end))
	require.NoError(t, err)

	assert.Empty(t, cmd.Start)
	assert.Equal(t, "2017-01-02,00:00:00", cmd.End)
}

func TestNewArchiveReadout_Invalid(t *testing.T) {
	_, err := NewArchiveReadout(0)
	assert.Error(t, err)

	_, err = NewArchiveReadout(1, WithAttribute('B'))
	assert.Error(t, err)

	_, err = NewArchiveReadout(1, WithPosition(0))
	assert.Error(t, err)

	_, err = NewArchiveReadout(1, WithPosition(100))
	assert.Error(t, err)

	_, err = NewArchiveReadout(1, WithPartialBlocks(0))
	assert.Error(t, err)
}

func TestArchiveReadoutCommand_MarshalBinary(t *testing.T) {
	cmd, err := NewArchiveReadout(1)
	require.NoError(t, err)

	data, err := cmd.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte(cmd.Representation()), data)
}

// ======================================
// Timestamp Tests
// ======================================

func TestTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2017, 6, 15, 13, 37, 42, 0, time.UTC)

	formatted := FormatTimestamp(ts)
	assert.Equal(t, "2017-06-15,13:37:42", formatted)

	parsed, err := ParseTimestamp(formatted, nil)
	require.NoError(t, err)
	assert.Equal(t, ts, parsed)
}

func TestParseTimestamp_Location(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	parsed, err := ParseTimestamp("2017-06-15,13:37:42", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2017, 6, 15, 13, 37, 42, 0, loc), parsed)
}

func TestParseTimestamp_Invalid(t *testing.T) {
	_, err := ParseTimestamp("2017-06-15 13:37:42", nil)
	assert.Error(t, err)
}

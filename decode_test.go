package modplayer

import (
	"testing"

	clone "github.com/huandu/go-clone/generic"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDecode_roundTripFixture(t *testing.T) {
	base := fixtureScore()
	withCell(base, 0, 0, PatternCell{Sample: 1, Period: 428, Effect: cmdSetSpeed, Param: 3})

	data := encodeScore(base)
	got, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, base.Title, got.Title)
	require.Equal(t, base.Tag, got.Tag)
	require.Equal(t, base.SongLength, got.SongLength)
	require.Equal(t, base.RestartPos, got.RestartPos)
	require.Equal(t, base.Order, got.Order)
	require.Equal(t, base.Patterns, got.Patterns)
	require.Equal(t, base.Samples[0], got.Samples[0])
}

func TestDecode_unsupportedTag(t *testing.T) {
	s := clone.Clone(fixtureScore())
	s.Tag = "XYZ!"
	_, err := Decode(encodeScore(s))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode_truncated(t *testing.T) {
	data := encodeScore(fixtureScore())
	_, err := Decode(data[:len(data)-10])
	require.ErrorIs(t, err, ErrTruncatedModule)
}

func TestDecode_patternCountIsMaxOrderPlusOne(t *testing.T) {
	s := fixtureScore()
	s.SongLength = 3
	s.Order[0], s.Order[1], s.Order[2] = 0, 2, 1
	s.Patterns = make([]Pattern, 3)
	data := encodeScore(s)
	got, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Patterns, 3)
}

// TestDecode_cellBitfields pins the exact bit layout of a packed cell: the
// sample number's high nibble shares a byte with the period's top bits, and
// its low nibble shares a byte with the effect command.
func TestDecode_cellBitfields(t *testing.T) {
	cell := decodeCell([]byte{0x1F, 0xAC, 0x23, 0x45})
	require.Equal(t, 0x12, cell.Sample) // 0x10 | 0x02
	require.Equal(t, 0xFAC, cell.Period)
	require.Equal(t, byte(0x3), cell.Effect)
	require.Equal(t, byte(0x45), cell.Param)
}

func TestDecode_cellRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := PatternCell{
			Sample: rapid.IntRange(0, 31).Draw(t, "sample"),
			Period: rapid.IntRange(0, 4095).Draw(t, "period"),
			Effect: byte(rapid.IntRange(0, 15).Draw(t, "effect")),
			Param:  byte(rapid.IntRange(0, 255).Draw(t, "param")),
		}
		b := encodeCell(c)
		require.Equal(t, c, decodeCell(b[:]))
	})
}

// TestDecode_scoreRoundTrip checks that decoding a freshly encoded score of
// randomized shape and content reproduces every structural field exactly.
func TestDecode_scoreRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := fixtureScore()
		numPatterns := rapid.IntRange(1, 3).Draw(t, "numPatterns")
		s.Patterns = make([]Pattern, numPatterns)
		s.SongLength = rapid.IntRange(1, 8).Draw(t, "songLength")
		for i := 0; i < s.SongLength; i++ {
			s.Order[i] = byte(rapid.IntRange(0, numPatterns-1).Draw(t, "order"))
		}
		// Ensure max(order) == numPatterns-1 so Decode infers the same count.
		s.Order[0] = byte(numPatterns - 1)

		for p := range s.Patterns {
			for i := range s.Patterns[p].Cells {
				s.Patterns[p].Cells[i] = PatternCell{
					Sample: rapid.IntRange(0, 31).Draw(t, "cellSample"),
					Period: rapid.IntRange(0, 4095).Draw(t, "cellPeriod"),
					Effect: byte(rapid.IntRange(0, 15).Draw(t, "cellEffect")),
					Param:  byte(rapid.IntRange(0, 255).Draw(t, "cellParam")),
				}
			}
		}

		data := encodeScore(s)
		got, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, s.Order, got.Order)
		require.Equal(t, s.Patterns, got.Patterns)
		require.Equal(t, s.Samples[0], got.Samples[0])
	})
}

package modplayer

import (
	"bytes"
	"encoding/binary"
)

// encodeScore is the inverse of Decode, used only by tests to build raw MOD
// bytes from an in-memory Score and to exercise the decode round trip.
func encodeScore(s *Score) []byte {
	var buf bytes.Buffer

	name := make([]byte, 20)
	copy(name, s.Title)
	buf.Write(name)

	for i := 0; i < numSamples; i++ {
		smp := s.Samples[i]
		nm := make([]byte, 22)
		copy(nm, smp.Name)
		buf.Write(nm)
		binary.Write(&buf, binary.BigEndian, uint16(smp.Length/2))
		ft := smp.FineTune
		if ft < 0 {
			ft += 16
		}
		buf.WriteByte(byte(ft))
		buf.WriteByte(byte(smp.Volume))
		binary.Write(&buf, binary.BigEndian, uint16(smp.LoopStart/2))
		binary.Write(&buf, binary.BigEndian, uint16(smp.LoopLen/2))
	}

	buf.WriteByte(byte(s.SongLength))
	buf.WriteByte(byte(s.RestartPos))
	buf.Write(s.Order[:])
	buf.WriteString(s.Tag)

	for _, p := range s.Patterns {
		for _, c := range p.Cells {
			b := encodeCell(c)
			buf.Write(b[:])
		}
	}

	for _, smp := range s.Samples {
		for _, v := range smp.Data {
			buf.WriteByte(byte(v))
		}
	}

	return buf.Bytes()
}

// fixtureScore builds a small, valid, one-pattern Score used as the base for
// most engine tests: one sample (a constant 0x40 loudness byte, non-looping
// unless overridden), order `[0]`, pattern 0 empty except where a caller
// fills in cells.
func fixtureScore() *Score {
	s := &Score{
		Title:      "test song",
		SongLength: 1,
		RestartPos: 0,
		Tag:        "M.K.",
		Patterns:   make([]Pattern, 1),
	}
	s.Order[0] = 0
	s.Samples[0] = Sample{
		Name:   "square",
		Length: 4,
		Volume: 64,
		Data:   []int8{64, 64, 64, 64},
	}
	return s
}

// withCell returns s after setting pattern 0's (line, channel) cell.
func withCell(s *Score, line, channel int, c PatternCell) *Score {
	s.Patterns[0].Cells[line*channelsPerMOD+channel] = c
	return s
}

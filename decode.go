// Package modplayer decodes and plays four-channel Amiga-style tracker
// modules (the "M.K." family: M.K., M!K!, FLT4, 4CHN).
package modplayer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

const (
	numSamples      = 31
	linesPerPattern = 64
	channelsPerMOD  = 4
	bytesPerCell    = 4
	bytesPerLine    = bytesPerCell * channelsPerMOD
	bytesPerPattern = bytesPerLine * linesPerPattern
	sampleHeaderLen = 30
)

// recognizedTags lists the four-byte file tags this player understands. Any
// other tag is UnsupportedFormat.
var recognizedTags = map[string]bool{
	"M.K.": true, "M!K!": true, "FLT4": true, "4CHN": true,
}

// Sample is one of a module's 31 instrument slots: its PCM payload plus loop
// and playback metadata. loop_start+loop_length never exceeds Length; a loop
// of length <= 2 bytes is treated as non-looping.
type Sample struct {
	Name      string
	Length    int // bytes
	FineTune  int // signed, [-8, 7]
	Volume    int // [0, 64]
	LoopStart int // bytes
	LoopLen   int // bytes
	Data      []int8
}

// Loops reports whether the sample has a usable loop region.
func (s *Sample) Loops() bool { return s.LoopLen > 2 }

// PatternCell is one channel's slot within a pattern line: a sample number,
// a period, and an effect command/argument pair, packed in the file as a
// single 32-bit big-endian word.
type PatternCell struct {
	Sample int // [0, 31], 0 means none
	Period int // [0, 4095], 0 means none
	Effect byte
	Param  byte
}

// Triggers reports whether this cell starts a new note (both sample and
// period are present — a cell with only one of the two is not a trigger).
func (c PatternCell) Triggers() bool { return c.Sample != 0 && c.Period != 0 }

// decodeCell extracts a PatternCell from 4 raw bytes by explicit bitfield
// extraction (the sample number nibbles are not adjacent in the word, so this
// must not be done via layout reinterpretation).
func decodeCell(b []byte) PatternCell {
	return PatternCell{
		Sample: int(b[0]&0xF0) | int(b[2]>>4),
		Period: int(b[0]&0x0F)<<8 | int(b[1]),
		Effect: b[2] & 0x0F,
		Param:  b[3],
	}
}

// encodeCell is the inverse of decodeCell, used by the decode round-trip test.
func encodeCell(c PatternCell) [4]byte {
	var b [4]byte
	b[0] = byte(c.Sample&0xF0) | byte((c.Period>>8)&0x0F)
	b[1] = byte(c.Period & 0xFF)
	b[2] = byte((c.Sample&0x0F)<<4) | (c.Effect & 0x0F)
	b[3] = c.Param
	return b
}

// Pattern is a 64-line by 4-channel matrix of cells, stored row-major as
// cells[line*4+channel].
type Pattern struct {
	Cells [linesPerPattern * channelsPerMOD]PatternCell
}

func (p *Pattern) cell(line, channel int) PatternCell {
	return p.Cells[line*channelsPerMOD+channel]
}

// Score is the fully decoded, read-only representation of a module: its
// samples, order table, and pattern bank.
type Score struct {
	Title      string
	Samples    [numSamples]Sample
	Order      [128]byte
	SongLength int // positions, at most 128 (a larger stored value is clamped)
	RestartPos int
	Tag        string
	Patterns   []Pattern
}

// Decode parses a binary M.K.-family module. It fails with ErrTruncatedModule
// if the byte stream underflows mid-structure, and ErrUnsupportedFormat if
// the four-byte tag is not recognized.
func Decode(data []byte) (*Score, error) {
	r := bytes.NewReader(data)
	score := &Score{}

	name := make([]byte, 20)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("%w: song name: %v", ErrTruncatedModule, err)
	}
	score.Title = strings.TrimRight(string(name), "\x00")

	for i := 0; i < numSamples; i++ {
		s, err := decodeSampleHeader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d header: %v", ErrTruncatedModule, i, err)
		}
		score.Samples[i] = *s
	}

	var songLength, restart byte
	if err := binary.Read(r, binary.BigEndian, &songLength); err != nil {
		return nil, fmt.Errorf("%w: song length: %v", ErrTruncatedModule, err)
	}
	if err := binary.Read(r, binary.BigEndian, &restart); err != nil {
		return nil, fmt.Errorf("%w: restart position: %v", ErrTruncatedModule, err)
	}
	score.SongLength = int(songLength)
	if score.SongLength > len(score.Order) {
		score.SongLength = len(score.Order)
	}
	score.RestartPos = int(restart)

	if _, err := io.ReadFull(r, score.Order[:]); err != nil {
		return nil, fmt.Errorf("%w: order table: %v", ErrTruncatedModule, err)
	}

	tag := make([]byte, 4)
	if _, err := io.ReadFull(r, tag); err != nil {
		return nil, fmt.Errorf("%w: file tag: %v", ErrTruncatedModule, err)
	}
	score.Tag = string(tag)
	if !recognizedTags[score.Tag] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, score.Tag)
	}

	numPatterns := 0
	for _, o := range score.Order {
		if int(o) > numPatterns {
			numPatterns = int(o)
		}
	}
	numPatterns++

	score.Patterns = make([]Pattern, numPatterns)
	scratch := make([]byte, bytesPerPattern)
	for i := 0; i < numPatterns; i++ {
		if _, err := io.ReadFull(r, scratch); err != nil {
			return nil, fmt.Errorf("%w: pattern %d: %v", ErrTruncatedModule, i, err)
		}
		for cellIdx := 0; cellIdx < linesPerPattern*channelsPerMOD; cellIdx++ {
			off := cellIdx * bytesPerCell
			score.Patterns[i].Cells[cellIdx] = decodeCell(scratch[off : off+bytesPerCell])
		}
	}

	for i := range score.Samples {
		smp := &score.Samples[i]
		smp.Data = make([]int8, smp.Length)
		if smp.Length == 0 {
			continue
		}
		raw := make([]byte, smp.Length)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("%w: sample %d data: %v", ErrTruncatedModule, i, err)
		}
		for j, b := range raw {
			smp.Data[j] = int8(b)
		}
	}

	return score, nil
}

func decodeSampleHeader(r io.Reader) (*Sample, error) {
	var raw struct {
		Name      [22]byte
		Length    uint16
		FineTune  uint8
		Volume    uint8
		LoopStart uint16
		LoopLen   uint16
	}
	if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
		return nil, err
	}

	ft := int(raw.FineTune&0x07) - int(raw.FineTune&0x08)
	s := &Sample{
		Name:      strings.TrimRight(string(raw.Name[:]), "\x00"),
		Length:    int(raw.Length) * 2,
		FineTune:  ft,
		Volume:    int(raw.Volume),
		LoopStart: int(raw.LoopStart) * 2,
		LoopLen:   int(raw.LoopLen) * 2,
	}

	// If loop data overshoots the sample, pull the loop start back, then
	// shrink the loop length if it still overshoots (lifted from MilkyTracker
	// by way of the teacher's readMODSampleInfo).
	if s.LoopStart+s.LoopLen > s.Length {
		dx := s.LoopStart + s.LoopLen - s.Length
		s.LoopStart -= dx
		if s.LoopStart < 0 {
			s.LoopStart = 0
		}
		if s.LoopStart+s.LoopLen > s.Length {
			dx = s.LoopStart + s.LoopLen - s.Length
			s.LoopLen -= dx
		}
	}
	if s.LoopLen <= 2 {
		s.LoopLen = 0
	}

	return s, nil
}

package modplayer

import "errors"

// Error kinds surfaced by the decoder, transport and sink. InputUnavailable,
// UnsupportedFormat and TruncatedModule fail a run during decode, before any
// audio is produced. SinkClosed terminates the producer cleanly.
var (
	ErrInputUnavailable  = errors.New("modplayer: input file unavailable")
	ErrUnsupportedFormat = errors.New("modplayer: unrecognized module tag")
	ErrTruncatedModule   = errors.New("modplayer: module data truncated")
	ErrSinkClosed        = errors.New("modplayer: sink closed while frames remained")
)

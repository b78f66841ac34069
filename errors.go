package benc

import "errors"

// Codec errors. Every codec in this package fails with exactly one of these
// (possibly wrapped with position context), so callers can match with errors.Is.
// None of them is retryable: the buffer or cursor position is no longer trustworthy.
var (
	// ErrBufferTooSmall indicates fewer bytes remain than an operation requires,
	// on either the read or the write side.
	ErrBufferTooSmall = errors.New("benc: buffer too small")

	// ErrVarintOverflow indicates a varint that does not fit in 64 bits: more than
	// 10 groups, or a 10th group carrying more than one payload bit.
	ErrVarintOverflow = errors.New("benc: varint overflows uint64")

	// ErrInvalidUTF8 indicates a string payload that is not well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("benc: string is not valid utf-8")

	// ErrMissingTerminator indicates a slice or map whose trailing sentinel does not match.
	ErrMissingTerminator = errors.New("benc: missing container terminator")

	// ErrOutOfRange indicates a decoded 64-bit value does not fit the requested narrower type.
	ErrOutOfRange = errors.New("benc: value out of range for target type")
)

// Caller-level errors reported by the whole-message helpers. They flag sizing or
// framing bugs in the caller, not malformed input seen by an individual codec.
var (
	// ErrSizeMismatch is returned by Marshal when a message did not write exactly Size() bytes.
	ErrSizeMismatch = errors.New("benc: marshalled length does not match Size")

	// ErrTrailingData is returned by Unmarshal when bytes remain after the message was decoded.
	ErrTrailingData = errors.New("benc: trailing data found after decoding")

	// ErrPoolBufferTooSmall is returned by BufPool.Marshal when a message exceeds the pool's buffer size.
	ErrPoolBufferTooSmall = errors.New("benc: pooled buffer too small for message")
)

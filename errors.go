package dnastore

import (
	"errors"

	"github.com/Hacktomm/dnastore/internal/goldman"
	"github.com/Hacktomm/dnastore/internal/prefix"
	"github.com/Hacktomm/dnastore/internal/rs"
)

// Sentinel errors, per spec.md §7.
var (
	// ErrInvalidParameters is a constructor-time violation of
	// chunk_size+4+nsym <= 255.
	ErrInvalidParameters = errors.New("dnastore: invalid parameters")

	// ErrFieldOutOfRange is re-exported from internal/prefix: a prefix
	// field exceeds its declared bit width.
	ErrFieldOutOfRange = prefix.ErrFieldOutOfRange

	// ErrTooManySegments is an encode-time failure: a chunk produced 256
	// or more segments.
	ErrTooManySegments = errors.New("dnastore: chunk produced too many segments")

	// ErrHeaderUnrecoverable is a decode-time failure: no valid header
	// oligo, Goldman-decoding of its consensus fails, or the header's
	// CRC-16 does not match.
	ErrHeaderUnrecoverable = errors.New("dnastore: file header unrecoverable")

	// ErrTransitionInvalid is re-exported from internal/goldman.
	ErrTransitionInvalid = goldman.ErrTransitionInvalid

	// ErrRSDecodeFailure is re-exported from internal/rs.
	ErrRSDecodeFailure = rs.ErrRSDecodeFailure
)

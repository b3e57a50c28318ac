//
// Written by Maxim Khitrov (October 2012)
//

package pbkdf2

import (
	"errors"
	"strconv"
)

// ErrInvalidArgument is returned, possibly wrapped, when an iteration count,
// key length, or PRF name is unusable. It is always reported before any PRF
// work begins.
var ErrInvalidArgument = errors.New("pbkdf2: invalid argument")

// KeyFound is returned by the PBKDF2.Search callback function to indicate that
// the correct key was found.
var KeyFound = errors.New("pbkdf2: key found")

// ErrTimeout is returned by PBKDF2.Search when a valid key is not found in the
// allocated time.
var ErrTimeout = errors.New("pbkdf2: key search timeout")

// UnsupportedPRFError is the name of a pseudorandom function that is well
// formed but not known to LookupPRF.
type UnsupportedPRFError string

func (e UnsupportedPRFError) Error() string {
	return "pbkdf2: unsupported PRF " + strconv.Quote(string(e))
}

// KeyInitError is returned when a PRF refuses the password as key material.
type KeyInitError struct {
	PRF string // Canonical PRF name
	Err error  // Cause reported by the PRF constructor
}

func (e *KeyInitError) Error() string {
	return "pbkdf2: " + e.PRF + " key initialization failed: " + e.Err.Error()
}

func (e *KeyInitError) Unwrap() error { return e.Err }

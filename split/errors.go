package split

import "errors"

// Failure classes of a split run. Callers match with errors.Is; everything
// else surfaces as wrapped one-off errors.
var (
	// ErrSourceUnreadable - source stylesheet is missing or not a text file.
	// Always fatal before anything is written.
	ErrSourceUnreadable = errors.New("source stylesheet unreadable")

	// ErrDestinationUnwritable - one or more module files could not be
	// written. Collected per entry, the pass continues over the rest.
	ErrDestinationUnwritable = errors.New("destination unwritable")

	// ErrVerificationMismatch - compiled candidate differs from the original.
	ErrVerificationMismatch = errors.New("compiled stylesheet differs from original")

	// ErrVerificationMissing - original or candidate is absent, so there is
	// nothing to compare. Distinct from a mismatch.
	ErrVerificationMissing = errors.New("cannot verify, artifact is missing")
)

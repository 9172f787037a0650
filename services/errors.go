package services

import "errors"

// Errors shared across services and mapped to HTTP statuses in the handlers.
var (
	// Validation and business rules
	ErrPlayerNameRequired   = errors.New("player name is required")
	ErrPlayerRatingRequired = errors.New("player rating is required")
	ErrPlayerNameConflict   = errors.New("player name is already registered")
	ErrInvalidResultCode    = errors.New("invalid match result code")
	ErrByeMatchResult       = errors.New("a bye match's result cannot be changed")

	// State errors: the round progression gate
	ErrNotEnoughPlayers  = errors.New("at least two players are required")
	ErrRoundStillOpen    = errors.New("current round still has pending results")
	ErrNoRoundToConclude = errors.New("no round has been generated yet")

	// Not found
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")

	// Consistency: a stored result outside the recognized set means the data
	// was corrupted outside the engine's control. The operation is aborted
	// and its transaction rolled back.
	ErrUnknownStoredResult = errors.New("stored match result is not a recognized code")

	// Auth
	ErrInvalidCredentials = errors.New("invalid director password")

	// Archival
	ErrArchiveUnavailable = errors.New("archive storage is not configured")
)

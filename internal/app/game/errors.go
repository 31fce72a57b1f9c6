// internal/app/game/errors.go
package game

import "errors"

// Failure kinds for room operations. The REST layer maps these to status
// codes with errors.Is; everything else bubbles up as a 500.
var (
	ErrInvalidInput = errors.New("invalid input")

	ErrRoomNotFound    = errors.New("room not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrCaptionNotFound = errors.New("caption not found")

	ErrMemberExists         = errors.New("member already exists in room")
	ErrCzarCannotSubmit     = errors.New("the czar cannot submit a caption")
	ErrCaptionNotInHand     = errors.New("caption is not in the member's hand")
	ErrSelfScoreForbidden   = errors.New("the czar cannot score their own caption")
	ErrCzarRemovalForbidden = errors.New("the current czar cannot be removed")

	// ErrConflict means a concurrent writer got there first; the caller
	// should re-read and decide whether to retry.
	ErrConflict = errors.New("room was modified concurrently")

	ErrUnauthorized = errors.New("missing or invalid czar credential")

	ErrPromptUnavailable = errors.New("prompt image provider unavailable")

	// ErrCzarConfigMissing means the credential side-table disagrees with the
	// room (or is absent). That is a consistency bug, not a user error; it is
	// surfaced and logged loudly rather than silently repaired.
	ErrCzarConfigMissing = errors.New("czar credential record missing or inconsistent")
)

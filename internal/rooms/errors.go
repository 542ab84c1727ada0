package rooms

import "errors"

// Transition errors. Callers distinguish them with errors.Is: invalid
// transitions and permission denials are recoverable (the caller re-prompts),
// not-found errors are fatal to the single operation.
var (
	ErrInvalidTransition = errors.New("invalid room status transition")
	ErrPermissionDenied  = errors.New("role not permitted to change room status")
	ErrRoomNotFound      = errors.New("room not found")
	ErrStaffNotFound     = errors.New("staff member not found")
)

package attendance

import "errors"

var (
	ErrNotFound           = errors.New("attendance record not found")
	ErrMalformedCandidate = errors.New("malformed check-in candidate")
	ErrUnknownEquipment   = errors.New("unknown equipment")
)

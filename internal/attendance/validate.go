package attendance

import (
	"sort"
	"strings"
	"time"

	"gym-activity-backend/internal/parse"
)

// Field keys match the JSON names the browser form uses.
const (
	FieldMemberID    = "memberId"
	FieldMemberName  = "memberName"
	FieldCheckInTime = "checkInTime"
)

// FieldErrors maps a form field to its inline error message. Empty means valid.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// Validate checks the required fields of a check-in submission.
// Equipment is not validated here; an empty selection is fine.
func Validate(c Candidate) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(c.MemberID) == "" {
		errs[FieldMemberID] = "Member ID is required"
	}
	if strings.TrimSpace(c.MemberName) == "" {
		errs[FieldMemberName] = "Member name is required"
	}

	switch {
	case strings.TrimSpace(c.CheckInTime) == "":
		errs[FieldCheckInTime] = "Check-in time is required"
	default:
		// The location does not change whether the value parses.
		if _, err := parse.Timestamp(c.CheckInTime, time.UTC); err != nil {
			errs[FieldCheckInTime] = "Check-in time is invalid"
		}
	}

	return errs
}

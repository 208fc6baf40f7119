package attendance

import "time"

// SessionState is the lifecycle state of an attendance record.
type SessionState string

const (
	// StateActive means the member is still on the premises.
	StateActive SessionState = "active"
	// StateClosed is terminal. A returning member gets a new record.
	StateClosed SessionState = "closed"
)

// Record is a single visit. Only the store creates or mutates records; callers
// always receive copies.
type Record struct {
	ID            int64
	MemberID      string
	MemberName    string
	CheckInTime   time.Time
	CheckOutTime  *time.Time // nil while active, immutable once set
	EquipmentUsed []string
}

// State derives the lifecycle state from the check-out timestamp.
func (r Record) State() SessionState {
	if r.CheckOutTime == nil {
		return StateActive
	}
	return StateClosed
}

// clone returns a deep copy so snapshots never alias store memory.
func (r *Record) clone() Record {
	out := *r
	if r.CheckOutTime != nil {
		t := *r.CheckOutTime
		out.CheckOutTime = &t
	}
	out.EquipmentUsed = make([]string, len(r.EquipmentUsed))
	copy(out.EquipmentUsed, r.EquipmentUsed)
	return out
}

// Candidate is a check-in submission as it arrives from the form.
type Candidate struct {
	MemberID    string   `json:"memberId"`
	MemberName  string   `json:"memberName"`
	CheckInTime string   `json:"checkInTime"`
	Equipment   []string `json:"equipment"`
}

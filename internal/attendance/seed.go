package attendance

import (
	"time"

	"gym-activity-backend/internal/parse"
)

type demoVisit struct {
	candidate Candidate
	checkOut  string
}

// The sample visits the front desk shows on a fresh install.
var demoVisits = []demoVisit{
	{Candidate{MemberID: "M001", MemberName: "Alex Johnson", CheckInTime: "2023-06-15T09:30", Equipment: []string{"Treadmill", "Bench Press"}}, "2023-06-15T11:15"},
	{Candidate{MemberID: "M045", MemberName: "Sarah Miller", CheckInTime: "2023-06-15T10:15", Equipment: []string{"Rowing Machine"}}, ""},
	{Candidate{MemberID: "M112", MemberName: "James Wilson", CheckInTime: "2023-06-15T08:00", Equipment: []string{"Squat Rack", "Dumbbells"}}, "2023-06-15T09:30"},
	{Candidate{MemberID: "M078", MemberName: "Maria Garcia", CheckInTime: "2023-06-15T11:45", Equipment: []string{"Elliptical"}}, ""},
}

// WithDemoRecords preloads the sample visits once all other options are applied.
func WithDemoRecords() Option {
	return func(s *memoryStore) {
		s.demo = true
	}
}

func (s *memoryStore) seed(visits []demoVisit) error {
	for _, v := range visits {
		id, err := s.Add(v.candidate)
		if err != nil {
			return err
		}
		if v.checkOut == "" {
			continue
		}
		var at time.Time
		if at, err = parse.Timestamp(v.checkOut, s.loc); err != nil {
			return err
		}
		if _, _, err := s.checkOutAt(id, at); err != nil {
			return err
		}
	}
	return nil
}

package notifier

import "time"

// EventType names a change notification. Wildcard matches every type.
type EventType string

const (
	Wildcard EventType = "*"

	AppointmentCreated       EventType = "appointment.created"
	AppointmentUpdated       EventType = "appointment.updated"
	AppointmentStatusChanged EventType = "appointment.status_changed"
	AppointmentDeleted       EventType = "appointment.deleted"
	BlockedTimeCreated       EventType = "blocked_time.created"
	BlockedTimeDeleted       EventType = "blocked_time.deleted"
	StaffUpdated             EventType = "staff.updated"
	StaffDeleted             EventType = "staff.deleted"
)

var knownTypes = map[EventType]bool{
	Wildcard:                 true,
	AppointmentCreated:       true,
	AppointmentUpdated:       true,
	AppointmentStatusChanged: true,
	AppointmentDeleted:       true,
	BlockedTimeCreated:       true,
	BlockedTimeDeleted:       true,
	StaffUpdated:             true,
	StaffDeleted:             true,
}

// Known reports whether t is a type the bus can deliver (including Wildcard).
func (t EventType) Known() bool {
	return knownTypes[t]
}

// Event describes one change. SubjectID is the id of the changed record;
// StaffID and LocationID let availability views decide whether to re-poll.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	SubjectID  string    `json:"subject_id"`
	StaffID    string    `json:"staff_id,omitempty"`
	LocationID string    `json:"location_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

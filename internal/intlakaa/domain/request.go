package domain

import "time"

// Request statuses. Any status may move to any other.
const (
	StatusPending   = "pending"
	StatusContacted = "contacted"
	StatusCompleted = "completed"
)

// Request is a lead submitted through the public form.
type Request struct {
	ID            string
	Name          string
	Phone         string
	StoreURL      string
	MonthlySalary string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidStatus reports whether s is an allowed request status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusContacted, StatusCompleted:
		return true
	}
	return false
}

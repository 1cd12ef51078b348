package domain

import "time"

// ApplicationType enumerates the kinds of land-record requests a citizen
// may file.
type ApplicationType string

const (
	TypeMutation   ApplicationType = "mutation"
	TypeCorrection ApplicationType = "correction"
	TypeConversion ApplicationType = "conversion"
)

// IsValid reports whether the type is one of the recognized values.
func (t ApplicationType) IsValid() bool {
	switch t {
	case TypeMutation, TypeCorrection, TypeConversion:
		return true
	}
	return false
}

// PaymentState tracks whether the filing fee has been settled.
type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentCompleted PaymentState = "completed"
)

// StatusSubmitted is the status every application starts in. Subsequent
// statuses are open-ended strings set by officers; the engine records them
// without enforcing a transition graph.
const StatusSubmitted = "submitted"

// StatusRecord is one entry in an application's append-only review trail.
type StatusRecord struct {
	ActorRole Role      `json:"actor_role"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	Remarks   string    `json:"remarks,omitempty"`
}

// Application is a citizen-submitted request to mutate, correct, or convert
// the record of a specific land plot. Type, ApplicantEmail, PlotID and
// Documents are immutable after creation; Status, PaymentStatus,
// OfficerAssigned and History change only through the workflow engine.
type Application struct {
	ID              string          `json:"id"`
	Type            ApplicationType `json:"application_type"`
	ApplicantEmail  string          `json:"applicant_email"`
	PlotID          string          `json:"plot_id"`
	Status          string          `json:"application_status"`
	PaymentStatus   PaymentState    `json:"payment_status"`
	OfficerAssigned string          `json:"officer_assigned,omitempty"`
	Documents       []string        `json:"documents"`
	Reason          string          `json:"reason,omitempty"`
	History         []StatusRecord  `json:"history"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// IsPaid reports whether the filing fee has been completed.
func (a *Application) IsPaid() bool {
	return a != nil && a.PaymentStatus == PaymentCompleted
}

// BelongsTo reports whether the application was filed by the given email.
func (a *Application) BelongsTo(email string) bool {
	return a != nil && email != "" && a.ApplicantEmail == email
}

// Clone returns a deep copy so stores can hand out values without aliasing
// the History and Documents slices.
func (a *Application) Clone() *Application {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Documents = append([]string(nil), a.Documents...)
	cp.History = append([]StatusRecord(nil), a.History...)
	return &cp
}

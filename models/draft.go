package models

// Service catalogue: the closed set of bookable service kinds.
const (
	ServiceMeeting      = "meeting"
	ServiceConsultation = "consultation"
	ServiceTherapy      = "therapy session"
	ServiceWorkshop     = "workshop"
	ServiceBusiness     = "business consultation"
	ServiceCreative     = "creative session"
)

// ServiceCatalogue lists all recognised service types in display order.
var ServiceCatalogue = []string{
	ServiceConsultation,
	ServiceTherapy,
	ServiceWorkshop,
	ServiceMeeting,
	ServiceBusiness,
	ServiceCreative,
}

// Duration bounds in minutes, shared by every validation site.
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 240
)

// Draft is the accumulating, partially-filled booking record for one
// session. Zero values mean "not collected yet". Date is "2006-01-02",
// Time is 24h "15:04"; both are parsed into time.Time only at the
// availability boundary.
type Draft struct {
	ServiceType     string `json:"serviceType,omitempty"`
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	ContactEmail    string `json:"contactEmail,omitempty"`

	// Assigned only on a successful booking; once ConfirmationID is set the
	// draft is immutable.
	ConfirmationID   string `json:"confirmationId,omitempty"`
	ConfirmationCode string `json:"confirmationCode,omitempty"`
}

// Confirmed reports whether the booking behind this draft has been committed.
func (d *Draft) Confirmed() bool {
	return d.ConfirmationID != ""
}

// KnownService reports whether s belongs to the service catalogue.
func KnownService(s string) bool {
	for _, svc := range ServiceCatalogue {
		if svc == s {
			return true
		}
	}
	return false
}

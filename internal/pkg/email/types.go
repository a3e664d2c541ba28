package email

import "fmt"

// Message is a single outbound email.
type Message struct {
	To       []string
	Subject  string
	HTMLBody string
}

// TemplateData is the base payload shared by all mail templates.
type TemplateData struct {
	Subject    string
	ActionURL  string
	ActionText string
	LogoURL    string
}

// RequestMailData feeds the "new request" mail to a donor.
type RequestMailData struct {
	TemplateData
	FirstName        string
	OrganizationName string
}

// AcceptanceMailData feeds the acceptance mail to a facility.
type AcceptanceMailData struct {
	TemplateData
	FacilityName    string
	DonorName       string
	AppointmentDate string
}

// AppointmentMailData feeds the appointment-confirmation mail to a donor.
type AppointmentMailData struct {
	TemplateData
	DonorName       string
	FacilityName    string
	AppointmentDate string
	AppointmentTime string
	FacilityAddress string
	FacilityPhone   string
}

// DeclineMailData feeds the decline mail to a facility.
type DeclineMailData struct {
	TemplateData
	FacilityName    string
	DonorName       string
	RejectionReason string
}

// ProfileVerificationData feeds both the verified and declined profile mails.
type ProfileVerificationData struct {
	TemplateData
	OrganizationName string
	Reason           string
}

// Config for the SMTP sender.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TemplatePath string
	BaseURL      string
	LogoURL      string
}

func (c Config) Validate() error {
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.SMTPPort)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// Sender delivers the application's transactional mail. The request
// lifecycle treats every method as fire-and-forget.
type Sender interface {
	Send(msg *Message) error
	SendVerification(email, token string) error
	SendRequestMail(email, firstName, organizationName string) error
	SendAcceptanceMail(email, facilityName, donorName, appointmentDate string) error
	SendAppointmentMail(email, donorName, facilityName, appointmentDate, appointmentTime, facilityAddress, facilityPhone string) error
	SendDeclineMail(email, facilityName, donorName, rejectionReason string) error
	SendProfileVerifiedMail(email, organizationName string) error
	SendProfileDeclineMail(email, organizationName, reason string) error
}

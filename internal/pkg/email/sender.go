package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"bloodlink_backend/internal/logger"
)

// SMTPSender delivers mail through an SMTP relay using gomail.
type SMTPSender struct {
	cfg       Config
	dialer    *gomail.Dialer
	templates *TemplateManager
}

func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("email config: %w", err)
	}
	return &SMTPSender{
		cfg:       cfg,
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		templates: NewTemplateManager(cfg.TemplatePath),
	}, nil
}

func (s *SMTPSender) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %v: %w", msg.To, err)
	}
	logger.Debug("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (s *SMTPSender) send(to, templateName, subject string, data any) error {
	body, err := s.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return s.Send(&Message{To: []string{to}, Subject: subject, HTMLBody: body})
}

func (s *SMTPSender) base(subject string) TemplateData {
	return TemplateData{Subject: subject, LogoURL: s.cfg.LogoURL}
}

func (s *SMTPSender) SendVerification(email, token string) error {
	data := s.base("Verify your email address")
	data.ActionURL = fmt.Sprintf("%s/auth/verify-email?token=%s", s.cfg.BaseURL, token)
	data.ActionText = "Verify email"
	return s.send(email, TemplateVerification, data.Subject, data)
}

func (s *SMTPSender) SendRequestMail(email, firstName, organizationName string) error {
	data := RequestMailData{
		TemplateData:     s.base("You have a new donation request"),
		FirstName:        firstName,
		OrganizationName: organizationName,
	}
	data.ActionURL = fmt.Sprintf("%s/donor/requests", s.cfg.BaseURL)
	return s.send(email, TemplateRequest, data.Subject, data)
}

func (s *SMTPSender) SendAcceptanceMail(email, facilityName, donorName, appointmentDate string) error {
	data := AcceptanceMailData{
		TemplateData:    s.base("Your donation request was accepted"),
		FacilityName:    facilityName,
		DonorName:       donorName,
		AppointmentDate: appointmentDate,
	}
	return s.send(email, TemplateAcceptance, data.Subject, data)
}

func (s *SMTPSender) SendAppointmentMail(email, donorName, facilityName, appointmentDate, appointmentTime, facilityAddress, facilityPhone string) error {
	data := AppointmentMailData{
		TemplateData:    s.base("Your donation appointment is confirmed"),
		DonorName:       donorName,
		FacilityName:    facilityName,
		AppointmentDate: appointmentDate,
		AppointmentTime: appointmentTime,
		FacilityAddress: facilityAddress,
		FacilityPhone:   facilityPhone,
	}
	return s.send(email, TemplateAppointment, data.Subject, data)
}

func (s *SMTPSender) SendDeclineMail(email, facilityName, donorName, rejectionReason string) error {
	data := DeclineMailData{
		TemplateData:    s.base("Your donation request was declined"),
		FacilityName:    facilityName,
		DonorName:       donorName,
		RejectionReason: rejectionReason,
	}
	return s.send(email, TemplateDecline, data.Subject, data)
}

func (s *SMTPSender) SendProfileVerifiedMail(email, organizationName string) error {
	data := ProfileVerificationData{
		TemplateData:     s.base("Your facility has been verified"),
		OrganizationName: organizationName,
	}
	return s.send(email, TemplateProfileVerified, data.Subject, data)
}

func (s *SMTPSender) SendProfileDeclineMail(email, organizationName, reason string) error {
	data := ProfileVerificationData{
		TemplateData:     s.base("Facility verification declined"),
		OrganizationName: organizationName,
		Reason:           reason,
	}
	return s.send(email, TemplateProfileDeclined, data.Subject, data)
}

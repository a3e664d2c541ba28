package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync"
)

// TemplateManager loads HTML mail templates from disk, falling back to
// the built-in versions when no file is present.
type TemplateManager struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]*template.Template
}

func NewTemplateManager(dir string) *TemplateManager {
	return &TemplateManager{
		dir:   dir,
		cache: make(map[string]*template.Template),
	}
}

// Render executes the named template with the given data.
func (tm *TemplateManager) Render(name string, data any) (string, error) {
	tmpl, err := tm.get(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) get(name string) (*template.Template, error) {
	tm.mu.RLock()
	tmpl, ok := tm.cache[name]
	tm.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tmpl, ok := tm.cache[name]; ok {
		return tmpl, nil
	}

	source := builtinTemplate(name)
	if tm.dir != "" {
		path := filepath.Join(tm.dir, name+".html")
		if raw, err := os.ReadFile(path); err == nil {
			source = string(raw)
		}
	}
	if source == "" {
		return nil, fmt.Errorf("unknown email template: %s", name)
	}

	tmpl, err := template.New(name).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	tm.cache[name] = tmpl
	return tmpl, nil
}

const (
	TemplateVerification    = "verification"
	TemplateRequest         = "request"
	TemplateAcceptance      = "acceptance"
	TemplateAppointment     = "appointment"
	TemplateDecline         = "decline"
	TemplateProfileVerified = "profile_verified"
	TemplateProfileDeclined = "profile_declined"
)

func builtinTemplate(name string) string {
	switch name {
	case TemplateVerification:
		return verificationTemplate
	case TemplateRequest:
		return requestTemplate
	case TemplateAcceptance:
		return acceptanceTemplate
	case TemplateAppointment:
		return appointmentTemplate
	case TemplateDecline:
		return declineTemplate
	case TemplateProfileVerified:
		return profileVerifiedTemplate
	case TemplateProfileDeclined:
		return profileDeclinedTemplate
	default:
		return ""
	}
}

const verificationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; padding: 30px; border-radius: 8px;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="BloodLink" style="height: 40px; margin-bottom: 20px;">{{end}}
    <h2 style="color: #c0392b;">Verify your email address</h2>
    <p>Thanks for signing up. Please confirm your email address to activate your account.</p>
    <p style="margin: 30px 0;">
      <a href="{{.ActionURL}}" style="background: #c0392b; color: #ffffff; padding: 12px 24px; border-radius: 4px; text-decoration: none;">{{.ActionText}}</a>
    </p>
    <p style="color: #777; font-size: 13px;">If you did not create an account, you can safely ignore this email.</p>
  </div>
</body>
</html>`

const requestTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; padding: 30px; border-radius: 8px;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="BloodLink" style="height: 40px; margin-bottom: 20px;">{{end}}
    <h2 style="color: #c0392b;">You have a new donation request</h2>
    <p>Hello {{.FirstName}},</p>
    <p><strong>{{.OrganizationName}}</strong> has sent you a blood donation request. Log in to your dashboard to review the details and respond.</p>
    <p style="margin: 30px 0;">
      <a href="{{.ActionURL}}" style="background: #c0392b; color: #ffffff; padding: 12px 24px; border-radius: 4px; text-decoration: none;">View request</a>
    </p>
    <p>Thank you for being a lifesaver.</p>
  </div>
</body>
</html>`

const acceptanceTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; padding: 30px; border-radius: 8px;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="BloodLink" style="height: 40px; margin-bottom: 20px;">{{end}}
    <h2 style="color: #27ae60;">Donation request accepted</h2>
    <p>Hello {{.FacilityName}},</p>
    <p><strong>{{.DonorName}}</strong> has accepted your donation request scheduled for <strong>{{.AppointmentDate}}</strong>.</p>
    <p>Please make the necessary arrangements to receive the donor.</p>
  </div>
</body>
</html>`

const appointmentTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; padding: 30px; border-radius: 8px;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="BloodLink" style="height: 40px; margin-bottom: 20px;">{{end}}
    <h2 style="color: #27ae60;">Your appointment is confirmed</h2>
    <p>Hello {{.DonorName}},</p>
    <p>Your blood donation appointment with <strong>{{.FacilityName}}</strong> has been confirmed.</p>
    <table style="border-collapse: collapse; margin: 20px 0;">
      <tr><td style="padding: 6px 16px 6px 0; color: #777;">Date</td><td>{{.AppointmentDate}}</td></tr>
      <tr><td style="padding: 6px 16px 6px 0; color: #777;">Time</td><td>{{.AppointmentTime}}</td></tr>
      <tr><td style="padding: 6px 16px 6px 0; color: #777;">Address</td><td>{{.FacilityAddress}}</td></tr>
      <tr><td style="padding: 6px 16px 6px 0; color: #777;">Phone</td><td>{{.FacilityPhone}}</td></tr>
    </table>
    <p>Please ensure you are hydrated and have eaten before the appointment.</p>
  </div>
</body>
</html>`

const declineTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; padding: 30px; border-radius: 8px;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="BloodLink" style="height: 40px; margin-bottom: 20px;">{{end}}
    <h2 style="color: #c0392b;">Donation request declined</h2>
    <p>Hello {{.FacilityName}},</p>
    <p><strong>{{.DonorName}}</strong> has declined your donation request.</p>
    <p style="background: #fdf2f2; padding: 12px; border-radius: 4px;"><strong>Reason:</strong> {{.RejectionReason}}</p>
    <p>You can search for other available donors from your dashboard.</p>
  </div>
</body>
</html>`

const profileVerifiedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; padding: 30px; border-radius: 8px;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="BloodLink" style="height: 40px; margin-bottom: 20px;">{{end}}
    <h2 style="color: #27ae60;">Your facility has been verified</h2>
    <p>Hello {{.OrganizationName}},</p>
    <p>Your facility profile has been reviewed and verified. You can now log in and start sending donation requests to donors.</p>
  </div>
</body>
</html>`

const profileDeclinedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; padding: 30px; border-radius: 8px;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="BloodLink" style="height: 40px; margin-bottom: 20px;">{{end}}
    <h2 style="color: #c0392b;">Facility verification declined</h2>
    <p>Hello {{.OrganizationName}},</p>
    <p>Unfortunately your facility profile could not be verified at this time.</p>
    <p style="background: #fdf2f2; padding: 12px; border-radius: 4px;"><strong>Reason:</strong> {{.Reason}}</p>
    <p>You may update your profile details and the review will be repeated.</p>
  </div>
</body>
</html>`

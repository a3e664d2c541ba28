package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBuiltinTemplates(t *testing.T) {
	tm := NewTemplateManager("")

	html, err := tm.Render(TemplateRequest, RequestMailData{
		FirstName:        "Ada",
		OrganizationName: "City Clinic",
	})
	assert.NoError(t, err)
	assert.Contains(t, html, "Ada")
	assert.Contains(t, html, "City Clinic")
}

func TestRenderAppointmentTemplate(t *testing.T) {
	tm := NewTemplateManager("")

	html, err := tm.Render(TemplateAppointment, AppointmentMailData{
		DonorName:       "Ada Obi",
		FacilityName:    "City Clinic",
		AppointmentDate: "2026-09-20",
		AppointmentTime: "10:00",
		FacilityAddress: "12 Main St, Lagos",
		FacilityPhone:   "+111",
	})
	assert.NoError(t, err)
	assert.Contains(t, html, "2026-09-20")
	assert.Contains(t, html, "12 Main St, Lagos")
}

func TestRenderEscapesHTML(t *testing.T) {
	tm := NewTemplateManager("")

	html, err := tm.Render(TemplateDecline, DeclineMailData{
		FacilityName:    "City Clinic",
		DonorName:       "Ada",
		RejectionReason: "<script>alert(1)</script>",
	})
	assert.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	tm := NewTemplateManager("")

	_, err := tm.Render("nonexistent", nil)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{SMTPHost: "smtp.example.com", SMTPPort: 587, FromEmail: "no-reply@example.com"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, Config{SMTPPort: 587, FromEmail: "x@y.z"}.Validate())
	assert.Error(t, Config{SMTPHost: "h", SMTPPort: 0, FromEmail: "x@y.z"}.Validate())
	assert.Error(t, Config{SMTPHost: "h", SMTPPort: 587}.Validate())
}

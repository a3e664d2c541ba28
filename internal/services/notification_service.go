package services

import (
	"sync"

	"bloodlink_backend/internal/logger"
	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/pkg/email"
)

// NotificationService dispatches transactional mail. Every method returns
// immediately: delivery happens on a background goroutine after the calling
// transaction has committed, and failures are logged, never surfaced.
type NotificationService interface {
	SendVerificationEmail(toEmail, token string)
	NotifyRequestCreated(donor *models.User, organizationName string)
	NotifyRequestAccepted(facility, donor *models.User, request *models.DonationRequest)
	NotifyRequestDeclined(facility, donor *models.User, rejectionReason string)
	NotifyProfileVerified(facility *models.User)
	NotifyProfileDeclined(facility *models.User, reason string)

	// Wait blocks until all in-flight sends finish. Used on shutdown and in tests.
	Wait()
}

type NotificationServiceImpl struct {
	mailer email.Sender
	wg     sync.WaitGroup
}

func NewNotificationService(mailer email.Sender) NotificationService {
	return &NotificationServiceImpl{mailer: mailer}
}

func (s *NotificationServiceImpl) dispatch(kind string, send func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := send(); err != nil {
			logger.Error("notification delivery failed", "kind", kind, "error", err)
		}
	}()
}

func (s *NotificationServiceImpl) Wait() {
	s.wg.Wait()
}

func (s *NotificationServiceImpl) SendVerificationEmail(toEmail, token string) {
	s.dispatch("verification", func() error {
		return s.mailer.SendVerification(toEmail, token)
	})
}

func (s *NotificationServiceImpl) NotifyRequestCreated(donor *models.User, organizationName string) {
	firstName := ""
	if donor.DonorProfile != nil {
		firstName = donor.DonorProfile.FirstName
	}
	toEmail := donor.Email
	s.dispatch("request_created", func() error {
		return s.mailer.SendRequestMail(toEmail, firstName, organizationName)
	})
}

// NotifyRequestAccepted sends two mails: acceptance to the facility and an
// appointment confirmation to the donor. The sends run concurrently and
// independently, so one failing does not stop the other.
func (s *NotificationServiceImpl) NotifyRequestAccepted(facility, donor *models.User, request *models.DonationRequest) {
	donorName := ""
	if donor.DonorProfile != nil {
		donorName = donor.DonorProfile.FullName()
	}
	facilityName := request.OrganizationName
	facilityPhone := facility.PhoneNumber

	s.dispatch("request_accepted_facility", func() error {
		return s.mailer.SendAcceptanceMail(facility.Email, facilityName, donorName, request.AppointmentDate)
	})
	s.dispatch("request_accepted_donor", func() error {
		return s.mailer.SendAppointmentMail(donor.Email, donorName, facilityName,
			request.AppointmentDate, request.AppointmentTime, request.OrganizationAddress, facilityPhone)
	})
}

func (s *NotificationServiceImpl) NotifyRequestDeclined(facility, donor *models.User, rejectionReason string) {
	donorName := ""
	if donor.DonorProfile != nil {
		donorName = donor.DonorProfile.FullName()
	}
	facilityName := facility.Email
	if facility.FacilityProfile != nil {
		facilityName = facility.FacilityProfile.OrganizationName
	}
	s.dispatch("request_declined", func() error {
		return s.mailer.SendDeclineMail(facility.Email, facilityName, donorName, rejectionReason)
	})
}

func (s *NotificationServiceImpl) NotifyProfileVerified(facility *models.User) {
	organizationName := facility.Email
	if facility.FacilityProfile != nil {
		organizationName = facility.FacilityProfile.OrganizationName
	}
	s.dispatch("profile_verified", func() error {
		return s.mailer.SendProfileVerifiedMail(facility.Email, organizationName)
	})
}

func (s *NotificationServiceImpl) NotifyProfileDeclined(facility *models.User, reason string) {
	organizationName := facility.Email
	if facility.FacilityProfile != nil {
		organizationName = facility.FacilityProfile.OrganizationName
	}
	s.dispatch("profile_declined", func() error {
		return s.mailer.SendProfileDeclineMail(facility.Email, organizationName, reason)
	})
}

package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/repositories"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory repositories.UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) put(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if _, err := r.FindByEmail(user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	r.put(user)
	return nil
}

func (r *fakeUserRepo) MarkEmailVerified(userID string) error {
	return r.mutate(userID, func(u *models.User) { u.IsEmailVerified = true })
}

func (r *fakeUserRepo) SetProfileFlags(userID string, complete, verified bool) error {
	return r.mutate(userID, func(u *models.User) {
		u.IsProfileComplete = complete
		u.IsProfileVerified = verified
	})
}

func (r *fakeUserRepo) SetDeclineReason(userID, reason string) error {
	return r.mutate(userID, func(u *models.User) {
		if u.FacilityProfile == nil {
			u.FacilityProfile = &models.FacilityProfile{UserID: userID}
		}
		u.FacilityProfile.DeclineVerificationReason = reason
	})
}

func (r *fakeUserRepo) UpdatePhoneNumber(userID, phone string) error {
	return r.mutate(userID, func(u *models.User) { u.PhoneNumber = phone })
}

func (r *fakeUserRepo) mutate(userID string, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	fn(user)
	return nil
}

func (r *fakeUserRepo) CreateDonorProfile(profile *models.DonorProfile) error {
	return r.mutate(profile.UserID, func(u *models.User) { u.DonorProfile = profile })
}

func (r *fakeUserRepo) UpdateDonorProfile(profile *models.DonorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[profile.UserID]
	if !ok || user.DonorProfile == nil {
		return repositories.ErrProfileNotFound
	}
	user.DonorProfile = profile
	return nil
}

func (r *fakeUserRepo) CreateFacilityProfile(profile *models.FacilityProfile) error {
	return r.mutate(profile.UserID, func(u *models.User) { u.FacilityProfile = profile })
}

func (r *fakeUserRepo) UpdateFacilityProfile(profile *models.FacilityProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[profile.UserID]
	if !ok || user.FacilityProfile == nil {
		return repositories.ErrProfileNotFound
	}
	user.FacilityProfile = profile
	return nil
}

func (r *fakeUserRepo) FindDonorProfile(userID string) (*models.DonorProfile, error) {
	user, err := r.FindByID(userID)
	if err != nil || user.DonorProfile == nil {
		return nil, repositories.ErrProfileNotFound
	}
	return user.DonorProfile, nil
}

func (r *fakeUserRepo) FindFacilityProfile(userID string) (*models.FacilityProfile, error) {
	user, err := r.FindByID(userID)
	if err != nil || user.FacilityProfile == nil {
		return nil, repositories.ErrProfileNotFound
	}
	return user.FacilityProfile, nil
}

func (r *fakeUserRepo) SearchDonors(criteria repositories.DonorFilter) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.User
	for _, user := range r.users {
		if user.Role != models.UserRoleDonor || !user.IsProfileComplete || user.IsAccountSuspended {
			continue
		}
		p := user.DonorProfile
		if p == nil {
			continue
		}
		if criteria.Gender != "" && p.Gender != criteria.Gender {
			continue
		}
		if criteria.BloodGroup != "" && p.BloodGroup != criteria.BloodGroup {
			continue
		}
		if criteria.City != "" && !strings.EqualFold(p.City, criteria.City) {
			continue
		}
		if criteria.State != "" && !strings.EqualFold(p.State, criteria.State) {
			continue
		}
		matched = append(matched, *user)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (criteria.Page - 1) * criteria.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + criteria.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeUserRepo) FindUnverifiedFacilities(limit, offset int) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.User
	for _, user := range r.users {
		if user.Role == models.UserRoleFacility && !user.IsProfileVerified {
			matched = append(matched, *user)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeUserRepo) Transaction(fn func(tx repositories.UserRepository) error) error {
	return fn(r)
}

// fakeRequestRepo is an in-memory repositories.RequestRepository preserving
// the compare-and-set semantics of MarkResponded.
type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.DonationRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*models.DonationRequest)}
}

func (r *fakeRequestRepo) Create(request *models.DonationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	if request.Status == "" {
		request.Status = models.RequestStatusPending
	}
	r.requests[request.ID] = request
	return nil
}

func (r *fakeRequestRepo) FindByID(id string) (*models.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) ListForDonor(donorID string) ([]models.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DonationRequest
	for _, request := range r.requests {
		if request.SentTo == donorID {
			out = append(out, *request)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRequestRepo) ListForFacility(criteria repositories.RequestFilter) ([]models.DonationRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DonationRequest
	for _, request := range r.requests {
		if request.SentBy != criteria.FacilityID {
			continue
		}
		if criteria.Status != "" && request.Status != criteria.Status {
			continue
		}
		out = append(out, *request)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	total := int64(len(out))
	start := (criteria.Page - 1) * criteria.PageSize
	if start < 0 {
		start = 0
	}
	if start > len(out) {
		start = len(out)
	}
	end := start + criteria.PageSize
	if end > len(out) || criteria.PageSize <= 0 {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *fakeRequestRepo) MarkResponded(id string, status models.RequestStatus, rejectionReason *string) (*models.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrRequestNotFound
	}
	if request.Status != models.RequestStatusPending {
		return nil, repositories.ErrRequestClosed
	}
	now := time.Now()
	request.Status = status
	request.RespondedAt = &now
	if rejectionReason != nil {
		request.RejectionReason = rejectionReason
	}
	copied := *request
	return &copied, nil
}

// fakeNotifications records dispatched notifications instead of sending.
type fakeNotifications struct {
	mu                 sync.Mutex
	verificationEmails []string
	requestCreated     []string
	accepted           []string
	declined           []string
	profileVerified    []string
	profileDeclined    []string
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{}
}

func (f *fakeNotifications) SendVerificationEmail(toEmail, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verificationEmails = append(f.verificationEmails, toEmail)
}

func (f *fakeNotifications) NotifyRequestCreated(donor *models.User, organizationName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requestCreated = append(f.requestCreated, donor.Email)
}

func (f *fakeNotifications) NotifyRequestAccepted(facility, donor *models.User, request *models.DonationRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accepted = append(f.accepted, facility.Email, donor.Email)
}

func (f *fakeNotifications) NotifyRequestDeclined(facility, donor *models.User, rejectionReason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declined = append(f.declined, facility.Email)
}

func (f *fakeNotifications) NotifyProfileVerified(facility *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileVerified = append(f.profileVerified, facility.Email)
}

func (f *fakeNotifications) NotifyProfileDeclined(facility *models.User, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileDeclined = append(f.profileDeclined, facility.Email)
}

func (f *fakeNotifications) Wait() {}

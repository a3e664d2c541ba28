package dto

import "bloodlink_backend/internal/models"

// SearchDonorsQuery filters the donor directory. All fields optional.
type SearchDonorsQuery struct {
	Gender     string `form:"gender" json:"gender"`
	BloodGroup string `form:"bloodGroup" json:"bloodGroup" validate:"omitempty,is-blood-group"`
	City       string `form:"city" json:"city"`
	State      string `form:"state" json:"state"`
	Page       int    `form:"page" json:"page"`
	Limit      int    `form:"limit" json:"limit"`
}

// DonorDTO is the directory projection of a donor: profile details only,
// no account flags and no facility fields.
type DonorDTO struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Gender        string `json:"gender"`
	BloodGroup    string `json:"bloodGroup"`
	City          string `json:"city"`
	State         string `json:"state"`
	Occupation    string `json:"occupation"`
	Bio           string `json:"bio"`
	PhoneNumber   string `json:"phoneNumber"`
	Email         string `json:"email"`
	DateOfBirth   string `json:"dateOfBirth"`
	MaritalStatus string `json:"maritalStatus"`
}

type DonorListResponse struct {
	Donors   []DonorDTO `json:"donors"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

func NewDonorDTO(user *models.User) DonorDTO {
	dto := DonorDTO{
		ID:          user.ID,
		PhoneNumber: user.PhoneNumber,
		Email:       user.Email,
	}
	if p := user.DonorProfile; p != nil {
		dto.FirstName = p.FirstName
		dto.LastName = p.LastName
		dto.Gender = p.Gender
		dto.BloodGroup = p.BloodGroup
		dto.City = p.City
		dto.State = p.State
		dto.Occupation = p.Occupation
		dto.Bio = p.Bio
		dto.DateOfBirth = p.DateOfBirth
		dto.MaritalStatus = p.MaritalStatus
	}
	return dto
}

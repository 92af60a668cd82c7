package model

import "errors"

// DefaultSex is stored when a patient is created without a sex.
const DefaultSex = "female"

// Patient is a row of the patients table.
// @Description Patient demographic record
type Patient struct {
	ID             uint    `json:"id" gorm:"primaryKey" example:"1"`
	Name           string  `json:"name" gorm:"column:name;size:255;index" example:"Maria Lopez"`
	BirthDate      Date    `json:"birth_date" gorm:"column:birth_date" swaggertype:"string" example:"1990-04-12"`
	Age            int     `json:"age" gorm:"column:age" example:"34"`
	Sex            string  `json:"sex" gorm:"column:sex;size:50;default:'female'" example:"female"`
	Phone          *string `json:"phone" gorm:"column:phone;size:20" example:"5551234567"`
	Email          *string `json:"email" gorm:"column:email;size:255" example:"maria@example.com"`
	Referrer       *string `json:"referrer" gorm:"column:referrer;size:255" example:"Dr. Ruiz"`
	AdditionalData *string `json:"additional_data" gorm:"column:additional_data;type:text"`
}

func (Patient) TableName() string {
	return "patients"
}

// PatientWithExams is a patient together with all of its exams.
type PatientWithExams struct {
	Patient
	Exams []ColposcopyExam `json:"exams"`
}

// PatientCreate is the payload for registering a patient.
// @Description Patient creation request
type PatientCreate struct {
	Name           string  `json:"name" binding:"required" example:"Maria Lopez"`
	BirthDate      *Date   `json:"birth_date" binding:"required" swaggertype:"string" example:"1990-04-12"`
	Age            *int    `json:"age" binding:"required,gte=0" example:"34"`
	Sex            string  `json:"sex,omitempty" example:"female"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,max=20" example:"5551234567"`
	Email          *string `json:"email,omitempty" example:"maria@example.com"`
	Referrer       *string `json:"referrer,omitempty" example:"Dr. Ruiz"`
	AdditionalData *string `json:"additional_data,omitempty"`
}

// ToPatient builds the row to insert, applying column defaults.
func (in PatientCreate) ToPatient() Patient {
	p := Patient{
		Name:           in.Name,
		Sex:            in.Sex,
		Phone:          in.Phone,
		Email:          in.Email,
		Referrer:       in.Referrer,
		AdditionalData: in.AdditionalData,
	}
	if in.BirthDate != nil {
		p.BirthDate = *in.BirthDate
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if p.Sex == "" {
		p.Sex = DefaultSex
	}
	return p
}

// Validate rejects an empty birth_date, which decodes to a zero Date.
func (in PatientCreate) Validate() error {
	if in.BirthDate == nil || in.BirthDate.IsZero() {
		return errors.New("birth_date is required")
	}
	return nil
}

// PatientUpdate is a partial update: nil fields are left untouched.
// @Description Patient partial update request
type PatientUpdate struct {
	Name           *string `json:"name,omitempty" example:"Maria Lopez"`
	BirthDate      *Date   `json:"birth_date,omitempty" swaggertype:"string" example:"1990-04-12"`
	Age            *int    `json:"age,omitempty" binding:"omitempty,gte=0" example:"35"`
	Sex            *string `json:"sex,omitempty" example:"female"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,max=20" example:"5551234567"`
	Email          *string `json:"email,omitempty" example:"maria@example.com"`
	Referrer       *string `json:"referrer,omitempty" example:"Dr. Ruiz"`
	AdditionalData *string `json:"additional_data,omitempty"`
}

func (u PatientUpdate) Validate() error {
	if u.BirthDate != nil && u.BirthDate.IsZero() {
		return errors.New("birth_date cannot be empty")
	}
	return nil
}

// Apply merges the supplied fields into p.
func (u PatientUpdate) Apply(p *Patient) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.BirthDate != nil {
		p.BirthDate = *u.BirthDate
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Sex != nil {
		p.Sex = *u.Sex
	}
	if u.Phone != nil {
		p.Phone = u.Phone
	}
	if u.Email != nil {
		p.Email = u.Email
	}
	if u.Referrer != nil {
		p.Referrer = u.Referrer
	}
	if u.AdditionalData != nil {
		p.AdditionalData = u.AdditionalData
	}
}

package model

import "errors"

// DefaultAppointmentStatus is stored when an appointment is created without a status.
// Status is otherwise a free-form string with no enforced transitions.
const DefaultAppointmentStatus = "pending"

// Appointment is a row of the appointments table.
// @Description Scheduled appointment
type Appointment struct {
	ID        uint     `json:"id" gorm:"primaryKey" example:"1"`
	PatientID uint     `json:"patient_id" gorm:"column:patient_id;not null;index" example:"1"`
	DateTime  DateTime `json:"date_time" gorm:"column:date_time;not null;index" swaggertype:"string" example:"2024-03-01T09:30:00"`
	Reason    *string  `json:"reason" gorm:"column:reason;size:255" example:"Follow-up"`
	Status    string   `json:"status" gorm:"column:status;size:50;default:'pending'" example:"pending"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentWithPatient is an appointment together with its owning patient.
type AppointmentWithPatient struct {
	Appointment
	Patient *Patient `json:"patient"`
}

// AppointmentCreate is the payload for scheduling an appointment.
// @Description Appointment creation request
type AppointmentCreate struct {
	PatientID uint      `json:"patient_id" binding:"required" example:"1"`
	DateTime  *DateTime `json:"date_time" binding:"required" swaggertype:"string" example:"2024-03-01T09:30"`
	Reason    *string   `json:"reason,omitempty" binding:"omitempty,max=255" example:"Follow-up"`
	Status    string    `json:"status,omitempty" binding:"omitempty,max=50" example:"pending"`
}

func (in AppointmentCreate) Validate() error {
	if in.DateTime == nil || in.DateTime.IsZero() {
		return errors.New("date_time is required")
	}
	return nil
}

// ToAppointment builds the row to insert, applying column defaults.
func (in AppointmentCreate) ToAppointment() Appointment {
	a := Appointment{
		PatientID: in.PatientID,
		Reason:    in.Reason,
		Status:    in.Status,
	}
	if in.DateTime != nil {
		a.DateTime = *in.DateTime
	}
	if a.Status == "" {
		a.Status = DefaultAppointmentStatus
	}
	return a
}

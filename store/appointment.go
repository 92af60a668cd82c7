package store

import (
	"context"
	"fmt"

	"github.com/ariebrainware/colposcopy-api/model"
	"gorm.io/gorm"
)

// CreateAppointment inserts an appointment; status defaults to pending.
func CreateAppointment(ctx context.Context, db *gorm.DB, in model.AppointmentCreate) (model.Appointment, error) {
	appointment := in.ToAppointment()
	if err := db.WithContext(ctx).Create(&appointment).Error; err != nil {
		return model.Appointment{}, fmt.Errorf("create appointment for patient %d: %w", in.PatientID, err)
	}
	return appointment, nil
}

// ListAppointments returns a page of appointments ordered by date_time
// ascending, each with its patient loaded by one extra query.
func ListAppointments(ctx context.Context, db *gorm.DB, offset, limit int) ([]model.AppointmentWithPatient, error) {
	offset, limit = paginate(offset, limit)

	var appointments []model.Appointment
	if err := db.WithContext(ctx).Order("date_time ASC").Order("id ASC").
		Offset(offset).Limit(limit).Find(&appointments).Error; err != nil {
		return nil, err
	}

	result := make([]model.AppointmentWithPatient, 0, len(appointments))
	if len(appointments) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(appointments))
	seen := make(map[uint]struct{}, len(appointments))
	for _, a := range appointments {
		if _, ok := seen[a.PatientID]; ok {
			continue
		}
		seen[a.PatientID] = struct{}{}
		ids = append(ids, a.PatientID)
	}

	var patients []model.Patient
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("load appointment patients: %w", err)
	}
	byID := make(map[uint]*model.Patient, len(patients))
	for i := range patients {
		byID[patients[i].ID] = &patients[i]
	}

	for _, a := range appointments {
		result = append(result, model.AppointmentWithPatient{Appointment: a, Patient: byID[a.PatientID]})
	}
	return result, nil
}

// DeleteAppointment removes a single appointment.
func DeleteAppointment(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&model.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

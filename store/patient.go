package store

import (
	"context"
	"fmt"

	"github.com/ariebrainware/colposcopy-api/model"
	"gorm.io/gorm"
)

// GetPatient returns the patient with all of its exams.
func GetPatient(ctx context.Context, db *gorm.DB, id uint) (model.PatientWithExams, error) {
	var patient model.Patient
	if err := db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return model.PatientWithExams{}, translate(err)
	}

	exams := []model.ColposcopyExam{}
	if err := db.WithContext(ctx).Where("patient_id = ?", id).Order("id").Find(&exams).Error; err != nil {
		return model.PatientWithExams{}, fmt.Errorf("load exams for patient %d: %w", id, err)
	}

	return model.PatientWithExams{Patient: patient, Exams: exams}, nil
}

// ListPatients returns a page of patients in insertion order, without exams.
func ListPatients(ctx context.Context, db *gorm.DB, offset, limit int) ([]model.Patient, error) {
	offset, limit = paginate(offset, limit)
	patients := []model.Patient{}
	if err := db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// CreatePatient inserts a new patient and returns it with its generated id.
func CreatePatient(ctx context.Context, db *gorm.DB, in model.PatientCreate) (model.Patient, error) {
	patient := in.ToPatient()
	if err := db.WithContext(ctx).Create(&patient).Error; err != nil {
		return model.Patient{}, err
	}
	return patient, nil
}

// UpdatePatient overwrites only the fields supplied in in.
func UpdatePatient(ctx context.Context, db *gorm.DB, id uint, in model.PatientUpdate) (model.Patient, error) {
	var patient model.Patient
	if err := db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return model.Patient{}, translate(err)
	}

	in.Apply(&patient)
	if err := db.WithContext(ctx).Save(&patient).Error; err != nil {
		return model.Patient{}, err
	}
	return patient, nil
}

// DeletePatient removes the patient; its exams and appointments go with it
// through ON DELETE CASCADE.
func DeletePatient(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&model.Patient{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

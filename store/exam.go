package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariebrainware/colposcopy-api/model"
	"gorm.io/gorm"
)

// CreateExam inserts an exam. A patient_id with no matching patient is
// rejected by the foreign key, not checked here.
func CreateExam(ctx context.Context, db *gorm.DB, in model.ExamCreate) (model.ColposcopyExam, error) {
	exam := in.ToExam()
	if err := db.WithContext(ctx).Create(&exam).Error; err != nil {
		return model.ColposcopyExam{}, fmt.Errorf("create exam for patient %d: %w", in.PatientID, err)
	}
	return exam, nil
}

// GetExam returns the exam and its owning patient.
func GetExam(ctx context.Context, db *gorm.DB, id uint) (model.ExamWithPatient, error) {
	var exam model.ColposcopyExam
	if err := db.WithContext(ctx).First(&exam, id).Error; err != nil {
		return model.ExamWithPatient{}, translate(err)
	}

	var patient model.Patient
	if err := db.WithContext(ctx).First(&patient, exam.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ExamWithPatient{ColposcopyExam: exam}, nil
		}
		return model.ExamWithPatient{}, fmt.Errorf("load patient %d for exam %d: %w", exam.PatientID, id, err)
	}
	return model.ExamWithPatient{ColposcopyExam: exam, Patient: &patient}, nil
}

// UpdateExam overwrites only the fields supplied in in.
func UpdateExam(ctx context.Context, db *gorm.DB, id uint, in model.ExamUpdate) (model.ColposcopyExam, error) {
	var exam model.ColposcopyExam
	if err := db.WithContext(ctx).First(&exam, id).Error; err != nil {
		return model.ColposcopyExam{}, translate(err)
	}

	in.Apply(&exam)
	if err := db.WithContext(ctx).Save(&exam).Error; err != nil {
		return model.ColposcopyExam{}, err
	}
	return exam, nil
}

// DeleteExam removes a single exam.
func DeleteExam(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&model.ColposcopyExam{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

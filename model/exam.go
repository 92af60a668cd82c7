package model

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
)

// DefaultReferredBy is stored when an exam is created without a referring source.
const DefaultReferredBy = "GENERIC"

// PregnancyRecord is one entry of a patient's obstetric history as captured in an exam.
type PregnancyRecord struct {
	Year             int    `json:"year,omitempty" example:"2015"`
	Outcome          string `json:"outcome,omitempty" example:"live birth"`
	GestationalWeeks int    `json:"gestational_weeks,omitempty" example:"39"`
	DeliveryType     string `json:"delivery_type,omitempty" example:"vaginal"`
	Notes            string `json:"notes,omitempty"`
}

// ExamFields holds every clinical field shared by the exam row and its payloads.
type ExamFields struct {
	VulvaVaginaDesc *string `json:"vulva_vagina_desc" gorm:"column:vulva_vagina_desc;type:text"`
	Observations    *string `json:"observations" gorm:"column:observations;type:text"`
	Diagnosis       *string `json:"diagnosis" gorm:"column:diagnosis;type:text"`
	Others          *string `json:"others" gorm:"column:others;type:text"`
	ReferredBy      *string `json:"referred_by" gorm:"column:referred_by;size:255" example:"GENERIC"`
	Plan            *string `json:"plan" gorm:"column:plan;type:text"`

	ColposcopyQuality    *string `json:"colposcopy_quality" gorm:"column:colposcopy_quality;size:50" example:"adequate"`
	CervixStatus         *string `json:"cervix_status" gorm:"column:cervix_status;size:50" example:"normal"`
	ZoneTransform        *string `json:"zone_transform" gorm:"column:zone_transform;size:50" example:"normal"`
	Borders              *string `json:"borders" gorm:"column:borders;size:50" example:"defined"`
	Surface              *string `json:"surface" gorm:"column:surface;size:50" example:"smooth"`
	SchillerTest         *string `json:"schiller_test" gorm:"column:schiller_test;size:50" example:"negative"`
	AcetowhiteEpithelium *string `json:"acetowhite_epithelium" gorm:"column:acetowhite_epithelium;size:50" example:"absent"`

	MenarcheAge         *int    `json:"menarche_age" gorm:"column:menarche_age" example:"12"`
	MenstrualRhythm     *string `json:"menstrual_rhythm" gorm:"column:menstrual_rhythm;size:50" example:"28x5"`
	ContraceptiveMethod *string `json:"contraceptive_method" gorm:"column:contraceptive_method;size:100"`
	IVSAAge             *int    `json:"ivsa_age" gorm:"column:ivsa_age" example:"18"`
	Gestas              *int    `json:"gestas" gorm:"column:gestas"`
	Partos              *int    `json:"partos" gorm:"column:partos"`
	Abortos             *int    `json:"abortos" gorm:"column:abortos"`
	Cesareas            *int    `json:"cesareas" gorm:"column:cesareas"`
	FUM                 *Date   `json:"fum" gorm:"column:fum" swaggertype:"string" example:"2024-01-01"`
	LastPapSmear        *string `json:"last_pap_smear" gorm:"column:last_pap_smear;size:100"`

	ImagePaths       datatypes.JSONSlice[string]          `json:"image_paths" gorm:"column:image_paths" swaggertype:"array,string"`
	PregnancyRecords datatypes.JSONSlice[PregnancyRecord] `json:"pregnancy_records" gorm:"column:pregnancy_records"`
}

// ColposcopyExam is a row of the colposcopy_exams table.
// @Description Colposcopy exam snapshot
type ColposcopyExam struct {
	ID        uint `json:"id" gorm:"primaryKey" example:"1"`
	PatientID uint `json:"patient_id" gorm:"column:patient_id;not null;index" example:"1"`
	StudyDate Date `json:"study_date" gorm:"column:study_date" swaggertype:"string" example:"2024-01-01"`
	ExamFields
}

func (ColposcopyExam) TableName() string {
	return "colposcopy_exams"
}

// ExamWithPatient is an exam together with its owning patient (without the patient's other exams).
type ExamWithPatient struct {
	ColposcopyExam
	Patient *Patient `json:"patient"`
}

// ExamCreate is the payload for recording a new exam.
// @Description Colposcopy exam creation request
type ExamCreate struct {
	PatientID uint  `json:"patient_id" binding:"required" example:"1"`
	StudyDate *Date `json:"study_date" binding:"required" swaggertype:"string" example:"2024-01-01"`
	ExamFields

	// referredBySent records that the payload carried referred_by, even as null.
	referredBySent bool
}

func (in *ExamCreate) UnmarshalJSON(b []byte) error {
	type plain ExamCreate
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	_, p.referredBySent = keys["referred_by"]
	*in = ExamCreate(p)
	return nil
}

func (in ExamCreate) Validate() error {
	if in.StudyDate == nil || in.StudyDate.IsZero() {
		return errors.New("study_date is required")
	}
	return nil
}

// ToExam builds the row to insert, applying column defaults.
func (in ExamCreate) ToExam() ColposcopyExam {
	e := ColposcopyExam{
		PatientID:  in.PatientID,
		ExamFields: in.ExamFields,
	}
	if in.StudyDate != nil {
		e.StudyDate = *in.StudyDate
	}
	if e.ReferredBy == nil && !in.referredBySent {
		referredBy := DefaultReferredBy
		e.ReferredBy = &referredBy
	}
	return e
}

// ExamUpdate is a partial update: nil fields are left untouched.
// The owning patient cannot be changed.
// @Description Colposcopy exam partial update request
type ExamUpdate struct {
	StudyDate *Date `json:"study_date,omitempty" swaggertype:"string" example:"2024-01-01"`

	VulvaVaginaDesc *string `json:"vulva_vagina_desc,omitempty"`
	Observations    *string `json:"observations,omitempty"`
	Diagnosis       *string `json:"diagnosis,omitempty"`
	Others          *string `json:"others,omitempty"`
	ReferredBy      *string `json:"referred_by,omitempty"`
	Plan            *string `json:"plan,omitempty"`

	ColposcopyQuality    *string `json:"colposcopy_quality,omitempty"`
	CervixStatus         *string `json:"cervix_status,omitempty"`
	ZoneTransform        *string `json:"zone_transform,omitempty"`
	Borders              *string `json:"borders,omitempty"`
	Surface              *string `json:"surface,omitempty"`
	SchillerTest         *string `json:"schiller_test,omitempty"`
	AcetowhiteEpithelium *string `json:"acetowhite_epithelium,omitempty"`

	MenarcheAge         *int    `json:"menarche_age,omitempty"`
	MenstrualRhythm     *string `json:"menstrual_rhythm,omitempty"`
	ContraceptiveMethod *string `json:"contraceptive_method,omitempty"`
	IVSAAge             *int    `json:"ivsa_age,omitempty"`
	Gestas              *int    `json:"gestas,omitempty"`
	Partos              *int    `json:"partos,omitempty"`
	Abortos             *int    `json:"abortos,omitempty"`
	Cesareas            *int    `json:"cesareas,omitempty"`
	FUM                 *Date   `json:"fum,omitempty" swaggertype:"string"`
	LastPapSmear        *string `json:"last_pap_smear,omitempty"`

	ImagePaths       *[]string          `json:"image_paths,omitempty"`
	PregnancyRecords *[]PregnancyRecord `json:"pregnancy_records,omitempty"`
}

func (u ExamUpdate) Validate() error {
	if u.StudyDate != nil && u.StudyDate.IsZero() {
		return errors.New("study_date cannot be empty")
	}
	return nil
}

// Apply merges the supplied fields into e.
func (u ExamUpdate) Apply(e *ColposcopyExam) {
	if u.StudyDate != nil {
		e.StudyDate = *u.StudyDate
	}

	mergeString(&e.VulvaVaginaDesc, u.VulvaVaginaDesc)
	mergeString(&e.Observations, u.Observations)
	mergeString(&e.Diagnosis, u.Diagnosis)
	mergeString(&e.Others, u.Others)
	mergeString(&e.ReferredBy, u.ReferredBy)
	mergeString(&e.Plan, u.Plan)

	mergeString(&e.ColposcopyQuality, u.ColposcopyQuality)
	mergeString(&e.CervixStatus, u.CervixStatus)
	mergeString(&e.ZoneTransform, u.ZoneTransform)
	mergeString(&e.Borders, u.Borders)
	mergeString(&e.Surface, u.Surface)
	mergeString(&e.SchillerTest, u.SchillerTest)
	mergeString(&e.AcetowhiteEpithelium, u.AcetowhiteEpithelium)

	mergeInt(&e.MenarcheAge, u.MenarcheAge)
	mergeString(&e.MenstrualRhythm, u.MenstrualRhythm)
	mergeString(&e.ContraceptiveMethod, u.ContraceptiveMethod)
	mergeInt(&e.IVSAAge, u.IVSAAge)
	mergeInt(&e.Gestas, u.Gestas)
	mergeInt(&e.Partos, u.Partos)
	mergeInt(&e.Abortos, u.Abortos)
	mergeInt(&e.Cesareas, u.Cesareas)
	if u.FUM != nil {
		fum := *u.FUM
		e.FUM = &fum
	}
	mergeString(&e.LastPapSmear, u.LastPapSmear)

	if u.ImagePaths != nil {
		e.ImagePaths = datatypes.JSONSlice[string](append([]string{}, (*u.ImagePaths)...))
	}
	if u.PregnancyRecords != nil {
		e.PregnancyRecords = datatypes.JSONSlice[PregnancyRecord](append([]PregnancyRecord{}, (*u.PregnancyRecords)...))
	}
}

func mergeString(dst **string, src *string) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}

func mergeInt(dst **int, src *int) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}

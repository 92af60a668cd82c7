package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamCreate_ToExam(t *testing.T) {
	study := NewDate(2024, 1, 1)
	in := ExamCreate{PatientID: 3, StudyDate: &study}
	in.Diagnosis = strPtr("LSIL")

	e := in.ToExam()
	assert.Equal(t, uint(3), e.PatientID)
	assert.Equal(t, study, e.StudyDate)
	assert.Equal(t, "LSIL", *e.Diagnosis)
	require.NotNil(t, e.ReferredBy)
	assert.Equal(t, DefaultReferredBy, *e.ReferredBy)

	in.ReferredBy = strPtr("Dr. B")
	assert.Equal(t, "Dr. B", *in.ToExam().ReferredBy)
}

func TestExamCreate_ReferredByAbsentOrNull(t *testing.T) {
	var absent ExamCreate
	require.NoError(t, json.Unmarshal([]byte(`{"patient_id": 1, "study_date": "2024-01-01"}`), &absent))
	require.NotNil(t, absent.ToExam().ReferredBy)
	assert.Equal(t, DefaultReferredBy, *absent.ToExam().ReferredBy)

	var null ExamCreate
	require.NoError(t, json.Unmarshal([]byte(`{"patient_id": 1, "study_date": "2024-01-01", "referred_by": null}`), &null))
	assert.Nil(t, null.ToExam().ReferredBy)
	assert.Equal(t, uint(1), null.PatientID)
	assert.Equal(t, "2024-01-01", null.StudyDate.String())
}

func TestExamContracts_Validate(t *testing.T) {
	study := NewDate(2024, 1, 1)
	assert.NoError(t, ExamCreate{PatientID: 1, StudyDate: &study}.Validate())
	assert.Error(t, ExamCreate{PatientID: 1}.Validate())
	assert.Error(t, ExamCreate{PatientID: 1, StudyDate: &Date{}}.Validate())

	assert.NoError(t, ExamUpdate{}.Validate())
	assert.NoError(t, ExamUpdate{StudyDate: &study}.Validate())
	assert.Error(t, ExamUpdate{StudyDate: &Date{}}.Validate())
}

func TestExamCreate_JSONFlattensFields(t *testing.T) {
	var in ExamCreate
	require.NoError(t, json.Unmarshal([]byte(`{
		"patient_id": 1,
		"study_date": "2024-01-01",
		"schiller_test": "negative",
		"gestas": 3,
		"image_paths": ["/static/a.png"],
		"pregnancy_records": [{"year": 2019, "outcome": "cesarean"}]
	}`), &in))

	assert.Equal(t, uint(1), in.PatientID)
	assert.Equal(t, "negative", *in.SchillerTest)
	assert.Equal(t, 3, *in.Gestas)
	assert.Equal(t, []string{"/static/a.png"}, []string(in.ImagePaths))
	require.Len(t, in.PregnancyRecords, 1)
	assert.Equal(t, 2019, in.PregnancyRecords[0].Year)
}

func TestExamUpdate_Apply(t *testing.T) {
	fum := NewDate(2023, 12, 1)
	original := ColposcopyExam{
		ID:        1,
		PatientID: 2,
		StudyDate: NewDate(2024, 1, 1),
		ExamFields: ExamFields{
			Diagnosis:  strPtr("normal"),
			Plan:       strPtr("follow-up"),
			Gestas:     intPtr(1),
			FUM:        &fum,
			ImagePaths: []string{"/static/a.png"},
		},
	}

	e := original
	ExamUpdate{}.Apply(&e)
	assert.Equal(t, original, e)

	paths := []string{"/static/b.png"}
	records := []PregnancyRecord{{Year: 2020, Outcome: "live birth"}}
	newStudy := NewDate(2024, 6, 1)
	ExamUpdate{
		StudyDate:        &newStudy,
		Diagnosis:        strPtr("CIN1"),
		Gestas:           intPtr(2),
		ImagePaths:       &paths,
		PregnancyRecords: &records,
	}.Apply(&e)

	assert.Equal(t, newStudy, e.StudyDate)
	assert.Equal(t, "CIN1", *e.Diagnosis)
	assert.Equal(t, "follow-up", *e.Plan)
	assert.Equal(t, 2, *e.Gestas)
	assert.Equal(t, fum, *e.FUM)
	assert.Equal(t, []string{"/static/b.png"}, []string(e.ImagePaths))
	assert.Equal(t, records, []PregnancyRecord(e.PregnancyRecords))

	// The merged values must not alias the update payload.
	paths[0] = "/static/changed.png"
	assert.Equal(t, "/static/b.png", e.ImagePaths[0])
	assert.Equal(t, "normal", *original.Diagnosis)
}

func TestExamUpdate_ClearsListsWithEmptyArray(t *testing.T) {
	e := ColposcopyExam{ExamFields: ExamFields{ImagePaths: []string{"/static/a.png"}}}
	empty := []string{}
	ExamUpdate{ImagePaths: &empty}.Apply(&e)
	assert.Empty(t, e.ImagePaths)
}

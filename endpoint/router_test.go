package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ariebrainware/colposcopy-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcome(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, resp := mustRequest(t, r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to Colposcopy API", resp["msg"])
}

func TestPatientExamLifecycle(t *testing.T) {
	r, _ := setupEndpointTest(t)

	patientID := createTestPatient(t, r, map[string]interface{}{"name": "A", "birth_date": "2000-01-01", "age": 25})
	require.Equal(t, uint(1), patientID)

	w, resp := mustRequest(t, r, http.MethodPost, "/exams", map[string]interface{}{"patient_id": 1, "study_date": "2024-01-01"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	exam := dataMap(t, resp)
	assert.Equal(t, float64(1), exam["id"])
	assert.Equal(t, float64(1), exam["patient_id"])

	w, resp = mustRequest(t, r, http.MethodGet, "/patients/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	exams := dataMap(t, resp)["exams"].([]interface{})
	require.Len(t, exams, 1)
	assert.Equal(t, float64(1), exams[0].(map[string]interface{})["id"])

	w, _ = mustRequest(t, r, http.MethodDelete, "/patients/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = mustRequest(t, r, http.MethodGet, "/exams/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePatient_CascadesToDependents(t *testing.T) {
	r, db := setupEndpointTest(t)

	keep := createTestPatient(t, r, map[string]interface{}{"name": "Keep", "birth_date": "1990-01-01", "age": 34})
	gone := createTestPatient(t, r, map[string]interface{}{"name": "Gone", "birth_date": "1991-01-01", "age": 33})

	var examIDs, appointmentIDs []uint
	for _, pid := range []uint{keep, gone} {
		examIDs = append(examIDs, createTestExam(t, r, map[string]interface{}{"patient_id": pid, "study_date": "2024-01-01"}))
		w, resp := mustRequest(t, r, http.MethodPost, "/appointments", map[string]interface{}{"patient_id": pid, "date_time": "2024-06-01T10:00"})
		require.Equal(t, http.StatusOK, w.Code)
		appointmentIDs = append(appointmentIDs, uint(dataMap(t, resp)["id"].(float64)))
	}

	w, _ := mustRequest(t, r, http.MethodDelete, fmt.Sprintf("/patients/%d", gone), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = mustRequest(t, r, http.MethodGet, fmt.Sprintf("/exams/%d", examIDs[1]), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = mustRequest(t, r, http.MethodDelete, fmt.Sprintf("/appointments/%d", appointmentIDs[1]), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = mustRequest(t, r, http.MethodGet, fmt.Sprintf("/exams/%d", examIDs[0]), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), countRows(t, db, &model.ColposcopyExam{}))
	assert.Equal(t, int64(1), countRows(t, db, &model.Appointment{}))
}

func TestCORSHeadersOnRouter(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, _, err := performRequest(r, requestSpec{
		method:      http.MethodGet,
		requestPath: "/patients",
		headers:     map[string]string{"Origin": "http://localhost:3000"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

package endpoint

import (
	"fmt"

	"github.com/ariebrainware/colposcopy-api/model"
	"github.com/ariebrainware/colposcopy-api/store"
	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/gin-gonic/gin"
)

// ListPatients godoc
// @Summary      List patients
// @Description  Get a page of patients in registration order, without exams
// @Tags         Patient
// @Produce      json
// @Param        offset query int false "Number of patients to skip" default(0)
// @Param        limit query int false "Maximum number of patients" default(100)
// @Success      200 {object} util.APIResponse{data=[]model.Patient} "Patients retrieved"
// @Failure      400 {object} util.APIResponse "Invalid pagination"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [get]
func ListPatients(c *gin.Context) {
	offset, limit, ok := getPagination(c)
	if !ok {
		return
	}
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	patients, err := store.ListPatients(c.Request.Context(), db, offset, limit)
	if err != nil {
		respondStoreError(c, err, "patients", "retrieve")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: patients,
	})
}

// CreatePatient godoc
// @Summary      Create a new patient
// @Description  Register a patient; sex defaults to "female"
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        request body model.PatientCreate true "Patient information"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [post]
func CreatePatient(c *gin.Context) {
	var req model.PatientCreate
	if !bindJSON(c, &req) {
		return
	}

	req.Name = util.NormalizeName(req.Name)
	if req.Name == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Patient payload is empty or missing required fields",
			Err: fmt.Errorf("name is required"),
		})
		return
	}

	db, ok := ensureDB(c)
	if !ok {
		return
	}

	patient, err := store.CreatePatient(c.Request.Context(), db, req)
	if err != nil {
		respondStoreError(c, err, "patient", "create")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient created",
		Data: patient,
	})
}

// GetPatientInfo godoc
// @Summary      Get patient information
// @Description  Get a patient together with all of the patient's exams
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.PatientWithExams} "Patient retrieved"
// @Failure      400 {object} util.APIResponse "Invalid ID"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id} [get]
func GetPatientInfo(c *gin.Context) {
	id, ok := getIDParam(c, "patient")
	if !ok {
		return
	}
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	patient, err := store.GetPatient(c.Request.Context(), db, id)
	if err != nil {
		respondStoreError(c, err, "Patient", "retrieve")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient retrieved",
		Data: patient,
	})
}

// UpdatePatient godoc
// @Summary      Update patient information
// @Description  Partially update a patient; omitted fields are left unchanged
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Param        request body model.PatientUpdate true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id} [put]
// @Router       /patients/{id} [patch]
func UpdatePatient(c *gin.Context) {
	id, ok := getIDParam(c, "patient")
	if !ok {
		return
	}

	var req model.PatientUpdate
	if !bindJSON(c, &req) {
		return
	}
	if req.Name != nil {
		name := util.NormalizeName(*req.Name)
		if name == "" {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Invalid request body",
				Err: fmt.Errorf("name cannot be empty"),
			})
			return
		}
		req.Name = &name
	}

	db, ok := ensureDB(c)
	if !ok {
		return
	}

	patient, err := store.UpdatePatient(c.Request.Context(), db, id, req)
	if err != nil {
		respondStoreError(c, err, "Patient", "update")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient updated",
		Data: patient,
	})
}

// DeletePatient godoc
// @Summary      Delete a patient
// @Description  Delete a patient together with the patient's exams and appointments
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse "Patient deleted"
// @Failure      400 {object} util.APIResponse "Invalid ID"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id} [delete]
func DeletePatient(c *gin.Context) {
	id, ok := getIDParam(c, "patient")
	if !ok {
		return
	}
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	if err := store.DeletePatient(c.Request.Context(), db, id); err != nil {
		respondStoreError(c, err, "Patient", "delete")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Patient deleted successfully",
	})
}

package endpoint

import (
	"github.com/ariebrainware/colposcopy-api/model"
	"github.com/ariebrainware/colposcopy-api/store"
	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/gin-gonic/gin"
)

// ListAppointments godoc
// @Summary      List appointments
// @Description  Get a page of appointments ordered by date and time, each with its patient
// @Tags         Appointment
// @Produce      json
// @Param        offset query int false "Number of appointments to skip" default(0)
// @Param        limit query int false "Maximum number of appointments" default(100)
// @Success      200 {object} util.APIResponse{data=[]model.AppointmentWithPatient} "Appointments retrieved"
// @Failure      400 {object} util.APIResponse "Invalid pagination"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments [get]
func ListAppointments(c *gin.Context) {
	offset, limit, ok := getPagination(c)
	if !ok {
		return
	}
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	appointments, err := store.ListAppointments(c.Request.Context(), db, offset, limit)
	if err != nil {
		respondStoreError(c, err, "appointments", "retrieve")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: appointments,
	})
}

// CreateAppointment godoc
// @Summary      Schedule an appointment
// @Description  Create an appointment for an existing patient; status defaults to "pending"
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        request body model.AppointmentCreate true "Appointment details"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      500 {object} util.APIResponse "Server error or unknown patient"
// @Router       /appointments [post]
func CreateAppointment(c *gin.Context) {
	var req model.AppointmentCreate
	if !bindJSON(c, &req) {
		return
	}
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	appointment, err := store.CreateAppointment(c.Request.Context(), db, req)
	if err != nil {
		respondStoreError(c, err, "appointment", "create")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment created",
		Data: appointment,
	})
}

// DeleteAppointment godoc
// @Summary      Cancel an appointment
// @Tags         Appointment
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse "Appointment deleted"
// @Failure      400 {object} util.APIResponse "Invalid ID"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments/{id} [delete]
func DeleteAppointment(c *gin.Context) {
	id, ok := getIDParam(c, "appointment")
	if !ok {
		return
	}
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	if err := store.DeleteAppointment(c.Request.Context(), db, id); err != nil {
		respondStoreError(c, err, "Appointment", "delete")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Appointment deleted successfully",
	})
}

package endpoint

import (
	"github.com/ariebrainware/colposcopy-api/model"
	"github.com/ariebrainware/colposcopy-api/store"
	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/gin-gonic/gin"
)

// CreateExam godoc
// @Summary      Record a colposcopy exam
// @Description  Create an exam for an existing patient; referred_by defaults to "GENERIC"
// @Tags         Exam
// @Accept       json
// @Produce      json
// @Param        request body model.ExamCreate true "Exam details"
// @Success      200 {object} util.APIResponse{data=model.ColposcopyExam} "Exam created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      500 {object} util.APIResponse "Server error or unknown patient"
// @Router       /exams [post]
func CreateExam(c *gin.Context) {
	var req model.ExamCreate
	if !bindJSON(c, &req) {
		return
	}
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	exam, err := store.CreateExam(c.Request.Context(), db, req)
	if err != nil {
		respondStoreError(c, err, "exam", "create")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Exam created",
		Data: exam,
	})
}

// GetExam godoc
// @Summary      Get a colposcopy exam
// @Description  Get an exam together with its patient
// @Tags         Exam
// @Produce      json
// @Param        id path int true "Exam ID"
// @Success      200 {object} util.APIResponse{data=model.ExamWithPatient} "Exam retrieved"
// @Failure      400 {object} util.APIResponse "Invalid ID"
// @Failure      404 {object} util.APIResponse "Exam not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /exams/{id} [get]
func GetExam(c *gin.Context) {
	id, ok := getIDParam(c, "exam")
	if !ok {
		return
	}
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	exam, err := store.GetExam(c.Request.Context(), db, id)
	if err != nil {
		respondStoreError(c, err, "Exam", "retrieve")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Exam retrieved",
		Data: exam,
	})
}

// UpdateExam godoc
// @Summary      Update a colposcopy exam
// @Description  Partially update an exam; omitted fields are left unchanged
// @Tags         Exam
// @Accept       json
// @Produce      json
// @Param        id path int true "Exam ID"
// @Param        request body model.ExamUpdate true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.ColposcopyExam} "Exam updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Exam not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /exams/{id} [put]
// @Router       /exams/{id} [patch]
func UpdateExam(c *gin.Context) {
	id, ok := getIDParam(c, "exam")
	if !ok {
		return
	}

	var req model.ExamUpdate
	if !bindJSON(c, &req) {
		return
	}

	db, ok := ensureDB(c)
	if !ok {
		return
	}

	exam, err := store.UpdateExam(c.Request.Context(), db, id, req)
	if err != nil {
		respondStoreError(c, err, "Exam", "update")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Exam updated",
		Data: exam,
	})
}

// DeleteExam godoc
// @Summary      Delete a colposcopy exam
// @Tags         Exam
// @Produce      json
// @Param        id path int true "Exam ID"
// @Success      200 {object} util.APIResponse "Exam deleted"
// @Failure      400 {object} util.APIResponse "Invalid ID"
// @Failure      404 {object} util.APIResponse "Exam not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /exams/{id} [delete]
func DeleteExam(c *gin.Context) {
	id, ok := getIDParam(c, "exam")
	if !ok {
		return
	}
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	if err := store.DeleteExam(c.Request.Context(), db, id); err != nil {
		respondStoreError(c, err, "Exam", "delete")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Exam deleted successfully",
	})
}

package endpoint

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ariebrainware/colposcopy-api/middleware"
	"github.com/ariebrainware/colposcopy-api/storage"
	"github.com/ariebrainware/colposcopy-api/store"
	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ensureDB fetches the DB from context or responds with a server error.
func ensureDB(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return nil, false
	}
	return db, true
}

// ensureStorage fetches the upload store from context or responds with a server error.
func ensureStorage(c *gin.Context) (storage.Store, bool) {
	s := middleware.GetStorage(c)
	if s == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Upload storage not available",
			Err: fmt.Errorf("storage is nil"),
		})
		return nil, false
	}
	return s, true
}

// getIDParam parses the :id path parameter as a positive integer.
func getIDParam(c *gin.Context, entity string) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Invalid %s ID", entity),
			Err: fmt.Errorf("%s ID must be a positive integer, got %q", entity, raw),
		})
		return 0, false
	}
	return uint(id), true
}

// getPagination reads offset (alias skip) and limit query parameters.
func getPagination(c *gin.Context) (offset, limit int, ok bool) {
	rawOffset := c.Query("offset")
	if rawOffset == "" {
		rawOffset = c.DefaultQuery("skip", "0")
	}
	offset, err := strconv.Atoi(rawOffset)
	if err != nil || offset < 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid offset",
			Err: fmt.Errorf("offset must be a non-negative integer"),
		})
		return 0, 0, false
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultLimit)))
	if err != nil || limit <= 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid limit",
			Err: fmt.Errorf("limit must be a positive integer"),
		})
		return 0, 0, false
	}
	return offset, limit, true
}

// payloadValidator is implemented by request contracts with checks the
// binding tags cannot express.
type payloadValidator interface {
	Validate() error
}

// bindJSON binds and validates the request body or responds with a user error.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		if v, ok := dst.(payloadValidator); ok {
			err = v.Validate()
		}
	}
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return false
	}
	return true
}

// respondStoreError maps data-access errors to HTTP responses.
func respondStoreError(c *gin.Context, err error, entity, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: fmt.Sprintf("%s not found", entity),
			Err: err,
		})
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		util.CallServerError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Failed to %s %s: referenced patient does not exist", action, entity),
			Err: err,
		})
	default:
		util.CallServerError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Failed to %s %s", action, entity),
			Err: err,
		})
	}
}

package util

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var errInternal = errors.New("internal server error")

type APIResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

func errorResponse(c *gin.Context, status int, params APIErrorParams) {
	errText := ""
	if params.Err != nil {
		errText = params.Err.Error()
	}
	c.JSON(status, APIResponse{
		Success: false,
		Error:   errText,
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	})
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	errorResponse(c, http.StatusNotFound, params)
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	errorResponse(c, http.StatusBadRequest, params)
}

// CallPayloadTooLarge is for return API response when an upload exceeds the size limit
func CallPayloadTooLarge(c *gin.Context, params APIErrorParams) {
	errorResponse(c, http.StatusRequestEntityTooLarge, params)
}

// CallTooManyRequests is for return API response when a client is rate limited
func CallTooManyRequests(c *gin.Context, params APIErrorParams) {
	errorResponse(c, http.StatusTooManyRequests, params)
}

// CallServerError is for return API response server error.
// The underlying error is logged, the client only sees a generic message.
func CallServerError(c *gin.Context, params APIErrorParams) {
	if params.Err != nil {
		LogEvent(Event{
			Type:    EventServerError,
			IP:      c.ClientIP(),
			Message: params.Msg,
			Details: map[string]interface{}{"error": params.Err.Error(), "path": c.Request.URL.Path},
		})
	}
	errorResponse(c, http.StatusInternalServerError, APIErrorParams{
		Msg: params.Msg,
		Err: errInternal,
	})
}

// CallSuccessOK is for return API response with status code 200, you need to specify msg, and data as function parameter
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Error:   "",
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// NormalizeName trims leading/trailing whitespace and collapses
// multiple internal spaces into single spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

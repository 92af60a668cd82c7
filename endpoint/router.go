package endpoint

import (
	"time"

	"github.com/ariebrainware/colposcopy-api/middleware"
	"github.com/ariebrainware/colposcopy-api/storage"
	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RouterOptions configures the HTTP surface.
type RouterOptions struct {
	AppName         string
	CORSOrigins     []string
	UploadMaxBytes  int64
	UploadRateLimit middleware.RateLimitConfig
}

// DefaultUploadRateLimit allows 30 uploads per client per minute.
var DefaultUploadRateLimit = middleware.RateLimitConfig{Limit: 30, Window: time.Minute}

// NewRouter builds the engine with the standard middleware chain and all routes.
func NewRouter(db *gorm.DB, s storage.Store, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EndpointCallLogger())
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.StorageMiddleware(s))

	RegisterRoutes(r, opts)
	return r
}

// RegisterRoutes mounts every handler on r.
func RegisterRoutes(r gin.IRouter, opts RouterOptions) {
	if opts.UploadRateLimit.Limit == 0 {
		opts.UploadRateLimit = DefaultUploadRateLimit
	}

	r.GET("/", Welcome(opts.AppName))

	patient := r.Group("/patients")
	{
		patient.GET("", ListPatients)
		patient.POST("", CreatePatient)
		patient.GET("/:id", GetPatientInfo)
		patient.PUT("/:id", UpdatePatient)
		patient.PATCH("/:id", UpdatePatient)
		patient.DELETE("/:id", DeletePatient)
	}

	exam := r.Group("/exams")
	{
		exam.POST("", CreateExam)
		exam.GET("/:id", GetExam)
		exam.PUT("/:id", UpdateExam)
		exam.PATCH("/:id", UpdateExam)
		exam.DELETE("/:id", DeleteExam)
	}

	appointment := r.Group("/appointments")
	{
		appointment.GET("", ListAppointments)
		appointment.POST("", CreateAppointment)
		appointment.DELETE("/:id", DeleteAppointment)
	}

	r.POST("/upload", middleware.RateLimiter(opts.UploadRateLimit), UploadFile(opts.UploadMaxBytes))
	r.GET("/static/:key", ServeUpload)
}

// Welcome godoc
// @Summary      Welcome message
// @Tags         Health
// @Produce      json
// @Success      200 {object} util.APIResponse "API is running"
// @Router       / [get]
func Welcome(appName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Welcome to " + appName,
			Data: nil,
		})
	}
}

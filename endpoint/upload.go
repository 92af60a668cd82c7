package endpoint

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ariebrainware/colposcopy-api/storage"
	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	staticPrefix = "/static/"
	// multipartOverhead leaves room for form boundaries and headers on top of the file itself.
	multipartOverhead = 1 << 20
)

// UploadFile godoc
// @Summary      Upload an exam image
// @Description  Store a file under a generated name and return the URL it is served from
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "File to upload"
// @Success      200 {object} util.APIResponse{data=map[string]string} "File uploaded"
// @Failure      400 {object} util.APIResponse "Missing file"
// @Failure      413 {object} util.APIResponse "File too large"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /upload [post]
func UploadFile(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

		fh, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				util.CallPayloadTooLarge(c, util.APIErrorParams{
					Msg: "File too large",
					Err: fmt.Errorf("upload exceeds %d bytes", maxBytes),
				})
				return
			}
			util.CallUserError(c, util.APIErrorParams{
				Msg: "File is required",
				Err: err,
			})
			return
		}
		if fh.Size > maxBytes {
			util.CallPayloadTooLarge(c, util.APIErrorParams{
				Msg: "File too large",
				Err: fmt.Errorf("upload exceeds %d bytes", maxBytes),
			})
			return
		}

		s, ok := ensureStorage(c)
		if !ok {
			return
		}

		ext := strings.ToLower(filepath.Ext(fh.Filename))
		key := uuid.NewString() + ext

		contentType := fh.Header.Get("Content-Type")
		if contentType == "" {
			contentType = contentTypeFor(key)
		}

		f, err := fh.Open()
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Failed to read upload",
				Err: err,
			})
			return
		}
		defer f.Close()

		if err := s.Put(c.Request.Context(), key, contentType, f, fh.Size); err != nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Failed to store upload",
				Err: err,
			})
			return
		}

		util.LogEvent(util.Event{
			Type:    util.EventUploadStored,
			IP:      c.ClientIP(),
			Message: fmt.Sprintf("stored upload %s", key),
			Details: map[string]interface{}{
				"original_name": fh.Filename,
				"size":          fh.Size,
				"content_type":  contentType,
			},
		})

		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "File uploaded",
			Data: map[string]string{"url": staticPrefix + key},
		})
	}
}

// ServeUpload godoc
// @Summary      Download an uploaded file
// @Tags         Upload
// @Produce      octet-stream
// @Param        key path string true "Object key"
// @Success      200 {file} file "File content"
// @Failure      400 {object} util.APIResponse "Invalid key"
// @Failure      404 {object} util.APIResponse "File not found"
// @Router       /static/{key} [get]
func ServeUpload(c *gin.Context) {
	key := c.Param("key")
	s, ok := ensureStorage(c)
	if !ok {
		return
	}

	rc, err := s.Get(c.Request.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidKey):
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid file name", Err: err})
		case errors.Is(err, storage.ErrNotFound):
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "File not found", Err: err})
		default:
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to read file", Err: err})
		}
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, contentTypeFor(key), rc, nil)
}

func contentTypeFor(key string) string {
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

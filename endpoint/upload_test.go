package endpoint

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, r *gin.Engine, field, filename string, content []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestUploadFile_RoundTrip(t *testing.T) {
	r, _ := setupEndpointTest(t)
	content := []byte("\x89PNG fake image bytes")

	w, resp := uploadRequest(t, r, "file", "Cervix Photo.PNG", content)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	url := dataMap(t, resp)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "/static/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)
	assert.NotContains(t, url, "Cervix")

	req := httptest.NewRequest(http.MethodGet, url, nil)
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, "image/png", got.Header().Get("Content-Type"))
	assert.Equal(t, content, got.Body.Bytes())
}

func TestUploadFile_UniqueKeys(t *testing.T) {
	r, _ := setupEndpointTest(t)

	_, first := uploadRequest(t, r, "file", "a.jpg", []byte("one"))
	_, second := uploadRequest(t, r, "file", "a.jpg", []byte("two"))
	assert.NotEqual(t, dataMap(t, first)["url"], dataMap(t, second)["url"])
}

func TestUploadFile_MissingFile(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, resp := uploadRequest(t, r, "attachment", "a.png", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File is required", resp["msg"])
}

func TestUploadFile_TooLarge(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, resp := uploadRequest(t, r, "file", "big.png", bytes.Repeat([]byte("x"), 4<<10))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "File too large", resp["msg"])
}

func TestServeUpload_Errors(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, resp := mustRequest(t, r, http.MethodGet, "/static/missing.png", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found", resp["msg"])

	w, _ = mustRequest(t, r, http.MethodGet, `/static/a%5Cb.png`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServeUpload_NoStorage(t *testing.T) {
	r := gin.New()
	w, resp, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodGet,
		registerPath: "/static/:key",
		requestPath:  "/static/a.png",
		handler:      ServeUpload,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Upload storage not available", resp["msg"])
}

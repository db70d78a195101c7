package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tree-identifier/encoder"
	"tree-identifier/identify"
	"tree-identifier/metrics"
)

// Handlers represents the HTTP handlers
type Handlers struct {
	service        *identify.Service
	model          string
	maxUploadBytes int64
}

// NewHandlers creates new HTTP handlers
func NewHandlers(service *identify.Service, model string, maxUploadBytes int64) *Handlers {
	return &Handlers{
		service:        service,
		model:          model,
		maxUploadBytes: maxUploadBytes,
	}
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tree-identifier",
	})
}

// Status reports the configured provider and model.
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "tree-identifier",
		"source":  h.service.SourceName(),
		"model":   h.model,
	})
}

// identifyJSONRequest is the JSON body alternative to a multipart upload.
// Image accepts a bare base64 string or a full data URL.
type identifyJSONRequest struct {
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mimeType"`
}

// Identify handles one identification attempt. The image arrives either as
// multipart form field "image" or as a JSON body with a base64 payload.
func (h *Handlers) Identify(c *gin.Context) {
	imageData, mimeType, ok := h.readImage(c)
	if !ok {
		return
	}

	metrics.UploadBytes.Observe(float64(len(imageData)))

	result, err := h.service.Identify(c.Request.Context(), imageData, mimeType)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// readImage extracts the image bytes and MIME type from the request.
// On failure it writes the error response and returns ok=false.
func (h *Handlers) readImage(c *gin.Context) ([]byte, string, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return h.readMultipart(c)
	}
	return h.readJSON(c)
}

func (h *Handlers) readMultipart(c *gin.Context) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return nil, "", false
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open image file"})
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image file"})
		return nil, "", false
	}

	payload, err := encoder.EncodeBytes(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, "", false
	}
	if !strings.HasPrefix(payload.MimeType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, expected PNG or JPEG"})
		return nil, "", false
	}

	return data, payload.MimeType, true
}

func (h *Handlers) readJSON(c *gin.Context) ([]byte, string, bool) {
	var req identifyJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image payload"})
		return nil, "", false
	}

	payload, err := encoder.ParseDataURL(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, "", false
	}
	if req.MimeType != "" {
		payload.MimeType = req.MimeType
	}

	data, err := payload.Bytes()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, "", false
	}
	if int64(len(data)) > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return nil, "", false
	}
	if !strings.HasPrefix(payload.MimeType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, expected PNG or JPEG"})
		return nil, "", false
	}

	return data, payload.MimeType, true
}

// statusForError maps failure kinds to HTTP status codes. Model-side
// failures (transport, parse, validation) surface as bad gateway since the
// upstream model broke its contract; input failures are the client's fault.
func statusForError(err error) int {
	var ie *identify.Error
	if !errors.As(err, &ie) {
		return http.StatusInternalServerError
	}
	switch ie.Kind {
	case identify.KindEncode:
		return http.StatusBadRequest
	case identify.KindTransport, identify.KindParse, identify.KindValidation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

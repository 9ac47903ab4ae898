package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gotrack/internal/auth"
	"gotrack/internal/errors"
	"gotrack/internal/model"
	"gotrack/internal/service"
)

// ScreenshotHandler handles screenshot endpoints.
type ScreenshotHandler struct {
	screenshotService service.ScreenshotService
}

// NewScreenshotHandler creates a new screenshot handler.
func NewScreenshotHandler(screenshotService service.ScreenshotService) *ScreenshotHandler {
	return &ScreenshotHandler{screenshotService: screenshotService}
}

// RecordRequest represents a record-only request for an already-hosted image.
type RecordRequest struct {
	ImageURL   string `json:"image_url" validate:"required,url"`
	CapturedAt string `json:"captured_at,omitempty"`
}

// UploadResponse represents a successful upload.
type UploadResponse struct {
	Status   string            `json:"status"`
	ImageURL string            `json:"image_url"`
	Record   *model.Screenshot `json:"record"`
}

// RecordResponse represents a successful record-only insert.
type RecordResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// Upload godoc
// @Summary Upload a screenshot and record its metadata
// @Tags screenshots
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "PNG or JPEG image"
// @Param captured_at formData string false "Capture time, RFC 3339"
// @Success 200 {object} UploadResponse
// @Failure 415 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /screenshots/upload [post]
func (h *ScreenshotHandler) Upload(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "image file is required",
			Code:  "INVALID_REQUEST",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "cannot read uploaded file",
			Code:  "INVALID_REQUEST",
		})
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "cannot read uploaded file",
			Code:  "INVALID_REQUEST",
		})
	}

	capturedAt, err := parseCapturedAt(c.FormValue("captured_at"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "captured_at must be an RFC 3339 timestamp",
			Code:  "INVALID_TIMESTAMP",
		})
	}

	imageURL, record, err := h.screenshotService.UploadAndRecord(
		c.Request().Context(),
		identity.ID,
		raw,
		fileHeader.Header.Get(echo.HeaderContentType),
		capturedAt,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, UploadResponse{
		Status:   "success",
		ImageURL: imageURL,
		Record:   record,
	})
}

// Record godoc
// @Summary Record metadata for an already-hosted screenshot URL
// @Tags screenshots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordRequest true "Screenshot metadata"
// @Success 200 {object} RecordResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /screenshots/record [post]
func (h *ScreenshotHandler) Record(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req RecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	capturedAt, err := parseCapturedAt(req.CapturedAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "captured_at must be an RFC 3339 timestamp",
			Code:  "INVALID_TIMESTAMP",
		})
	}

	record, err := h.screenshotService.RecordOnly(c.Request().Context(), identity.ID, req.ImageURL, capturedAt)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, RecordResponse{
		Status: "success",
		ID:     record.ID,
	})
}

// parseCapturedAt parses an optional RFC 3339 timestamp; empty means "now".
func parseCapturedAt(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ashmilgit15/scheduler-backend/internal/dto"
	"github.com/ashmilgit15/scheduler-backend/internal/ingest"
	"github.com/ashmilgit15/scheduler-backend/internal/models"
	"github.com/ashmilgit15/scheduler-backend/internal/service"
	appErrors "github.com/ashmilgit15/scheduler-backend/pkg/errors"
	"github.com/ashmilgit15/scheduler-backend/pkg/response"
)

// maxUploadBytes bounds roster and image uploads.
const maxUploadBytes = 10 << 20

// UploadHandler exposes roster file and schedule image ingestion.
type UploadHandler struct {
	vision *service.VisionService
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(vision *service.VisionService) *UploadHandler {
	return &UploadHandler{vision: vision}
}

// ParseFile godoc
// @Summary Parse an uploaded CSV/TXT roster
// @Description Extracts semester, batch and register number structure from the uploaded file. CSV columns, delimited rows and bare register number lists are all accepted.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Roster file"
// @Success 200 {object} response.Envelope
// @Router /upload/parse-file [post]
func (h *UploadHandler) ParseFile(c *gin.Context) {
	filename, content, err := readUploadedFile(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	text := string(content)

	var semesters []models.Semester
	if strings.HasSuffix(strings.ToLower(filename), ".csv") || strings.Contains(text, ",") {
		semesters = ingest.ParseRosterCSV(text)
	} else {
		semesters, _ = ingest.ExtractRegisterNumbers(text)
	}

	if len(semesters) == 0 {
		// fallback: treat every non-empty line as a register number
		if numbers := splitLines(text); len(numbers) > 0 {
			semesters = []models.Semester{{
				Name:    "S1",
				Batches: []models.Batch{{Name: "A", RegisterNumbers: numbers}},
			}}
		}
	}

	total := 0
	for _, semester := range semesters {
		total += len(semester.AllRegisterNumbers())
	}

	response.JSON(c, http.StatusOK, dto.ParseFileResponse{
		Semesters:     semesters,
		TotalStudents: total,
		Message:       fmt.Sprintf("Extracted %d register numbers from %d semester(s)", total, len(semesters)),
	}, nil)
}

// AnalyzeImage godoc
// @Summary Analyze a schedule image with the vision backend
// @Description Runs the uploaded image through the configured vision model chain and parses the extracted exam data.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Schedule image (PNG or JPEG)"
// @Success 200 {object} response.Envelope
// @Failure 415 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /upload/analyze-image [post]
func (h *UploadHandler) AnalyzeImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing uploaded file"))
		return
	}
	content, err := readMultipartFile(header)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.vision.AnalyzeImage(c.Request.Context(), content, header.Header.Get("Content-Type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

func readUploadedFile(c *gin.Context) (string, []byte, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing uploaded file")
	}
	content, err := readMultipartFile(header)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, content, nil
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read uploaded file")
	}
	return content, nil
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ashmilgit15/scheduler-backend/internal/ingest"
	"github.com/ashmilgit15/scheduler-backend/internal/models"
	appErrors "github.com/ashmilgit15/scheduler-backend/pkg/errors"
)

// extractionPrompt instructs the vision model to report everything it
// can read off a schedule image in a fixed sectioned format the parser
// in internal/ingest understands.
const extractionPrompt = `Analyze this image and extract ALL possible information related to an exam schedule. Use your intelligence to identify and organize the data.

Extract the following if present:
1. EXAM_NAME: Name of the exam/test
2. DEPARTMENT: Department or branch name
3. SEMESTER: Semester (e.g., S1, S2, S3, S4, S5, S6, S7, S8)
4. BATCH: Batch/Division (e.g., A, B, C)
5. ACADEMIC_YEAR: Academic year (e.g., 2024-25)
6. DATES: Any exam dates mentioned (format: DD-MM-YY)
7. LABS: Lab names or room numbers
8. INTERNAL_EXAMINERS: Names and IDs of internal examiners
9. EXTERNAL_EXAMINERS: Names and IDs of external examiners
10. REGISTER_NUMBERS: Student register numbers (patterns like TVE20CS001, ABC21EC123)
11. SUBJECTS: Subject names
12. TIME_SLOTS: Time slots mentioned

Output in this exact format (leave blank if not found):
EXAM_NAME: [exam name]
DEPARTMENT: [department]
SEMESTER: [semester]
BATCH: [batch]
ACADEMIC_YEAR: [year]
DATES:
[list each date on new line in DD-MM-YY format]
LABS:
[list each lab on new line]
INTERNAL_EXAMINERS:
[ID: Name format, one per line]
EXTERNAL_EXAMINERS:
[ID: Name format, one per line]
SUBJECTS:
[list each subject on new line]
REGISTER_NUMBERS:
[list each register number on new line]
RAW_TEXT:
[any other text you can see that might be useful]

Be thorough and extract everything you can see. If you're unsure about something, include it anyway with a note.`

var supportedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

// visionBackend is the model chain the service delegates to.
type visionBackend interface {
	AnalyzeImage(ctx context.Context, prompt, imageBase64, mimeType string) (string, error)
}

// VisionResult is the parsed outcome of one image analysis.
type VisionResult struct {
	Semesters       []models.Semester `json:"semesters"`
	RegisterNumbers []string          `json:"register_numbers"`
	TotalStudents   int               `json:"total_students"`
	Extraction      ingest.Extraction `json:"extracted_data"`
	RawResponse     string            `json:"raw_response"`
	Cached          bool              `json:"cached"`
	Message         string            `json:"message"`
}

// VisionService turns an uploaded schedule image into structured exam
// data. Identical images are answered from the cache instead of a
// second backend call; the cache key is the image content hash.
type VisionService struct {
	backend  visionBackend
	cache    *CacheService
	metrics  *MetricsService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewVisionService wires image analysis.
func NewVisionService(backend visionBackend, cache *CacheService, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *VisionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisionService{
		backend:  backend,
		cache:    cache,
		metrics:  metrics,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// AnalyzeImage runs the extraction pipeline on raw image bytes.
func (s *VisionService) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*VisionResult, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	if !supportedImageTypes[mimeType] {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedMedia,
			fmt.Sprintf("Invalid image format. Supported formats: PNG, JPG, JPEG. Got: %s", mimeType))
	}

	digest := sha256.Sum256(image)
	cacheKey := "vision:extract:" + hex.EncodeToString(digest[:])

	var responseText string
	cached, _ := s.cache.Get(ctx, cacheKey, &responseText)
	if !cached {
		start := time.Now()
		text, err := s.backend.AnalyzeImage(ctx, extractionPrompt, base64.StdEncoding.EncodeToString(image), mimeType)
		duration := time.Since(start)
		if err != nil {
			if s.metrics != nil {
				s.metrics.RecordVisionAttempt("chain", "error", duration)
			}
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.RecordVisionAttempt("chain", "ok", duration)
		}
		responseText = text
		if err := s.cache.Set(ctx, cacheKey, responseText, s.cacheTTL); err != nil {
			s.logger.Warn("vision cache write failed", zap.Error(err))
		}
	}

	semesters, registerNumbers, extraction := ingest.ParseVisionText(responseText)
	result := &VisionResult{
		Semesters:       semesters,
		RegisterNumbers: registerNumbers,
		TotalStudents:   len(registerNumbers),
		Extraction:      extraction,
		RawResponse:     responseText,
		Cached:          cached,
		Message: fmt.Sprintf("Extracted %d register numbers and additional exam data using AI",
			len(registerNumbers)),
	}

	s.logger.Info("image analyzed",
		zap.Int("register_numbers", result.TotalStudents),
		zap.Bool("cached", cached))
	return result, nil
}

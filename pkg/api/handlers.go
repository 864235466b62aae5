package api

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"palette_api/pkg/config"
	"palette_api/pkg/extract"
	"palette_api/pkg/metrics"
	"palette_api/pkg/models"
	"palette_api/pkg/prompting"
	"palette_api/pkg/ratelimit"
	"palette_api/pkg/repository/usage"
)

// DiagnosisModel is the black-box generative model behind the service.
type DiagnosisModel interface {
	Model() string
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteVision(ctx context.Context, prompt string, parts []prompting.MediaPart) (string, error)
}

// shapedKeys is the fixed allow-list copied verbatim from the model
// output into the response. Unknown keys are dropped; missing keys
// stay absent.
var shapedKeys = []string{
	"personalColor",
	"seasonGroup",
	"faceShape",
	"bodyType",
	"bestColors",
	"avoidColors",
	"makeupColors",
	"hairColors",
	"faceShapeAdvice",
	"bodyTypeAdvice",
	"explanation",
}

// Handlers serves the diagnosis endpoints.
type Handlers struct {
	model   DiagnosisModel // nil when the credential was never configured
	limiter *ratelimit.Limiter
	repo    usage.Repository // nil on variants without persistence
	reg     *metrics.Registry
	mode    string
	enabled bool
}

// NewHandlers constructs Handlers. model may be nil (unconfigured
// credential) and repo may be nil (no persistence backend); both are
// valid deployment variants.
func NewHandlers(model DiagnosisModel, limiter *ratelimit.Limiter, repo usage.Repository, reg *metrics.Registry, cfg config.Config) *Handlers {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Handlers{
		model:   model,
		limiter: limiter,
		repo:    repo,
		reg:     reg,
		mode:    cfg.Mode,
		enabled: cfg.Enabled,
	}
}

// Register mounts the routes. /stats exists only on persistence-backed
// deployments.
func (h *Handlers) Register(e *echo.Echo) {
	e.POST("/diagnose", h.Diagnose)
	e.GET("/status", h.Status)
	if h.repo != nil {
		e.GET("/stats", h.Stats)
	}
}

// Diagnose handles POST /diagnose: rate check, service check, input
// validation, prompt build, one model call, tolerant extraction,
// response shaping, then a fire-and-forget persistence write.
func (h *Handlers) Diagnose(c echo.Context) error {
	ctx := c.Request().Context()
	logger := log.Ctx(ctx)

	if !h.limiter.Allow(c.RealIP()) {
		h.count(ctx, "rate_limited")
		return fail(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
	}
	h.reg.Set(ctx, "rate_limit_live_clients", nil, int64(h.limiter.Len()))

	if !h.enabled || h.model == nil {
		h.count(ctx, "unavailable")
		return fail(c, http.StatusServiceUnavailable, "AI diagnosis service is not available.")
	}

	var req models.DiagnoseRequest
	if err := c.Bind(&req); err != nil {
		h.count(ctx, "invalid_input")
		return fail(c, http.StatusBadRequest, "Invalid request body.")
	}

	var prompt string
	var parts []prompting.MediaPart
	opts := prompting.Options{Age: req.Age, Gender: req.Gender, Lang: req.Lang}

	switch h.mode {
	case config.ModeImage:
		if req.Image == "" {
			h.count(ctx, "invalid_input")
			return fail(c, http.StatusBadRequest, "A face image is required.")
		}
		face, err := decodeImage(req.Image, req.MimeType)
		if err != nil {
			h.count(ctx, "invalid_input")
			return fail(c, http.StatusBadRequest, "Invalid face image encoding.")
		}
		var body prompting.MediaPart
		if req.BodyImage != "" {
			if body, err = decodeImage(req.BodyImage, req.BodyMimeType); err != nil {
				h.count(ctx, "invalid_input")
				return fail(c, http.StatusBadRequest, "Invalid body image encoding.")
			}
		}
		prompt, parts = prompting.ImagePrompt(face, body, opts)
	default:
		if req.FaceAnalysis == nil || req.FaceAnalysis.Error != "" {
			h.count(ctx, "invalid_input")
			return fail(c, http.StatusBadRequest, "Face analysis data is required.")
		}
		prompt = prompting.DataPrompt(req.FaceAnalysis, req.BodyAnalysis, opts)
	}

	raw, err := h.invoke(ctx, prompt, parts)
	if err != nil {
		// Detail stays server-side; the caller gets a generic failure.
		logger.Error().Err(err).Msg("model invocation failed")
		h.count(ctx, "model_error")
		return fail(c, http.StatusInternalServerError, "AI diagnosis failed. Please try again.")
	}

	diagnosis, err := extract.JSON(raw)
	if err != nil {
		logger.Error().Err(err).Int("raw_len", len(raw)).Msg("model response extraction failed")
		h.count(ctx, "malformed_response")
		return fail(c, http.StatusInternalServerError, "AI diagnosis failed. Please try again.")
	}

	shaped := shape(diagnosis)
	h.count(ctx, "ok")

	if err := c.JSON(http.StatusOK, models.DiagnoseResponse{
		Success:   true,
		Diagnosis: shaped,
		IsDemo:    true,
	}); err != nil {
		return err
	}

	// The response is already written; persistence is an audit
	// side-channel and must never affect the request outcome.
	if h.repo != nil {
		rec := h.buildRecord(req, shaped)
		go h.persist(logger, rec)
	}
	return nil
}

// Status handles GET /status; it never fails.
func (h *Handlers) Status(c echo.Context) error {
	resp := models.StatusResponse{
		Success:   true,
		Available: h.enabled && h.model != nil,
		Mode:      h.mode,
	}
	if h.model != nil {
		resp.Model = h.model.Model()
	}
	return c.JSON(http.StatusOK, resp)
}

// Stats handles GET /stats on persistence-backed deployments.
func (h *Handlers) Stats(c echo.Context) error {
	stats, err := h.repo.Stats(c.Request().Context())
	if err != nil {
		log.Ctx(c.Request().Context()).Error().Err(err).Msg("stats query failed")
		return fail(c, http.StatusInternalServerError, "Stats are temporarily unavailable.")
	}
	return c.JSON(http.StatusOK, models.StatsResponse{
		Success:  true,
		Total:    stats.Total,
		ByResult: stats.ByResult,
		ByRegion: stats.ByRegion,
	})
}

func (h *Handlers) invoke(ctx context.Context, prompt string, parts []prompting.MediaPart) (string, error) {
	if len(parts) > 0 {
		return h.model.CompleteVision(ctx, prompt, parts)
	}
	return h.model.Complete(ctx, prompt)
}

func (h *Handlers) buildRecord(req models.DiagnoseRequest, shaped map[string]any) models.UsageRecord {
	rec := models.UsageRecord{
		SessionID:     uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Region:        models.RegionFromTimezone(req.Timezone),
		Lang:          req.Lang,
		Age:           req.Age,
		Gender:        req.Gender,
		Face:          req.FaceAnalysis, // derived measurements only, never image bytes
		Body:          req.BodyAnalysis,
		PersonalColor: stringField(shaped, "personalColor"),
		FaceShape:     stringField(shaped, "faceShape"),
		BodyType:      stringField(shaped, "bodyType"),
		Diagnosis:     shaped,
	}
	return rec
}

// persist runs detached from the request: the caller may be long gone.
func (h *Handlers) persist(logger *zerolog.Logger, rec models.UsageRecord) {
	ctx := logger.WithContext(context.Background())
	if err := h.repo.Save(ctx, rec); err != nil {
		logger.Error().Err(err).Str("session_id", rec.SessionID).Msg("usage record persistence failed")
		h.reg.Inc(ctx, "usage_persist_failures_total", nil, 1)
	}
}

func (h *Handlers) count(ctx context.Context, outcome string) {
	h.reg.Inc(ctx, "diagnoses_total", map[string]string{"outcome": outcome}, 1)
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, models.ErrorResponse{Success: false, Message: message})
}

func shape(diagnosis map[string]any) map[string]any {
	out := make(map[string]any, len(shapedKeys))
	for _, key := range shapedKeys {
		if v, ok := diagnosis[key]; ok {
			out[key] = v
		}
	}
	return out
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func decodeImage(b64, mime string) (prompting.MediaPart, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return prompting.MediaPart{}, err
	}
	return prompting.MediaPart{MIME: mime, Data: data}, nil
}

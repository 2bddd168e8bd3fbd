package surveys

import (
	"log"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/student-survey/api/internal/survey/application"
)

const defaultRequestTimeout = 5 * time.Second

// Handler wires survey HTTP endpoints to the survey service.
type Handler struct {
	logger         *log.Logger
	surveyService  application.SurveyService
	requestTimeout time.Duration
}

// Config provides dependencies for Handler.
type Config struct {
	Logger         *log.Logger
	SurveyService  application.SurveyService
	RequestTimeout time.Duration
}

// NewHandler constructs a survey HTTP handler set.
func NewHandler(cfg Config) *Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		logger:         logger,
		surveyService:  cfg.SurveyService,
		requestTimeout: timeout,
	}
}

// Register mounts survey routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.surveyListHandler())
	r.Post("/", h.surveyCreateHandler())
	r.Get("/options", h.surveyOptionsHandler())
	r.Get("/{id}", h.surveyDetailHandler())
	r.Put("/{id}", h.surveyUpdateHandler())
	r.Delete("/{id}", h.surveyDeleteHandler())
}

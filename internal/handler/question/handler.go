package question

import (
	"github.com/gin-gonic/gin"

	"github.com/fsfcare/care-api/internal/questionnaire"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/httputil"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	questions := r.Group("/questions")
	{
		questions.GET("", h.ListVersions)
		questions.GET("/:version", h.GetVersion)
	}
}

func (h *Handler) ListVersions(c *gin.Context) {
	httputil.RespondWithSuccess(c, gin.H{"versions": questionnaire.Versions()})
}

// GetVersion returns the full question set for a questionnaire version.
func (h *Handler) GetVersion(c *gin.Context) {
	set, err := questionnaire.GetSet(c.Param("version"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("questionnaire version", err))
		return
	}
	httputil.RespondWithSuccess(c, set)
}

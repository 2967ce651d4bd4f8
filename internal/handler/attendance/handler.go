package attendance

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fsfcare/care-api/internal/middleware"
	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/service/attendance"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/httputil"
)

type Handler struct {
	service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	attendances := r.Group("/attendances")
	{
		attendances.POST("", h.Create)
		attendances.GET("", h.List)
		attendances.GET("/:id", h.Get)
		attendances.PUT("/:id", h.Update)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, a)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid attendance id", err))
		return
	}

	a, err := h.service.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, a)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid attendance id", err))
		return
	}

	var req model.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	a, err := h.service.Update(c.Request.Context(), middleware.CurrentUser(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, a)
}

// List returns attendances newest first, optionally filtered by patient or
// author.
func (h *Handler) List(c *gin.Context) {
	var filter model.AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	attendances, err := h.service.List(c.Request.Context(), middleware.CurrentUser(c), &filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, attendances)
}

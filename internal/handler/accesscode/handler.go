package accesscode

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fsfcare/care-api/internal/middleware"
	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/service/accesscode"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/httputil"
)

type Handler struct {
	service *accesscode.Service
}

func NewHandler(service *accesscode.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRedeemRoute wires redemption for any authenticated account,
// including ones with no role yet.
func (h *Handler) RegisterRedeemRoute(r *gin.RouterGroup) {
	r.POST("/access-codes/redeem", h.Redeem)
}

// RegisterAdminRoutes wires code management, the router gates these on the
// admin role.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	codes := r.Group("/access-codes")
	{
		codes.POST("", h.Generate)
		codes.GET("", h.List)
		codes.GET("/:id", h.Get)
	}
}

func (h *Handler) Generate(c *gin.Context) {
	var req model.GenerateAccessCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	code, err := h.service.Generate(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, code)
}

func (h *Handler) Redeem(c *gin.Context) {
	var req model.RedeemAccessCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	updated, err := h.service.Redeem(c.Request.Context(), user.ID, req.Code)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid access code id", err))
		return
	}

	code, err := h.service.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, code)
}

func (h *Handler) List(c *gin.Context) {
	codes, err := h.service.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, codes)
}

package caresheet

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fsfcare/care-api/internal/middleware"
	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/questionnaire"
	"github.com/fsfcare/care-api/internal/service/caresheet"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/httputil"
)

type Handler struct {
	service *caresheet.Service
}

func NewHandler(service *caresheet.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sheets := r.Group("/patients/:id/care-sheets")
	{
		sheets.POST("", h.Save)
		sheets.GET("", h.ListByPatient)
		sheets.GET("/:sheetId", h.Get)
		sheets.DELETE("/:sheetId", h.Delete)
		sheets.POST("/drafts", h.StartDraft)
	}

	drafts := r.Group("/care-sheets/drafts")
	{
		drafts.GET("/:draftId", h.GetDraft)
		drafts.POST("/:draftId/answer", h.AnswerDraft)
		drafts.POST("/:draftId/next", h.AdvanceDraft)
		drafts.POST("/:draftId/previous", h.RewindDraft)
		drafts.POST("/:draftId/save", h.SaveDraft)
		drafts.DELETE("/:draftId", h.DiscardDraft)
	}
}

func (h *Handler) Save(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.MissingPatientID())
		return
	}

	var req model.SaveCareSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	sheet, err := h.service.Save(c.Request.Context(), middleware.CurrentUser(c), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, sheet)
}

func (h *Handler) Get(c *gin.Context) {
	sheetID, err := uuid.Parse(c.Param("sheetId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid care sheet id", err))
		return
	}

	sheet, err := h.service.Get(c.Request.Context(), middleware.CurrentUser(c), sheetID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sheet)
}

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.MissingPatientID())
		return
	}

	sheets, err := h.service.ListByPatient(c.Request.Context(), middleware.CurrentUser(c), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sheets)
}

func (h *Handler) Delete(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.MissingPatientID())
		return
	}
	sheetID, err := uuid.Parse(c.Param("sheetId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid care sheet id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentUser(c), patientID, sheetID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

type startDraftRequest struct {
	Version string `json:"version" binding:"required"`
}

func (h *Handler) StartDraft(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.MissingPatientID())
		return
	}

	var req startDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	draft, err := h.service.StartDraft(c.Request.Context(), middleware.CurrentUser(c), patientID, req.Version)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, draftView(draft))
}

func (h *Handler) GetDraft(c *gin.Context) {
	draft, err := h.service.GetDraft(c.Request.Context(), middleware.CurrentUser(c), c.Param("draftId"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draftView(draft))
}

func (h *Handler) AnswerDraft(c *gin.Context) {
	var input questionnaire.AnswerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	draft, err := h.service.AnswerDraft(c.Request.Context(), middleware.CurrentUser(c), c.Param("draftId"), input)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draftView(draft))
}

func (h *Handler) AdvanceDraft(c *gin.Context) {
	draft, err := h.service.AdvanceDraft(c.Request.Context(), middleware.CurrentUser(c), c.Param("draftId"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draftView(draft))
}

func (h *Handler) RewindDraft(c *gin.Context) {
	draft, err := h.service.RewindDraft(c.Request.Context(), middleware.CurrentUser(c), c.Param("draftId"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draftView(draft))
}

func (h *Handler) SaveDraft(c *gin.Context) {
	sheet, err := h.service.SaveDraft(c.Request.Context(), middleware.CurrentUser(c), c.Param("draftId"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, sheet)
}

func (h *Handler) DiscardDraft(c *gin.Context) {
	if err := h.service.DiscardDraft(c.Request.Context(), middleware.CurrentUser(c), c.Param("draftId")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"discarded": true})
}

// draftView flattens a draft into its wire shape.
func draftView(d *questionnaire.Draft) gin.H {
	view := gin.H{
		"id":         d.ID,
		"patient_id": d.PatientID,
		"version":    d.Version,
		"index":      d.Index(),
		"at_end":     d.AtEnd(),
		"answers":    d.Answers(),
	}
	if q, err := d.Current(); err == nil {
		view["question"] = q
	}
	return view
}

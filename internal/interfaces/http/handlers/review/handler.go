// Package review serves the due-question, answer and material endpoints
// used by clients that run review sessions themselves.
package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/masterly-ai/masterly/internal/application/review/questionstore"
	"github.com/masterly-ai/masterly/internal/application/review/usecases"
	"github.com/masterly-ai/masterly/internal/shared/constants"
	"github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
	"github.com/masterly-ai/masterly/internal/shared/utils"
)

type Handler struct {
	dueCountUC          getDueCountUseCase
	dueQuestionsUC      getDueQuestionsUseCase
	recordAnswerUC      recordAnswerUseCase
	userStatsUC         getUserStatsUseCase
	materialQuestionsUC getMaterialQuestionsUseCase
	saveQuestionsUC     saveQuestionsUseCase
	deleteMaterialUC    deleteMaterialUseCase
	logger              logger.Interface
}

func NewHandler(
	dueCountUC getDueCountUseCase,
	dueQuestionsUC getDueQuestionsUseCase,
	recordAnswerUC recordAnswerUseCase,
	userStatsUC getUserStatsUseCase,
	materialQuestionsUC getMaterialQuestionsUseCase,
	saveQuestionsUC saveQuestionsUseCase,
	deleteMaterialUC deleteMaterialUseCase,
	logger logger.Interface,
) *Handler {
	return &Handler{
		dueCountUC:          dueCountUC,
		dueQuestionsUC:      dueQuestionsUC,
		recordAnswerUC:      recordAnswerUC,
		userStatsUC:         userStatsUC,
		materialQuestionsUC: materialQuestionsUC,
		saveQuestionsUC:     saveQuestionsUC,
		deleteMaterialUC:    deleteMaterialUC,
		logger:              logger,
	}
}

type RecordAnswerRequest struct {
	QuestionID     string `json:"question_id" binding:"required"`
	IsCorrect      *bool  `json:"is_correct" binding:"required"`
	ResponseTimeMs int64  `json:"response_time_ms" binding:"gte=0"`
	UpdateFSRS     *bool  `json:"update_fsrs"`
}

type SaveQuestionsRequest struct {
	Questions []questionstore.NewQuestion `json:"questions" binding:"required,min=1,dive"`
}

// GetDueCount returns how many questions are due for the caller.
//
// @Summary		Count due questions
// @Tags			review
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse{data=dto.DueCountDTO}	"Due count"
// @Failure		401	{object}	utils.APIResponse						"Unauthorized"
// @Failure		500	{object}	utils.APIResponse						"Internal server error"
// @Router			/api/review/due/count [get]
func (h *Handler) GetDueCount(c *gin.Context) {
	result, err := h.dueCountUC.Execute(c.Request.Context(), usecases.GetDueCountQuery{
		UserID: c.GetString(constants.ContextKeyUserID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetDueQuestions returns the caller's due batch. mode=play (default) is the
// interleaved batch used by review sessions; mode=all lists every due
// question.
//
// @Summary		List due questions
// @Tags			review
// @Produce		json
// @Security		Bearer
// @Param			mode	query		string												false	"play or all"	Enums(play, all)
// @Param			limit	query		int													false	"Batch size"
// @Success		200		{object}	utils.APIResponse{data=[]dto.QuestionDTO}	"Due questions"
// @Failure		400		{object}	utils.APIResponse									"Bad request"
// @Failure		401		{object}	utils.APIResponse									"Unauthorized"
// @Router			/api/review/due [get]
func (h *Handler) GetDueQuestions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	result, err := h.dueQuestionsUC.Execute(c.Request.Context(), usecases.GetDueQuestionsQuery{
		UserID: c.GetString(constants.ContextKeyUserID),
		Mode:   usecases.DueMode(c.Query("mode")),
		Limit:  limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RecordAnswer reports one answer. update_fsrs defaults to true, which is
// what due-question reviews want; practice clients send false.
//
// @Summary		Record answer
// @Tags			review
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			answer	body		RecordAnswerRequest	true	"Answer"
// @Success		200		{object}	utils.APIResponse	"Answer recorded"
// @Failure		400		{object}	utils.APIResponse	"Bad request"
// @Failure		401		{object}	utils.APIResponse	"Unauthorized"
// @Router			/api/review/answers [post]
func (h *Handler) RecordAnswer(c *gin.Context) {
	var req RecordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for record answer", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	updateFSRS := true
	if req.UpdateFSRS != nil {
		updateFSRS = *req.UpdateFSRS
	}

	err := h.recordAnswerUC.Execute(c.Request.Context(), usecases.RecordAnswerCommand{
		UserID:         c.GetString(constants.ContextKeyUserID),
		QuestionID:     req.QuestionID,
		IsCorrect:      *req.IsCorrect,
		ResponseTimeMs: req.ResponseTimeMs,
		UpdateFSRS:     updateFSRS,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Answer recorded", nil)
}

// @Summary		Get review stats
// @Tags			review
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse{data=questionstore.UserStats}	"Stats"
// @Failure		401	{object}	utils.APIResponse								"Unauthorized"
// @Router			/api/review/stats [get]
func (h *Handler) GetUserStats(c *gin.Context) {
	result, err := h.userStatsUC.Execute(c.Request.Context(), c.GetString(constants.ContextKeyUserID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// @Summary		List material questions
// @Tags			materials
// @Produce		json
// @Security		Bearer
// @Param			id	path		string										true	"Material ID"
// @Success		200	{object}	utils.APIResponse{data=[]dto.QuestionDTO}	"Questions"
// @Failure		400	{object}	utils.APIResponse							"Invalid material ID"
// @Failure		401	{object}	utils.APIResponse							"Unauthorized"
// @Router			/api/materials/{id}/questions [get]
func (h *Handler) GetMaterialQuestions(c *gin.Context) {
	materialID, err := utils.ParseUUIDParam(c, "id", "material")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.materialQuestionsUC.Execute(c.Request.Context(), materialID, c.GetString(constants.ContextKeyUserID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// @Summary		Save generated questions
// @Tags			materials
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			id			path		string										true	"Material ID"
// @Param			questions	body		SaveQuestionsRequest						true	"Questions"
// @Success		201			{object}	utils.APIResponse{data=dto.SaveQuestionsDTO}	"Questions saved"
// @Failure		400			{object}	utils.APIResponse							"Bad request"
// @Failure		401			{object}	utils.APIResponse							"Unauthorized"
// @Router			/api/materials/{id}/questions [post]
func (h *Handler) SaveQuestions(c *gin.Context) {
	materialID, err := utils.ParseUUIDParam(c, "id", "material")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SaveQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for save questions", "material_id", materialID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.saveQuestionsUC.Execute(c.Request.Context(), usecases.SaveQuestionsCommand{
		MaterialID: materialID,
		UserID:     c.GetString(constants.ContextKeyUserID),
		Questions:  req.Questions,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Questions saved", result)
}

// @Summary		Delete material
// @Tags			materials
// @Produce		json
// @Security		Bearer
// @Param			id	path		string				true	"Material ID"
// @Success		200	{object}	utils.APIResponse	"Material deleted"
// @Failure		400	{object}	utils.APIResponse	"Invalid material ID"
// @Failure		401	{object}	utils.APIResponse	"Unauthorized"
// @Router			/api/materials/{id} [delete]
func (h *Handler) DeleteMaterial(c *gin.Context) {
	materialID, err := utils.ParseUUIDParam(c, "id", "material")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteMaterialUC.Execute(c.Request.Context(), materialID, c.GetString(constants.ContextKeyUserID)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Material deleted", nil)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
)

const defaultHistoryLimit = 20

type AIHandler struct {
	aiSvc AIServiceInterface
}

func NewAIHandler(aiSvc AIServiceInterface) *AIHandler {
	return &AIHandler{aiSvc: aiSvc}
}

// @Summary Generate a lesson
// @Description Write a lesson with the AI model. Costs credits; with courseId the lesson is saved as a draft.
// @Tags ai
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param body body dto.GenerateLessonRequest true "Lesson brief"
// @Success 200 {object} shared.Response{data=dto.GenerateLessonResponse}
// @Failure 402 {object} shared.Response
// @Failure 503 {object} shared.Response
// @Router /api/v1/ai/lessons/generate [post]
func (h *AIHandler) GenerateLesson(c *fiber.Ctx) error {
	var req dto.GenerateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.aiSvc.GenerateLesson(c.UserContext(), currentViewer(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Lesson generated", resp)
}

// @Summary Generate practice questions
// @Tags ai
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param body body dto.GenerateQuestionsRequest true "Question brief"
// @Success 200 {object} shared.Response{data=dto.GenerateQuestionsResponse}
// @Failure 402 {object} shared.Response
// @Failure 503 {object} shared.Response
// @Router /api/v1/ai/questions/generate [post]
func (h *AIHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.aiSvc.GenerateQuestions(c.UserContext(), currentViewer(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Questions generated", resp)
}

// @Summary AI generation history
// @Tags ai
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param limit query int false "Max entries" default(20)
// @Success 200 {object} shared.Response{data=dto.AIHistoryResponse}
// @Router /api/v1/ai/history [get]
func (h *AIHandler) History(c *fiber.Ctx) error {
	resp, err := h.aiSvc.History(currentUserID(c), c.QueryInt("limit", defaultHistoryLimit))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

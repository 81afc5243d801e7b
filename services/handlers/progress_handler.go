package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

// @Summary Complete a lesson
// @Description Record a lesson completion, update scores, streak and weekly progress, and award achievements
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param body body dto.CompleteLessonRequest true "Completion details"
// @Success 200 {object} shared.Response{data=dto.CompleteLessonResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} shared.Response
// @Failure 409 {object} shared.Response
// @Router /api/v1/progress/lessons/complete [post]
func (h *ProgressHandler) CompleteLesson(c *fiber.Ctx) error {
	var req dto.CompleteLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.progressSvc.RecordCompletion(currentUserID(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Lesson completed", resp)
}

// @Summary Get progress dashboard
// @Description Aggregated statistics: averages, skill scores, weekly activity, level progress
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.StatsResponse}
// @Router /api/v1/progress/stats [get]
func (h *ProgressHandler) GetStats(c *fiber.Ctx) error {
	resp, err := h.progressSvc.GetStats(currentUserID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Get achievements
// @Description Earned achievements, per-category summary and the full catalog
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.AchievementsResponse}
// @Router /api/v1/progress/achievements [get]
func (h *ProgressHandler) GetAchievements(c *fiber.Ctx) error {
	resp, err := h.progressSvc.GetAchievements(currentUserID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Update weekly goal
// @Description Set the number of lessons to complete per week (1 to 20)
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param body body dto.WeeklyGoalRequest true "Weekly goal"
// @Success 200 {object} shared.Response{data=dto.WeeklyGoalResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/v1/progress/weekly-goal [put]
func (h *ProgressHandler) UpdateWeeklyGoal(c *fiber.Ctx) error {
	var req dto.WeeklyGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.progressSvc.UpdateWeeklyGoal(currentUserID(c), req.WeeklyGoal)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Weekly goal updated", resp)
}

// @Summary Get raw progress record
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Router /api/v1/progress [get]
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	resp, err := h.progressSvc.GetProgress(currentUserID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
)

type AdminHandler struct {
	adminSvc   AdminServiceInterface
	contentSvc ContentServiceInterface
}

func NewAdminHandler(adminSvc AdminServiceInterface, contentSvc ContentServiceInterface) *AdminHandler {
	return &AdminHandler{
		adminSvc:   adminSvc,
		contentSvc: contentSvc,
	}
}

// @Summary List users
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Match on username, email or name"
// @Success 200 {object} shared.Response{data=dto.UserListResponse}
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var req dto.UserListRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.adminSvc.ListUsers(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary List teachers
// @Description Teacher accounts, optionally filtered by review status
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param status query string false "Review status" Enums(pending, approved, rejected)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} shared.Response{data=dto.TeacherListResponse}
// @Router /api/v1/admin/teachers [get]
func (h *AdminHandler) ListTeachers(c *fiber.Ctx) error {
	var req dto.TeacherListRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.adminSvc.ListTeachers(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Approve teacher
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param userId path string true "Teacher user ID"
// @Success 200 {object} shared.Response{data=dto.UserInfo}
// @Failure 404 {object} shared.Response
// @Router /api/v1/admin/teachers/{userId}/approve [put]
func (h *AdminHandler) ApproveTeacher(c *fiber.Ctx) error {
	resp, err := h.adminSvc.ApproveTeacher(c.Params("userId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Teacher approved", resp)
}

// @Summary Reject teacher
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param userId path string true "Teacher user ID"
// @Param body body dto.RejectTeacherRequest true "Rejection reason"
// @Success 200 {object} shared.Response{data=dto.UserInfo}
// @Router /api/v1/admin/teachers/{userId}/reject [put]
func (h *AdminHandler) RejectTeacher(c *fiber.Ctx) error {
	var req dto.RejectTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.adminSvc.RejectTeacher(c.Params("userId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Teacher rejected", resp)
}

// @Summary List lessons for moderation
// @Description Every lesson in any state, filterable by course, skill, level and source
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param courseId query string false "Course ID"
// @Param skill query string false "Skill"
// @Param source query string false "Lesson source" Enums(manual, ai)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} shared.Response{data=dto.LessonListResponse}
// @Router /api/v1/admin/lessons [get]
func (h *AdminHandler) ListLessons(c *fiber.Ctx) error {
	var req dto.LessonListRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.contentSvc.ListAllLessons(currentViewer(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Moderate lesson
// @Description Edit, publish or unpublish any lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param lessonId path string true "Lesson ID"
// @Param body body dto.UpdateLessonRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/admin/lessons/{lessonId} [put]
func (h *AdminHandler) UpdateLesson(c *fiber.Ctx) error {
	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.contentSvc.UpdateLesson(currentViewer(c), c.Params("lessonId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Lesson updated", resp)
}

// @Summary Delete lesson
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/lessons/{lessonId} [delete]
func (h *AdminHandler) DeleteLesson(c *fiber.Ctx) error {
	if err := h.contentSvc.DeleteLesson(c.UserContext(), currentViewer(c), c.Params("lessonId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Lesson deleted", nil)
}

// @Summary Grant AI credits
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param userId path string true "User ID"
// @Param body body dto.GrantCreditsRequest true "Credits to add"
// @Success 200 {object} shared.Response{data=dto.CreditsSummary}
// @Router /api/v1/admin/credits/{userId} [post]
func (h *AdminHandler) GrantCredits(c *fiber.Ctx) error {
	var req dto.GrantCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.adminSvc.GrantCredits(c.Params("userId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Credits granted", resp)
}

// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=dto.PlatformStatsResponse}
// @Router /api/v1/admin/stats [get]
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	resp, err := h.adminSvc.GetPlatformStats()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

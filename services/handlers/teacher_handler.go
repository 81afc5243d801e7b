package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TeacherHandler struct {
	teacherSvc TeacherServiceInterface
}

func NewTeacherHandler(teacherSvc TeacherServiceInterface) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// @Summary Link a student
// @Description Add a student account to the roster by email
// @Tags teacher
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param body body dto.LinkStudentRequest true "Student email"
// @Success 201 {object} shared.Response{data=dto.StudentSummary}
// @Failure 404 {object} shared.Response
// @Router /api/v1/teacher/students [post]
func (h *TeacherHandler) LinkStudent(c *fiber.Ctx) error {
	var req dto.LinkStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.teacherSvc.LinkStudent(currentUserID(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Student linked", resp)
}

// @Summary List linked students
// @Tags teacher
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.StudentListResponse}
// @Router /api/v1/teacher/students [get]
func (h *TeacherHandler) ListStudents(c *fiber.Ctx) error {
	resp, err := h.teacherSvc.ListStudents(currentUserID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Unlink a student
// @Tags teacher
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param studentId path string true "Student ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/teacher/students/{studentId} [delete]
func (h *TeacherHandler) UnlinkStudent(c *fiber.Ctx) error {
	if err := h.teacherSvc.UnlinkStudent(currentUserID(c), c.Params("studentId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Student unlinked", nil)
}

// @Summary Get a student's progress
// @Description Full dashboard and achievements of a linked student
// @Tags teacher
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param studentId path string true "Student ID"
// @Success 200 {object} shared.Response{data=dto.StudentProgressResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/teacher/students/{studentId}/progress [get]
func (h *TeacherHandler) GetStudentProgress(c *fiber.Ctx) error {
	resp, err := h.teacherSvc.GetStudentProgress(currentUserID(c), c.Params("studentId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Export class report
// @Description Download the roster with progress and per-skill scores as an xlsx workbook
// @Tags teacher
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {file} file
// @Router /api/v1/teacher/students/export [get]
func (h *TeacherHandler) ExportStudents(c *fiber.Ctx) error {
	report, err := h.teacherSvc.ExportStudents(currentUserID(c))
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("students-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Status(fiber.StatusOK).Send(report)
}

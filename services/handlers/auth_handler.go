package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface
	userSvc UserServiceInterface
}

func NewAuthHandler(authSvc AuthServiceInterface, userSvc UserServiceInterface) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
		userSvc: userSvc,
	}
}

// @Summary Register a new user
// @Description Create a student or teacher account. Teacher accounts start pending admin approval.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body dto.RegisterRequest true "Registration details"
// @Success 201 {object} shared.Response{data=dto.RegisterResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} shared.Response
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.authSvc.Register(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "User registered successfully", resp)
}

// @Summary Login user
// @Description Authenticate with email or username and receive an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Login credentials"
// @Success 200 {object} shared.Response{data=dto.LoginResponse}
// @Failure 401 {object} shared.Response
// @Failure 429 {object} shared.Response
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.authSvc.Login(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Login successful", resp)
}

// @Summary Get current user profile
// @Description Account details with a progress summary, and credits for teachers and admins
// @Tags user
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UserProfileResponse}
// @Router /api/v1/user/profile [get]
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	resp, err := h.userSvc.GetUserProfile(currentUserID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/english_api/shared"
)

type BillingHandler struct {
	billingSvc BillingServiceInterface
}

func NewBillingHandler(billingSvc BillingServiceInterface) *BillingHandler {
	return &BillingHandler{billingSvc: billingSvc}
}

// @Summary Get AI credits
// @Description Current balance and the most recent credit transactions
// @Tags billing
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.CreditsResponse}
// @Router /api/v1/billing/credits [get]
func (h *BillingHandler) GetCredits(c *fiber.Ctx) error {
	resp, err := h.billingSvc.GetCredits(currentUserID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

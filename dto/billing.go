package dto

import "time"

// ==================== BILLING DTOs ====================

type CreditsSummary struct {
	Balance      int `json:"balance" example:"8"`
	TotalGranted int `json:"totalGranted" example:"10"`
	TotalUsed    int `json:"totalUsed" example:"2"`
}

type CreditTransactionResponse struct {
	ID           string    `json:"id"`
	Amount       int       `json:"amount" example:"-2"`
	BalanceAfter int       `json:"balanceAfter" example:"8"`
	Reason       string    `json:"reason" example:"ai_lesson"`
	Reference    string    `json:"reference,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreditsResponse struct {
	CreditsSummary
	Transactions []CreditTransactionResponse `json:"transactions"`
}

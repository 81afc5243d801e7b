package model

import "time"

// CreditAccount holds a user's AI generation balance.
type CreditAccount struct {
	UserID       string    `json:"user_id" gorm:"primaryKey"`
	Balance      int       `json:"balance" gorm:"not null;default:0"`
	TotalGranted int       `json:"total_granted" gorm:"not null;default:0"`
	TotalUsed    int       `json:"total_used" gorm:"not null;default:0"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreditTransaction is an append-only ledger row; Amount is negative for usage.
type CreditTransaction struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"not null;index"`
	Amount       int       `json:"amount" gorm:"not null"`
	BalanceAfter int       `json:"balance_after" gorm:"not null"`
	Reason       string    `json:"reason" gorm:"not null"`        // grant, signup, ai_lesson, ai_questions, refund
	Reference    string    `json:"reference,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

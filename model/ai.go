package model

import "time"

type AIGenerationLog struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index"`
	Purpose      string    `json:"purpose" gorm:"not null"`
	Model        string    `json:"model"`
	LatencyMs    int64     `json:"latency_ms"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

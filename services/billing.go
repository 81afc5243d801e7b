package services

import (
	"errors"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/services/repositories"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	CreditReasonGrant       = "grant"
	CreditReasonRefund      = "refund"
	CreditReasonAILesson    = "ai_lesson"
	CreditReasonAIQuestions = "ai_questions"

	defaultFreeCredits      = 10
	recentTransactionsLimit = 20
)

// BillingService manages AI generation credits.
type BillingService struct {
	context.DefaultService

	db      *PostgresService
	repo    *repositories.BillingRepository
	monitor *MonitoringService

	freeCredits int
}

const BILLING_SVC = "billing_svc"

func (svc BillingService) Id() string {
	return BILLING_SVC
}

func (svc *BillingService) Configure(ctx *context.Context) error {
	svc.freeCredits = defaultFreeCredits
	if v, err := strconv.Atoi(os.Getenv("AI_FREE_CREDITS")); err == nil && v >= 0 {
		svc.freeCredits = v
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *BillingService) Start() error {
	svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.repo = svc.db.Billing()
	svc.monitor = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// OpenAccount gives a new user the free starting balance.
func (svc *BillingService) OpenAccount(userID string) error {
	if _, err := svc.repo.OpenAccount(userID, svc.freeCredits); err != nil {
		return svc.db.HandleError(err)
	}
	return nil
}

// account returns the user's account, opening it lazily for users that
// registered before billing existed.
func (svc *BillingService) account(userID string) (*model.CreditAccount, error) {
	account, err := svc.repo.GetAccount(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		account, err = svc.repo.OpenAccount(userID, svc.freeCredits)
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	return account, nil
}

func (svc *BillingService) GetCredits(userID string) (*dto.CreditsResponse, error) {
	account, err := svc.account(userID)
	if err != nil {
		return nil, err
	}

	txs, err := svc.repo.ListTransactions(userID, recentTransactionsLimit)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	resp := &dto.CreditsResponse{
		CreditsSummary: summarizeAccount(account),
		Transactions:   make([]dto.CreditTransactionResponse, 0, len(txs)),
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, dto.CreditTransactionResponse{
			ID:           tx.ID,
			Amount:       tx.Amount,
			BalanceAfter: tx.BalanceAfter,
			Reason:       tx.Reason,
			Reference:    tx.Reference,
			CreatedAt:    tx.CreatedAt,
		})
	}
	return resp, nil
}

func (svc *BillingService) Summary(userID string) (*dto.CreditsSummary, error) {
	account, err := svc.account(userID)
	if err != nil {
		return nil, err
	}
	s := summarizeAccount(account)
	return &s, nil
}

// Consume debits amount atomically. An empty balance yields a 402.
func (svc *BillingService) Consume(userID string, amount int, reason, reference string) (*dto.CreditsSummary, error) {
	if _, err := svc.account(userID); err != nil {
		return nil, err
	}

	account, err := svc.repo.Consume(userID, amount, reason, reference)
	if errors.Is(err, repositories.ErrInsufficientCredits) {
		return nil, shared.NewPaymentRequiredError(err, "Not enough AI credits")
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	svc.monitor.RecordCreditsConsumed(reason, amount)
	s := summarizeAccount(account)
	return &s, nil
}

// Refund returns credits taken by a failed generation.
func (svc *BillingService) Refund(userID string, amount int, reference string) error {
	if _, err := svc.repo.Credit(userID, amount, CreditReasonRefund, reference); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id":   userID,
			"amount":    amount,
			"reference": reference,
		}).Error("Failed to refund AI credits")
		return svc.db.HandleError(err)
	}
	return nil
}

func (svc *BillingService) Grant(userID string, amount int, note string) (*dto.CreditsSummary, error) {
	if _, err := svc.account(userID); err != nil {
		return nil, err
	}

	account, err := svc.repo.Credit(userID, amount, CreditReasonGrant, note)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	s := summarizeAccount(account)
	return &s, nil
}

func summarizeAccount(a *model.CreditAccount) dto.CreditsSummary {
	return dto.CreditsSummary{
		Balance:      a.Balance,
		TotalGranted: a.TotalGranted,
		TotalUsed:    a.TotalUsed,
	}
}

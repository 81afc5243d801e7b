package repositories

import (
	"errors"
	"time"

	"github.com/lac-hong-legacy/english_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInsufficientCredits = errors.New("insufficient credits")

// BillingRepository owns credit accounts and their ledger.
type BillingRepository struct {
	BaseRepository
}

func NewBillingRepository(db *gorm.DB) *BillingRepository {
	return &BillingRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// OpenAccount creates the account with a starting grant. Re-opening an
// existing account changes nothing.
func (ds *BillingRepository) OpenAccount(userID string, initial int) (*model.CreditAccount, error) {
	err := ds.db.Transaction(func(tx *gorm.DB) error {
		account := &model.CreditAccount{
			UserID:       userID,
			Balance:      initial,
			TotalGranted: initial,
			UpdatedAt:    time.Now(),
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(account)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 || initial == 0 {
			return nil
		}
		return tx.Create(&model.CreditTransaction{
			ID:           newID(),
			UserID:       userID,
			Amount:       initial,
			BalanceAfter: initial,
			Reason:       "signup",
			CreatedAt:    time.Now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return ds.GetAccount(userID)
}

func (ds *BillingRepository) GetAccount(userID string) (*model.CreditAccount, error) {
	var account model.CreditAccount
	if err := ds.db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// Consume debits amount in one conditional update so the balance can never
// go negative. ErrInsufficientCredits is returned when it would.
func (ds *BillingRepository) Consume(userID string, amount int, reason, reference string) (*model.CreditAccount, error) {
	var account model.CreditAccount
	err := ds.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.CreditAccount{}).
			Where("user_id = ? AND balance >= ?", userID, amount).
			Updates(map[string]interface{}{
				"balance":    gorm.Expr("balance - ?", amount),
				"total_used": gorm.Expr("total_used + ?", amount),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Where("user_id = ?", userID).First(&account).Error; err != nil {
				return err
			}
			return ErrInsufficientCredits
		}
		return ds.appendLedger(tx, &account, userID, -amount, reason, reference)
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Credit adds amount for grants and refunds. Refunds reverse usage.
func (ds *BillingRepository) Credit(userID string, amount int, reason, reference string) (*model.CreditAccount, error) {
	updates := map[string]interface{}{
		"balance":    gorm.Expr("balance + ?", amount),
		"updated_at": time.Now(),
	}
	if reason == "refund" {
		updates["total_used"] = gorm.Expr("total_used - ?", amount)
	} else {
		updates["total_granted"] = gorm.Expr("total_granted + ?", amount)
	}

	var account model.CreditAccount
	err := ds.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.CreditAccount{}).Where("user_id = ?", userID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return ds.appendLedger(tx, &account, userID, amount, reason, reference)
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (ds *BillingRepository) appendLedger(tx *gorm.DB, account *model.CreditAccount, userID string, amount int, reason, reference string) error {
	if err := tx.Where("user_id = ?", userID).First(account).Error; err != nil {
		return err
	}
	return tx.Create(&model.CreditTransaction{
		ID:           newID(),
		UserID:       userID,
		Amount:       amount,
		BalanceAfter: account.Balance,
		Reason:       reason,
		Reference:    reference,
		CreatedAt:    time.Now(),
	}).Error
}

func (ds *BillingRepository) ListTransactions(userID string, limit int) ([]model.CreditTransaction, error) {
	var txs []model.CreditTransaction
	_, limit = paginate(1, limit)
	err := ds.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// TotalConsumed sums credits spent across all accounts.
func (ds *BillingRepository) TotalConsumed() (int64, error) {
	var total int64
	err := ds.db.Model(&model.CreditAccount{}).Select("COALESCE(SUM(total_used), 0)").Scan(&total).Error
	return total, err
}

package repositories

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBillingRepository_OpenAccountOnce(t *testing.T) {
	repo := NewBillingRepository(newTestDB(t))

	acc, err := repo.OpenAccount("u1", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, acc.Balance)

	acc, err = repo.OpenAccount("u1", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, acc.Balance)
	assert.Equal(t, 10, acc.TotalGranted)

	txs, err := repo.ListTransactions("u1", 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "signup", txs[0].Reason)
}

func TestBillingRepository_ConsumeNeverGoesNegative(t *testing.T) {
	repo := NewBillingRepository(newTestDB(t))
	_, err := repo.OpenAccount("u1", 3)
	require.NoError(t, err)

	acc, err := repo.Consume("u1", 2, "ai_lesson", "ref-1")
	require.NoError(t, err)
	assert.Equal(t, 1, acc.Balance)
	assert.Equal(t, 2, acc.TotalUsed)

	_, err = repo.Consume("u1", 2, "ai_lesson", "ref-2")
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	acc, err = repo.GetAccount("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, acc.Balance)

	txs, err := repo.ListTransactions("u1", 10)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestBillingRepository_RefundAndGrant(t *testing.T) {
	repo := NewBillingRepository(newTestDB(t))
	_, err := repo.OpenAccount("u1", 5)
	require.NoError(t, err)

	_, err = repo.Consume("u1", 2, "ai_questions", "job")
	require.NoError(t, err)

	acc, err := repo.Credit("u1", 2, "refund", "job")
	require.NoError(t, err)
	assert.Equal(t, 5, acc.Balance)
	assert.Equal(t, 0, acc.TotalUsed)

	acc, err = repo.Credit("u1", 20, "grant", "admin")
	require.NoError(t, err)
	assert.Equal(t, 25, acc.Balance)
	assert.Equal(t, 25, acc.TotalGranted)

	txs, err := repo.ListTransactions("u1", 10)
	require.NoError(t, err)
	require.NotEmpty(t, txs)
	assert.Equal(t, 25, txs[0].BalanceAfter)

	total, err := repo.TotalConsumed()
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestBillingRepository_UnknownAccount(t *testing.T) {
	repo := NewBillingRepository(newTestDB(t))

	_, err := repo.Consume("ghost", 1, "ai_lesson", "")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.Credit("ghost", 1, "grant", "")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

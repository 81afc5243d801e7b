package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBilling_OpensAccountLazily(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestBillingService(ds)
	teacher := seedUser(t, ds, "teach", "teacher", "approved")

	credits, err := svc.GetCredits(teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, defaultFreeCredits, credits.Balance)
	assert.Equal(t, defaultFreeCredits, credits.TotalGranted)
	assert.Equal(t, 0, credits.TotalUsed)
	require.Len(t, credits.Transactions, 1)
	assert.Equal(t, "signup", credits.Transactions[0].Reason)

	again, err := svc.Summary(teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, defaultFreeCredits, again.Balance)
}

func TestBilling_ConsumeAndInsufficientBalance(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestBillingService(ds)
	teacher := seedUser(t, ds, "teach", "teacher", "approved")
	require.NoError(t, svc.OpenAccount(teacher.ID))

	summary, err := svc.Consume(teacher.ID, 8, CreditReasonAILesson, "gen-1")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Balance)
	assert.Equal(t, 8, summary.TotalUsed)

	_, err = svc.Consume(teacher.ID, 3, CreditReasonAILesson, "gen-2")
	requireStatus(t, err, 402)

	after, err := svc.Summary(teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.Balance, "a rejected debit leaves the balance alone")
}

func TestBilling_RefundAndGrant(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestBillingService(ds)
	teacher := seedUser(t, ds, "teach", "teacher", "approved")
	require.NoError(t, svc.OpenAccount(teacher.ID))

	_, err := svc.Consume(teacher.ID, 2, CreditReasonAIQuestions, "gen-1")
	require.NoError(t, err)
	require.NoError(t, svc.Refund(teacher.ID, 2, "gen-1"))

	granted, err := svc.Grant(teacher.ID, 15, "semester top-up")
	require.NoError(t, err)
	assert.Equal(t, defaultFreeCredits+15, granted.Balance)

	credits, err := svc.GetCredits(teacher.ID)
	require.NoError(t, err)
	require.Len(t, credits.Transactions, 4)
	assert.Equal(t, CreditReasonGrant, credits.Transactions[0].Reason)
	assert.Equal(t, "semester top-up", credits.Transactions[0].Reference)
	assert.Equal(t, 15, credits.Transactions[0].Amount)
	assert.Equal(t, CreditReasonRefund, credits.Transactions[1].Reason)
}

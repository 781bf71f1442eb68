package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentTemplate(start time.Time) domain.RecurringTemplateInput {
	return domain.RecurringTemplateInput{
		Amount:           dec("3000000"),
		Description:      "Rent",
		JarType:          domain.JarNecessities.Ptr(),
		Type:             domain.Expense,
		SubscriptionType: domain.OneMonth,
		StartDate:        start,
		IsActive:         true,
	}
}

func TestRecurringService_Materialize(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(new(MockSnapshotRepository))
	svc := services.NewRecurringService(sessions, fixedClock())

	tpl, err := svc.CreateTemplate(ctx, verified, rentTemplate(testNow.Add(-24*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(-24*time.Hour).AddDate(0, 0, 30), tpl.EndDate)

	txn, err := svc.Materialize(ctx, verified, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rent", txn.Description)
	assert.Equal(t, testNow, txn.Timestamp)

	templates, err := svc.ListTemplates(ctx, verified)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	require.NotNil(t, templates[0].LastMaterializedAt)
	assert.Equal(t, testNow, *templates[0].LastMaterializedAt)

	_, err = svc.Materialize(ctx, verified, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRecurringService_ExpiredTemplateDeactivates(t *testing.T) {
	ctx := context.Background()
	svc := services.NewRecurringService(newTestSessions(new(MockSnapshotRepository)), fixedClock())

	tpl, err := svc.CreateTemplate(ctx, verified, rentTemplate(testNow.AddDate(0, 0, -40)))
	require.NoError(t, err)

	_, err = svc.Materialize(ctx, verified, tpl.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	templates, err := svc.ListTemplates(ctx, verified)
	require.NoError(t, err)
	assert.False(t, templates[0].IsActive)
}

func TestRecurringService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := services.NewRecurringService(newTestSessions(new(MockSnapshotRepository)), fixedClock())

	tpl, err := svc.CreateTemplate(ctx, verified, rentTemplate(testNow))
	require.NoError(t, err)

	in := rentTemplate(testNow)
	in.SubscriptionType = domain.OneYear
	updated, err := svc.UpdateTemplate(ctx, verified, tpl.ID, in)
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, 365), updated.EndDate)

	missing, err := svc.UpdateTemplate(ctx, verified, "missing", in)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	in.SubscriptionType = "2w"
	_, err = svc.UpdateTemplate(ctx, verified, tpl.ID, in)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, svc.DeleteTemplate(ctx, verified, tpl.ID))
	require.NoError(t, svc.DeleteTemplate(ctx, verified, tpl.ID), "deleting twice is a no-op")
	templates, err := svc.ListTemplates(ctx, verified)
	require.NoError(t, err)
	assert.Empty(t, templates)
}

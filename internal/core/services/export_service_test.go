package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seededExport(t *testing.T) (*services.SessionStore, context.Context) {
	t.Helper()
	ctx := context.Background()
	sessions := newTestSessions(new(MockSnapshotRepository))
	ledgerSvc := services.NewLedgerService(sessions, fixedClock())

	_, err := ledgerSvc.AddTransaction(ctx, verified, incomeInput("1000", nil))
	require.NoError(t, err)
	_, err = ledgerSvc.AddTransaction(ctx, verified, domain.TransactionInput{
		Type:        domain.Expense,
		Amount:      dec("45.5"),
		Description: "lunch, with friends",
		JarType:     domain.JarPlay.Ptr(),
		Timestamp:   testNow.Add(90 * time.Minute),
	})
	require.NoError(t, err)
	return sessions, ctx
}

func TestExportService_CSV(t *testing.T) {
	sessions, ctx := seededExport(t)
	svc := services.NewExportService(sessions, fixedClock())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, verified, &buf))

	want := strings.Join([]string{
		"id,type,amount,description,jar,date",
		`id-002,expense,45.5,"lunch, with friends",PLAY,2026-03-14 11:00`,
		"id-001,income,1000,salary,AUTO,2026-03-14 09:30",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestExportService_CSVUsesClockLocation(t *testing.T) {
	sessions, ctx := seededExport(t)
	hcm := time.FixedZone("ICT", 7*60*60)
	svc := services.NewExportService(sessions, services.WithClock(func() time.Time { return testNow.In(hcm) }))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, verified, &buf))
	assert.Contains(t, buf.String(), "salary,AUTO,2026-03-14 16:30")
}

func TestExportService_XLSX(t *testing.T) {
	sessions, ctx := seededExport(t)
	svc := services.NewExportService(sessions, fixedClock())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(ctx, verified, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "type", "amount", "description", "jar", "date"}, rows[0])
	assert.Equal(t, []string{"id-001", "income", "1000", "salary", "AUTO", "2026-03-14 09:30"}, rows[2])
}

package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/xuri/excelize/v2"
)

const (
	exportDateLayout = "2006-01-02 15:04"
	exportSheetName  = "Transactions"
)

var exportHeader = []string{"id", "type", "amount", "description", "jar", "date"}

type exportService struct {
	BaseService
}

// NewExportService creates the export service. Dates are written in the clock's location.
func NewExportService(sessions *SessionStore, opts ...ServiceOption) portssvc.ExportSvc {
	return &exportService{BaseService: newBaseService(sessions, opts...)}
}

var _ portssvc.ExportSvc = (*exportService)(nil)

func (s *exportService) rows(ctx context.Context, id domain.Identity) ([][]string, error) {
	var txns []domain.Transaction
	if err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		txns = b.Transactions()
		return nil
	}); err != nil {
		return nil, err
	}

	loc := s.Now().Location()
	rows := make([][]string, 0, len(txns))
	for _, txn := range txns {
		rows = append(rows, []string{
			txn.ID,
			string(txn.Type),
			txn.Amount.String(),
			txn.Description,
			domain.JarLabel(txn.JarType),
			txn.Timestamp.In(loc).Format(exportDateLayout),
		})
	}
	return rows, nil
}

func (s *exportService) ExportCSV(ctx context.Context, id domain.Identity, w io.Writer) error {
	rows, err := s.rows(ctx, id)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	s.LogInfo(ctx, "Exported transactions", slog.String("format", "csv"), slog.Int("rows", len(rows)))
	return nil
}

func (s *exportService) ExportXLSX(ctx context.Context, id domain.Identity, w io.Writer) error {
	rows, err := s.rows(ctx, id)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.LogError(ctx, err, "Failed to close workbook")
		}
	}()
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheetName, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write xlsx row %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(exportSheetName, "A", "A", 38)
	_ = f.SetColWidth(exportSheetName, "D", "D", 30)
	_ = f.SetColWidth(exportSheetName, "F", "F", 18)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	s.LogInfo(ctx, "Exported transactions", slog.String("format", "xlsx"), slog.Int("rows", len(rows)))
	return nil
}

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/repository"
	"github.com/tulipbilling/invoicing-api/pkg/apperror"
)

// ExportFormat selects the download encoding.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

func (f ExportFormat) Valid() bool {
	return f == ExportFormatCSV || f == ExportFormatXLSX
}

// ExportFile is a ready-to-download ledger extract.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService produces filtered ledger downloads.
type ExportService struct {
	snapshots repository.SnapshotProvider
	logger    *logrus.Logger
}

// NewExportService creates a new export service
func NewExportService(snapshots repository.SnapshotProvider, logger *logrus.Logger) *ExportService {
	return &ExportService{snapshots: snapshots, logger: logger}
}

// Export renders the filtered ledger in the requested format. Rows keep the
// exact cell values of the remote store so a download round-trips cleanly.
func (s *ExportService) Export(ctx context.Context, filter *LedgerFilter, format ExportFormat) (*ExportFile, error) {
	if !format.Valid() {
		return nil, apperror.NewBadRequestError("Export format must be csv or xlsx")
	}

	snap, err := s.snapshots.Get(ctx)
	if err != nil {
		return nil, apperror.NewLedgerError(err)
	}

	records := make([]entity.InvoiceRecord, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		records = append(records, entity.RecordFromRow(row))
	}
	records = filter.Apply(records)

	s.logger.WithFields(logrus.Fields{
		"format": format,
		"rows":   len(records),
	}).Info("ledger export requested")

	stamp := time.Now().Format("20060102")
	switch format {
	case ExportFormatXLSX:
		data, err := renderXLSX(records)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("invoices_%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		data, err := renderCSV(records)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("invoices_%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	}
}

func renderCSV(records []entity.InvoiceRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(entity.LedgerHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i := range records {
		if err := writer.Write(records[i].ToRow()); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(records []entity.InvoiceRecord) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Invoices"
	file.SetSheetName("Sheet1", sheet)

	for col, name := range entity.LedgerHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := file.SetCellValue(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("write header cell: %w", err)
		}
	}

	for i := range records {
		for col, value := range records[i].ToRow() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("data cell name: %w", err)
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write data cell: %w", err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/tulipbilling/invoicing-api/internal/config"
)

// Gateway implements repository.LedgerGateway against a Google Sheets
// worksheet. The sheet offers no transactions and no locking; callers get
// exactly the read-all / append / update-cell primitives the API exposes.
type Gateway struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewGateway builds a Sheets-backed ledger gateway. Explicit service-account
// JSON takes precedence; otherwise application default credentials apply.
func NewGateway(ctx context.Context, cfg *config.SheetsConfig) (*Gateway, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Gateway{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}, nil
}

// ReadAll returns every row in the sheet, header row included.
func (g *Gateway) ReadAll(ctx context.Context) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.
		Get(g.spreadsheetID, g.sheetName).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRows appends rows after the last non-empty row of the sheet.
func (g *Gateway) AppendRows(ctx context.Context, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}

	_, err := g.svc.Spreadsheets.Values.
		Append(g.spreadsheetID, g.sheetName, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append ledger rows: %w", err)
	}
	return nil
}

// UpdateCell overwrites the cell at the 1-based row and column.
func (g *Gateway) UpdateCell(ctx context.Context, row, col int, value string) error {
	cellRange := fmt.Sprintf("%s!%s%d", g.sheetName, columnLetter(col), row)

	_, err := g.svc.Spreadsheets.Values.
		Update(g.spreadsheetID, cellRange, &sheets.ValueRange{
			Values: [][]interface{}{{value}},
		}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update cell %s: %w", cellRange, err)
	}
	return nil
}

// EnsureHeader overwrites row 1 with expected when the current header
// differs, migrating older sheets forward instead of branching per schema
// version.
func (g *Gateway) EnsureHeader(ctx context.Context, expected []string) error {
	headerRange := fmt.Sprintf("%s!1:1", g.sheetName)
	resp, err := g.svc.Spreadsheets.Values.
		Get(g.spreadsheetID, headerRange).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("read ledger header: %w", err)
	}

	var current []string
	if len(resp.Values) > 0 {
		for _, cell := range resp.Values[0] {
			current = append(current, fmt.Sprint(cell))
		}
	}
	if headerMatches(current, expected) {
		return nil
	}

	cells := make([]interface{}, 0, len(expected))
	for _, col := range expected {
		cells = append(cells, col)
	}
	_, err = g.svc.Spreadsheets.Values.
		Update(g.spreadsheetID, fmt.Sprintf("%s!A1", g.sheetName), &sheets.ValueRange{
			Values: [][]interface{}{cells},
		}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	return nil
}

func headerMatches(current, expected []string) bool {
	if len(current) != len(expected) {
		return false
	}
	for i := range expected {
		if current[i] != expected[i] {
			return false
		}
	}
	return true
}

// columnLetter converts a 1-based column number to its A1-notation letters.
func columnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}

// Package google implements the ledger store on a Google Sheets worksheet,
// the same sheet the household edited by hand before this service existed.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cuentas/internal/core"
	ports "cuentas/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	settings      core.Settings
}

var (
	_ ports.LedgerReader   = (*Client)(nil)
	_ ports.LedgerAppender = (*Client)(nil)
)

// NewFromEnv creates a Sheets-backed ledger store using environment
// variables and Service Account credentials.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_SHEET_NAME (default "Hoja 1"), and one of
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS for auth.
func NewFromEnv(ctx context.Context, settings core.Settings) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Hoja 1"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		settings:      settings,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadAll fetches every ledger row fresh; the engine never works on cached
// history, so each call must reflect the latest write.
func (c *Client) ReadAll(ctx context.Context) ([]core.Entry, error) {
	rows, err := c.readRows(ctx)
	if err != nil {
		return nil, err
	}
	return ports.DecodeRows(c.settings, rows), nil
}

// Append writes the complete updated row set back to the sheet. The
// protocol is a full overwrite of the row range; the row count is re-read
// immediately before writing to narrow the lost-update window. True
// multi-writer safety is out of scope here.
func (c *Client) Append(ctx context.Context, entries ...core.Entry) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if len(entries) == 0 {
		return nil
	}

	existing, err := c.readRows(ctx)
	if err != nil {
		return fmt.Errorf("re-read before overwrite: %w", err)
	}

	values := make([][]any, 0, len(existing)+len(entries))
	for _, r := range existing {
		values = append(values, []any{r.Date, r.Payer, r.Description, r.Amount})
	}
	for _, e := range entries {
		r := ports.EncodeRow(e)
		values = append(values, []any{r.Date, r.Payer, r.Description, r.Amount})
	}

	rng := fmt.Sprintf("%s!A1:D%d", c.sheetName, len(values))
	vr := &gsheet.ValueRange{Values: values}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("overwrite %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Appended entries to sheet",
		"sheet", c.sheetName,
		"appended", len(entries),
		"total_rows", len(values))
	return nil
}

func (c *Client) readRows(ctx context.Context) ([]ports.Row, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:D", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	rows := make([]ports.Row, 0, len(resp.Values))
	for _, raw := range resp.Values {
		rows = append(rows, rowFromCells(raw))
	}
	return rows, nil
}

func rowFromCells(cells []any) ports.Row {
	var r ports.Row
	r.Date = cellString(cells, 0)
	r.Payer = cellString(cells, 1)
	r.Description = cellString(cells, 2)
	r.Amount = cellString(cells, 3)
	return r
}

func cellString(cells []any, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(cells[idx]))
}

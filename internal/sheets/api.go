package sheets

import (
	"context"
)

// SheetsAPI defines the interface for interacting with Google Sheets.
//
// The Google Sheets API (google.golang.org/api/sheets/v4) uses [][]interface{}
// for cell values. Keep interface{} at this boundary and read values back
// through the Cell wrapper.
type SheetsAPI interface {
	// ReadSheet reads values from a sheet range
	ReadSheet(ctx context.Context, spreadsheetID, a1Range string) ([][]interface{}, error)

	// UpdateRange overwrites values in a sheet range
	UpdateRange(ctx context.Context, spreadsheetID, a1Range string, values [][]interface{}) error

	// ClearRange clears all values in a sheet range
	ClearRange(ctx context.Context, spreadsheetID, a1Range string) error

	// CreateSheet adds a tab to the spreadsheet
	CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error

	// SheetExists checks if a tab with the given name exists
	SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error)

	// EnsureSheetCapacity grows a tab to at least the given rows and columns
	EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error
}

package sheets

import (
	"context"
	"errors"
	"strings"
)

// MockSheetsAPI implements SheetsAPI for testing
type MockSheetsAPI struct {
	sheets       map[string]bool            // Track which sheets exist
	data         map[string][][]interface{} // Store sheet data
	shouldError  bool
	createCalls  int
	updateCalls  int
	lastCapacity struct {
		rows, cols int
	}
}

func NewMockSheetsAPI() *MockSheetsAPI {
	return &MockSheetsAPI{
		sheets: make(map[string]bool),
		data:   make(map[string][][]interface{}),
	}
}

var errMockSheets = errors.New("mock sheets error")

// sheetOf extracts the unquoted tab name from an A1 range
func sheetOf(range_ string) string {
	sheetName := range_
	if i := strings.Index(range_, "!"); i != -1 {
		sheetName = range_[:i]
	}
	return strings.Trim(sheetName, "'\"")
}

func (m *MockSheetsAPI) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	if m.shouldError {
		return nil, errMockSheets
	}
	if data, exists := m.data[sheetOf(range_)]; exists {
		return data, nil
	}
	return [][]interface{}{}, nil
}

func (m *MockSheetsAPI) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	if m.shouldError {
		return errMockSheets
	}
	m.updateCalls++
	m.data[sheetOf(range_)] = values
	return nil
}

func (m *MockSheetsAPI) ClearRange(ctx context.Context, spreadsheetID, range_ string) error {
	if m.shouldError {
		return errMockSheets
	}
	delete(m.data, sheetOf(range_))
	return nil
}

func (m *MockSheetsAPI) CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	if m.shouldError {
		return errMockSheets
	}
	m.createCalls++
	m.sheets[sheetName] = true
	return nil
}

func (m *MockSheetsAPI) SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	if m.shouldError {
		return false, errMockSheets
	}
	return m.sheets[sheetName], nil
}

func (m *MockSheetsAPI) EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error {
	if m.shouldError {
		return errMockSheets
	}
	m.lastCapacity.rows = requiredRows
	m.lastCapacity.cols = requiredCols
	return nil
}

func (m *MockSheetsAPI) SetError(shouldError bool) {
	m.shouldError = shouldError
}

func (m *MockSheetsAPI) GetSheetData(sheetName string) [][]interface{} {
	return m.data[sheetName]
}

package sheets

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Extra rows and columns added whenever a tab has to grow
const (
	rowHeadroom = 50
	colHeadroom = 4
)

// Client implements SheetsAPI on top of the Google Sheets v4 service
type Client struct {
	service *sheets.Service
}

// NewClient authenticates with a service account credentials file
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{service: service}, nil
}

func (c *Client) ReadSheet(ctx context.Context, spreadsheetID, a1Range string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, a1Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a1Range, err)
	}
	return resp.Values, nil
}

// UpdateRange writes values as if typed by a user, so numbers and dates keep
// their cell types
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, a1Range string, values [][]interface{}) error {
	call := c.service.Spreadsheets.Values.Update(spreadsheetID, a1Range, &sheets.ValueRange{Values: values})
	if _, err := call.ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to write %s: %w", a1Range, err)
	}
	return nil
}

func (c *Client) ClearRange(ctx context.Context, spreadsheetID, a1Range string) error {
	call := c.service.Spreadsheets.Values.Clear(spreadsheetID, a1Range, &sheets.ClearValuesRequest{})
	if _, err := call.Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", a1Range, err)
	}
	return nil
}

func (c *Client) CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: sheetName},
		},
	})
}

func (c *Client) SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	props, err := c.tabProperties(ctx, spreadsheetID, sheetName)
	if err != nil {
		return false, err
	}
	return props != nil, nil
}

// EnsureSheetCapacity grows a tab that is smaller than required. Growth
// includes headroom so a lengthening WR history does not resize every export.
func (c *Client) EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error {
	props, err := c.tabProperties(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	if props == nil {
		return fmt.Errorf("sheet %s not found", sheetName)
	}

	var currentRows, currentCols int
	if props.GridProperties != nil {
		currentRows = int(props.GridProperties.RowCount)
		currentCols = int(props.GridProperties.ColumnCount)
	}

	rows, cols, grow := GridGrowth(currentRows, currentCols, requiredRows, requiredCols)
	if !grow {
		return nil
	}

	err = c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId: props.SheetId,
				GridProperties: &sheets.GridProperties{
					RowCount:    int64(rows),
					ColumnCount: int64(cols),
				},
			},
			Fields: "gridProperties.rowCount,gridProperties.columnCount",
		},
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("sheet_name", sheetName).
		Int("rows", rows).
		Int("cols", cols).
		Msg("Grew sheet grid")
	return nil
}

// GridGrowth returns the grid size a tab needs to hold requiredRows by
// requiredCols. Only dimensions that are too small change.
// Pure function: No I/O
func GridGrowth(currentRows, currentCols, requiredRows, requiredCols int) (rows, cols int, grow bool) {
	rows, cols = currentRows, currentCols
	if requiredRows > currentRows {
		rows = requiredRows + rowHeadroom
		grow = true
	}
	if requiredCols > currentCols {
		cols = requiredCols + colHeadroom
		grow = true
	}
	return rows, cols, grow
}

// tabProperties returns the properties of a tab, or nil when there is none
// with that title
func (c *Client) tabProperties(ctx context.Context, spreadsheetID, sheetName string) (*sheets.SheetProperties, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to load spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetName {
			return sheet.Properties, nil
		}
	}
	return nil, nil
}

func (c *Client) batchUpdate(ctx context.Context, spreadsheetID string, requests ...*sheets.Request) error {
	body := &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}
	if _, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, body).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to update spreadsheet %s: %w", spreadsheetID, err)
	}
	return nil
}

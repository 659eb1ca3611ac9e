package rdbms

import (
	"fmt"

	"github.com/harborhealth/cdcdemo/logger"
	"github.com/harborhealth/cdcdemo/rdbms/shared"
	"golang.org/x/net/context"
)

// SqlQuery executes sqltext against db and streams the header and each row
// to the supplied SqlResultHandler. Values are scanned dynamically so any
// projection works.
func SqlQuery(ctx context.Context, log logger.Logger, db shared.Connector, sqltext string, i shared.SqlResultHandler) error {
	rows, err := db.QueryContext(ctx, sqltext)
	if err != nil {
		return fmt.Errorf("error during database query using SQL: '%v': %w", sqltext, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	log.Debug("fetching column types...")
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return fmt.Errorf("error fetching column types: %w", err)
	}
	lenColTypes := len(colTypes)
	scanPtrs := make([]interface{}, lenColTypes, lenColTypes)
	scanVals := make([]interface{}, lenColTypes, lenColTypes)
	for idx := 0; idx < lenColTypes; idx++ { // for each column...
		scanPtrs[idx] = &scanVals[idx]
	}
	// Build and send the header.
	header := make([]interface{}, lenColTypes, lenColTypes)
	for idx := range colTypes {
		header[idx] = colTypes[idx].Name()
	}
	if err = i.HandleHeader(header); err != nil {
		return err
	}
	// Send the rows via callback interface.
	for rows.Next() {
		select { // quit if asked to, else continue...
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := rows.Scan(scanPtrs...); err != nil {
			return fmt.Errorf("error scanning row: %v", err)
		}
		row := make([]interface{}, lenColTypes, lenColTypes)
		for idx := range scanVals { // for each value...
			row[idx] = scanVals[idx]
		}
		if err = i.HandleRow(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

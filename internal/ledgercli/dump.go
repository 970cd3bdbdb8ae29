package ledgercli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row is one posting from the engine's csv dump. The engine emits exactly
// these eight columns, in this order, with no header line.
type Row struct {
	Date       string
	Code       string
	Payee      string
	Account    string
	Currency   string
	Amount     string
	Reconciled string
	Note       string
}

const dumpColumns = 8

// ParseDump parses the raw text of a `csv` subcommand invocation.
func ParseDump(text string) ([]Row, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = dumpColumns

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv dump: %w", err)
		}

		rows = append(rows, Row{
			Date:       record[0],
			Code:       record[1],
			Payee:      record[2],
			Account:    record[3],
			Currency:   record[4],
			Amount:     record[5],
			Reconciled: record[6],
			Note:       record[7],
		})
	}

	return rows, nil
}

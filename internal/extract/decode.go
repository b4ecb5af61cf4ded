package extract

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/retailworks/retailpulse/internal/record"
)

// decodeCSV reads a header row plus data rows into raw string cells.
func decodeCSV(r io.Reader) ([]record.RawRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var rows []record.RawRow
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row := make(record.RawRow, len(header))
		for i, col := range header {
			if i < len(cells) {
				row[col] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeJSON reads an array of flat objects, rendering scalars as strings so
// the schema validator owns all type coercion.
func decodeJSON(r io.Reader) ([]record.RawRow, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("decode json records: %w", err)
	}

	rows := make([]record.RawRow, 0, len(objects))
	for _, obj := range objects {
		row := make(record.RawRow, len(obj))
		for key, value := range obj {
			switch v := value.(type) {
			case nil:
				row[key] = ""
			case string:
				row[key] = v
			case json.Number:
				row[key] = v.String()
			case bool:
				row[key] = strconv.FormatBool(v)
			default:
				row[key] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

package rt

import (
	"strings"

	"github.com/rtboard/backend/internal/types"
)

// recordSeparator splits the upstream response into per-ticket blocks.
const recordSeparator = "--"

// ParseRecords turns the upstream search response into a table. Records
// are separated by a literal "--"; each line of a record is a
// "Key: Value" pair. Lines without ": " are skipped without error, and
// blocks that yield no pairs are dropped, so an empty or all-noise
// response parses to an empty table.
func ParseRecords(text string) types.Table {
	var table types.Table
	for _, block := range strings.Split(text, recordSeparator) {
		record := types.Record{}
		for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
			key, value, ok := strings.Cut(line, ": ")
			if !ok {
				continue
			}
			record[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		if len(record) > 0 {
			table = append(table, record)
		}
	}
	return table
}

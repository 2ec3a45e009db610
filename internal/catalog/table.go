package catalog

import (
	"log"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

var ErrNoRows = errors.New("no rows parsed")

// Record is a single spreadsheet row, keyed by normalized header name.
type Record map[string]string

// Get returns the value of field, or "" when the field is absent.
func (r Record) Get(field string) string {
	if r == nil {
		return ""
	}
	return r[field]
}

// Table maps the value of the key field to the record of that row.
type Table struct {
	keyField string
	headers  []string
	records  map[string]Record
}

// Empty returns a table with no headers and no records.
func Empty() *Table {
	return &Table{records: map[string]Record{}}
}

func (t *Table) Get(key string) (Record, bool) {
	record, ok := t.records[key]
	return record, ok
}

func (t *Table) Len() int {
	return len(t.records)
}

// Keys returns the record keys in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.records))
	for key := range t.records {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (t *Table) Headers() []string {
	return slices.Clone(t.headers)
}

func (t *Table) KeyField() string {
	return t.keyField
}

// Records returns the underlying map. Callers must not modify it.
func (t *Table) Records() map[string]Record {
	return t.records
}

func NormalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// ResolveKeyField picks the column used as the record key: "name", then
// "title", otherwise the first column. fallback reports the last case.
func ResolveKeyField(headers []string) (field string, fallback bool) {
	if slices.Contains(headers, "name") {
		return "name", false
	}
	if slices.Contains(headers, "title") {
		return "title", false
	}
	if len(headers) == 0 {
		return "", true
	}
	return headers[0], true
}

// Build turns parsed rows into a Table. The first row holds the headers.
// Short rows are padded, cells beyond the header count are ignored, rows
// without a key are skipped and the last row with a given key wins.
func Build(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = NormalizeHeader(header)
	}

	keyField, fallback := ResolveKeyField(headers)
	if fallback {
		log.Printf("WARNING: CSV has no 'name' or 'title' header, using first column %q as the key", keyField)
	}

	table := &Table{
		keyField: keyField,
		headers:  headers,
		records:  make(map[string]Record, len(rows)-1),
	}

	for _, row := range rows[1:] {
		record := make(Record, len(headers))
		for i, header := range headers {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			record[header] = value
		}

		key := record[keyField]
		if key == "" {
			continue
		}
		table.records[key] = record
	}

	return table, nil
}

// Package contacts maps Google Contacts CSV exports into stored contact
// records.
package contacts

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"homeboard/internal/models"
)

// InsertFunc writes one contact. Import calls it once per usable row.
type InsertFunc func(ctx context.Context, contact *models.Contact) error

// Summary is the single end-of-batch result: rows already inserted stay
// even when later rows fail.
type Summary struct {
	Imported int `json:"imported"`
	Failed   int `json:"failed"`
}

// Import parses the export, inserts one record per valid row sequentially
// and counts the rest as failures. A row missing both a usable name and a
// phone number is skipped.
func Import(ctx context.Context, r io.Reader, insert InsertFunc) (Summary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Summary{}, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var sum Summary
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			sum.Failed++
			continue
		}

		contact, ok := mapRow(cols, row)
		if !ok {
			sum.Failed++
			continue
		}
		if err := insert(ctx, contact); err != nil {
			sum.Failed++
			continue
		}
		sum.Imported++
	}
	return sum, nil
}

func field(cols map[string]int, row []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// mapRow folds the known export columns into the contact shape. Reports
// ok=false when the row has neither a name nor a phone to go by.
func mapRow(cols map[string]int, row []string) (*models.Contact, bool) {
	parts := make([]string, 0, 3)
	for _, col := range []string{"First Name", "Middle Name", "Last Name"} {
		if v := field(cols, row, col); v != "" {
			parts = append(parts, v)
		}
	}
	name := strings.Join(parts, " ")
	phone := field(cols, row, "Phone 1 - Value")

	if name == "" || phone == "" {
		return nil, false
	}

	address := field(cols, row, "Address 1 - Formatted")
	if address == "" {
		addrParts := make([]string, 0, 5)
		for _, col := range []string{
			"Address 1 - Street",
			"Address 1 - City",
			"Address 1 - Region",
			"Address 1 - Postal Code",
			"Address 1 - Country",
		} {
			if v := field(cols, row, col); v != "" {
				addrParts = append(addrParts, v)
			}
		}
		address = strings.Join(addrParts, ", ")
	}

	return &models.Contact{
		Name:         name,
		Phone:        phone,
		Email:        field(cols, row, "E-mail 1 - Value"),
		Organization: field(cols, row, "Organization Name"),
		Title:        field(cols, row, "Organization Title"),
		Address:      address,
		Notes:        field(cols, row, "Notes"),
		PhotoURL:     field(cols, row, "Photo"),
	}, true
}

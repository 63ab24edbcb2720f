package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// Row is one parsed import line. Recognized columns land in named fields;
// every other column is carried in Metadata under its normalized header.
type Row struct {
	Line       int
	Name       string
	Email      string
	Phone      string
	Gender     string
	Age        *int
	Ward       string
	Stake      string
	IsPaid     *bool
	GroupName  string
	RoomNumber string
	Metadata   map[string]string
}

// normalizeHeader maps "Group Name", "group-name" and "GROUP_NAME" all to
// "group_name" so exported spreadsheets match regardless of header casing.
func normalizeHeader(h string) string {
	return strings.ReplaceAll(slug.Make(h), "-", "_")
}

// ParseRows reads an entire CSV document. The first record is the header;
// unknown columns are preserved as metadata rather than rejected.
func ParseRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = normalizeHeader(h)
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := Row{Line: line, Metadata: map[string]string{}}
		for i, value := range record {
			if i >= len(columns) {
				break
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			switch columns[i] {
			case "name", "full_name":
				row.Name = value
			case "email":
				row.Email = strings.ToLower(value)
			case "phone":
				row.Phone = value
			case "gender":
				row.Gender = value
			case "age":
				if age, err := strconv.Atoi(value); err == nil {
					row.Age = &age
				}
			case "ward":
				row.Ward = value
			case "stake":
				row.Stake = value
			case "is_paid", "paid":
				if paid, err := strconv.ParseBool(value); err == nil {
					row.IsPaid = &paid
				}
			case "group_name", "group":
				row.GroupName = value
			case "room_number", "room":
				row.RoomNumber = value
			default:
				row.Metadata[columns[i]] = value
			}
		}
		if len(row.Metadata) == 0 {
			row.Metadata = nil
		}
		rows = append(rows, row)
	}
	return rows, nil
}

package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRowsRecognizedColumns(t *testing.T) {
	csv := strings.Join([]string{
		"Name,Email,Phone,Gender,Age,Ward,Stake,Group Name,Room Number,Is Paid",
		"Ana Silva,ANA@Example.com,555-0101,F,24,First Ward,North Stake,Alpha,101,true",
	}, "\n")

	rows, err := ParseRows(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	require.Equal(t, 2, row.Line)
	require.Equal(t, "Ana Silva", row.Name)
	require.Equal(t, "ana@example.com", row.Email)
	require.Equal(t, "555-0101", row.Phone)
	require.NotNil(t, row.Age)
	require.Equal(t, 24, *row.Age)
	require.Equal(t, "Alpha", row.GroupName)
	require.Equal(t, "101", row.RoomNumber)
	require.NotNil(t, row.IsPaid)
	require.True(t, *row.IsPaid)
	require.Nil(t, row.Metadata)
}

func TestParseRowsHeaderVariants(t *testing.T) {
	csv := strings.Join([]string{
		"FULL_NAME,email,group,room",
		"Ben,ben@example.com,Beta,202",
	}, "\n")

	rows, err := ParseRows(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, "Ben", rows[0].Name)
	require.Equal(t, "Beta", rows[0].GroupName)
	require.Equal(t, "202", rows[0].RoomNumber)
}

func TestParseRowsUnknownColumnsBecomeMetadata(t *testing.T) {
	csv := strings.Join([]string{
		"Name,Email,T-Shirt Size,Dietary Notes",
		"Cara,cara@example.com,M,vegetarian",
	}, "\n")

	rows, err := ParseRows(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"t_shirt_size":  "M",
		"dietary_notes": "vegetarian",
	}, rows[0].Metadata)
}

func TestParseRowsEmptyAndShortValues(t *testing.T) {
	csv := strings.Join([]string{
		"Name,Email,Age",
		"Dan,dan@example.com,",
		",missing-name@example.com,30",
		"Eve,eve@example.com,not-a-number",
	}, "\n")

	rows, err := ParseRows(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Nil(t, rows[0].Age)
	require.Empty(t, rows[1].Name)
	require.Nil(t, rows[2].Age)
}

func TestNormalizeHeader(t *testing.T) {
	require.Equal(t, "group_name", normalizeHeader("Group Name"))
	require.Equal(t, "group_name", normalizeHeader("group-name"))
	require.Equal(t, "group_name", normalizeHeader("GROUP_NAME"))
	require.Equal(t, "room_number", normalizeHeader("  Room Number "))
}

package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/records"
)

const longID = "0001234567890123456"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "roster.csv", "\xEF\xBB\xBFFirst Name,Last Name,Email,Member Card ID,Store\n"+
		"Jane,Doe,j@x.com,"+longID+",North\n"+
		"John,Smith\n"+
		",,,,\n"+
		"\n")

	ds, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"First Name", "Last Name", "Email", "Member Card ID", "Store"}, ds.Header)
	require.Equal(t, 2, ds.Len(), "trailing blank rows are dropped")
	assert.Equal(t, longID, ds.Records[0].MemberID)
	assert.Equal(t, "North", ds.Records[0].Extra["Store"])
	assert.Equal(t, "John", ds.Records[1].FirstName)
	assert.Empty(t, ds.Records[1].MemberID, "short rows are padded")
}

func TestLoadMissingColumns(t *testing.T) {
	path := writeFile(t, "roster.csv", "Given,Surname,Email,Card\nJane,Doe,j@x.com,X1\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	mce, ok := errors.IsMissingColumns(err)
	require.True(t, ok)
	assert.Equal(t, []string{"First Name", "Last Name", "Member Card ID"}, mce.Missing)
	assert.Equal(t, []string{"Given", "Surname", "Email", "Card"}, mce.Available)

	ds, err := Load(path, WithColumnMapping(map[string]string{
		constants.ColumnFirstName: "Given",
		constants.ColumnLastName:  "Surname",
		constants.ColumnMemberID:  "Card",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Jane", ds.Records[0].FirstName)
	assert.Equal(t, "X1", ds.Records[0].MemberID)
	assert.Equal(t, []string{"First Name", "Last Name", "Email", "Member Card ID"}, ds.Header)
}

func TestLoadRequiredColumnsWithoutEmail(t *testing.T) {
	path := writeFile(t, "roster.csv", "First Name,Last Name,Member Card ID\nJane,Doe,X1\n")

	_, err := Load(path)
	mce, ok := errors.IsMissingColumns(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Email"}, mce.Missing)

	ds, err := Load(path, WithRequiredColumns(records.RequiredColumns(false)))
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("legacy xls", func(t *testing.T) {
		_, err := Load(writeFile(t, "roster.xls", "binary"))
		var pe *errors.ParseError
		require.ErrorAs(t, err, &pe)
		assert.True(t, errors.IsUnsupportedFormat(err))
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "roster.txt", "First Name"))
		assert.True(t, errors.IsUnsupportedFormat(err))
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Load(writeFile(t, "roster.csv", ""))
		var pe *errors.ParseError
		assert.ErrorAs(t, err, &pe)
	})

	t.Run("empty mapping column", func(t *testing.T) {
		_, err := Load(writeFile(t, "roster.csv", "a\n"), WithColumnMapping(map[string]string{"First Name": ""}))
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestXLSXRoundTrip(t *testing.T) {
	header := []string{"First Name", "Last Name", "Email", "Member Card ID", "Phone"}
	ds := records.New(header, [][]string{
		{"Jane", "Doe", "j@x.com", longID, "555-0100"},
		{"John", "Smith", "", "", ""},
	})

	path := filepath.Join(t.TempDir(), "out", "processed.xlsx")
	require.NoError(t, Write(path, ds))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, header, got.Header)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, longID, got.Records[0].MemberID)
	assert.Equal(t, "555-0100", got.Records[0].Extra["Phone"])

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	cellType, err := f.GetCellType(constants.DefaultSheetName, "D2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeNumber, cellType, "identifier is stored as text")
}

func TestLoadXLSXNumericIdentifier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"First Name", "Last Name", "Email", "Member Card ID"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Jane", "Doe", "j@x.com", int64(1234567890123456789)}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1234567890123456789", ds.Records[0].MemberID)
}

func TestWriteTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")

	err := WriteTables(path,
		Table{Name: "Roster", Header: []string{"First Name"}, Rows: [][]string{{"Jane"}}},
		Table{Name: constants.ChangesSheetName, Header: []string{"Match Type", "Member ID"}, Rows: [][]string{{"Name", longID}}},
	)
	require.NoError(t, err)

	header, err := ReadHeader(path, WithSheet(constants.ChangesSheetName))
	require.NoError(t, err)
	assert.Equal(t, []string{"Match Type", "Member ID"}, header)

	_, err = ReadHeader(path, WithSheet("Missing"))
	assert.True(t, errors.IsNotFound(err))

	err = WriteTables(filepath.Join(dir, "two.csv"), Table{}, Table{})
	assert.True(t, errors.IsValidationError(err))

	assert.True(t, errors.IsValidationError(WriteTables(path)))
}

func TestWriteTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changes.csv")
	require.NoError(t, WriteTable(path, "ignored", []string{"Row", "Email"}, [][]string{{"2", "a,b@x.com"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Row,Email\n2,\"a,b@x.com\"\n", string(data))
}

func TestResolve(t *testing.T) {
	header, err := Resolve("", []string{" First Name ", "Last", "Member Card ID"}, records.RequiredColumns(false),
		map[string]string{"Last Name": "Last"})
	require.NoError(t, err)
	assert.Equal(t, []string{"First Name", "Last Name", "Member Card ID"}, header)

	_, err = Resolve("in.csv", []string{"First Name"}, records.RequiredColumns(false),
		map[string]string{"Last Name": "Surname"})
	mce, ok := errors.IsMissingColumns(err)
	require.True(t, ok)
	assert.Equal(t, "missing required columns: Last Name, Member Card ID in in.csv", mce.Error())
}

func TestResolveRejectsConflictingMapping(t *testing.T) {
	raw := []string{"First Name", "Last Name", "Email", "Member Card ID", "Card #"}

	tests := []struct {
		name    string
		mapping map[string]string
	}{
		{
			name:    "target column already present",
			mapping: map[string]string{constants.ColumnMemberID: "Card #"},
		},
		{
			name: "file column mapped twice",
			mapping: map[string]string{
				constants.ColumnFirstName: "Card #",
				constants.ColumnLastName:  "Card #",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve("in.csv", raw, records.RequiredColumns(true), tt.mapping)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			_, missing := errors.IsMissingColumns(err)
			assert.False(t, missing)
		})
	}
}

func TestLoadRejectsDuplicateIdentifierColumn(t *testing.T) {
	path := writeFile(t, "roster.csv", "First Name,Last Name,Email,Member Card ID,Card #\nA,B,a@x,,777\n")

	_, err := Load(path, WithColumnMapping(map[string]string{constants.ColumnMemberID: "Card #"}))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestResolveTrimsMappingValues(t *testing.T) {
	header, err := Resolve("", []string{"First Name", "Last Name", "E-mail", "Member Card ID"},
		records.RequiredColumns(true), map[string]string{constants.ColumnEmail: " E-mail "})
	require.NoError(t, err)
	assert.Equal(t, []string{"First Name", "Last Name", "Email", "Member Card ID"}, header)

	_, err = Load(writeFile(t, "roster.csv", "a\n"), WithColumnMapping(map[string]string{"Email": "  "}))
	assert.True(t, errors.IsValidationError(err))
}

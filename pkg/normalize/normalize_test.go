package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/roster/pkg/records"
)

func TestIsAbsent(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"empty", "", true},
		{"spaces", "  ", true},
		{"tabs and newline", "\t\n", true},
		{"nan", "nan", true},
		{"None", "None", true},
		{"NaN", "NaN", true},
		{"pandas NA", "<NA>", true},
		{"NaT", "NaT", true},
		{"padded sentinel", " nan ", true},
		{"digits", "0001234567890123456", false},
		{"zero", "0", false},
		{"alphanumeric", "ID7", false},
		{"sentinel inside value", "nano", false},
		{"uppercase NONE", "NONE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAbsent(tt.value))
			assert.Equal(t, !tt.want, HasIdentifier(tt.value))
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{"  Jane ", "JOHN", "mIxEd CaSe", "", "  ", "José", "o'BRIEN"}
	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "Text(%q)", in)
	}
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, "jane doe", NameKey("Jane", "Doe"))
	assert.Equal(t, NameKey("Jane", "Doe"), NameKey("  JANE", "doe  "))
	assert.NotEqual(t, NameKey("José", "Doe"), NameKey("Jose", "Doe"))
	assert.Equal(t, " ", NameKey("", ""))
}

func TestEmailKey(t *testing.T) {
	key, ok := EmailKey("  J@X.com ")
	assert.True(t, ok)
	assert.Equal(t, "j@x.com", key)

	for _, absent := range []string{"", " ", "nan", "None"} {
		key, ok := EmailKey(absent)
		assert.False(t, ok, "EmailKey(%q)", absent)
		assert.Empty(t, key)
	}
}

func TestHasName(t *testing.T) {
	tests := []struct {
		first, last string
		want        bool
	}{
		{"Jane", "Doe", true},
		{" J. ", "Doe", true},
		{"", "Doe", false},
		{"Jane", "  ", false},
		{"nan", "Doe", false},
		{"", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasName(tt.first, tt.last), "HasName(%q, %q)", tt.first, tt.last)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(records.Record{
		FirstName: " Jane",
		LastName:  "DOE ",
		Email:     "J@X.com",
		MemberID:  "  ",
	})

	assert.Equal(t, Normalized{
		NameKey:  "jane doe",
		HasName:  true,
		EmailKey: "j@x.com",
		HasEmail: true,
		HasID:    false,
	}, got)
}

func TestNormalizeWithoutName(t *testing.T) {
	got := Normalize(records.Record{LastName: "Smith", Email: "nan", MemberID: "C1"})

	assert.False(t, got.HasName)
	assert.Equal(t, " smith", got.NameKey)
	assert.False(t, got.HasEmail)
	assert.True(t, got.HasID)
}

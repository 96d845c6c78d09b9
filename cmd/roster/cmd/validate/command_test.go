package validate

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster"
	"github.com/agentstation/roster/internal/cmd/application"
	"github.com/agentstation/roster/pkg/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, mock *application.Mock, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewCommand(mock)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		args        []string
		wantMissing []string
		wantOutput  string
	}{
		{
			name:       "all columns present",
			content:    "First Name,Last Name,Email,Member Card ID\n",
			wantOutput: "is ready to merge",
		},
		{
			name:        "missing columns",
			content:     "First Name,Surname,Email,Card\n",
			wantMissing: []string{"Last Name", "Member Card ID"},
			wantOutput:  "--map",
		},
		{
			name:       "mapped columns",
			content:    "First Name,Surname,Email,Card\n",
			args:       []string{"--map", "Last Name=Surname", "--map", "member card id=Card"},
			wantOutput: "is ready to merge",
		},
		{
			name:       "name-only does not need email",
			content:    "First Name,Last Name,Member Card ID\n",
			args:       []string{"--pipeline", "name-only"},
			wantOutput: "is ready to merge",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			stdout, stderr, err := run(t, &application.Mock{}, append([]string{path}, tt.args...)...)

			if tt.wantMissing != nil {
				mce, ok := errors.IsMissingColumns(err)
				require.True(t, ok, "expected missing columns error, got %v", err)
				assert.Equal(t, tt.wantMissing, mce.Missing)
				assert.Contains(t, stdout, "missing")
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, stdout, "Required columns for")
			assert.Contains(t, stderr, "Available columns:")
			assert.Contains(t, stderr, tt.wantOutput)
		})
	}
}

func TestValidateJSON(t *testing.T) {
	path := writeFile(t, "First Name,Surname,Email,Member Card ID\n")
	mock := &application.Mock{OutputFormatFunc: func() string { return "json" }}

	stdout, _, err := run(t, mock, path)
	require.Error(t, err)

	var v roster.Validation
	require.NoError(t, json.Unmarshal([]byte(stdout), &v))
	assert.Equal(t, []string{"Last Name"}, v.Missing)
	assert.Equal(t, []string{"First Name", "Surname", "Email", "Member Card ID"}, v.Available)
	assert.False(t, v.Valid())
}

func TestValidateUnreadableFile(t *testing.T) {
	_, _, err := run(t, &application.Mock{}, filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, _, err = run(t, &application.Mock{}, filepath.Join(t.TempDir(), "legacy.xls"))
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedFormat(err))
}

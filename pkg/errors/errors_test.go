package errors_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	pkgerrors "github.com/agentstation/roster/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "sheet",
			ID:       "Members",
		}
		assert.Equal(t, "sheet Members not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("sheet", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "pipeline",
			Message: "unknown pipeline",
		}
		assert.Equal(t, "validation failed for field pipeline: unknown pipeline", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid configuration",
		}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestMissingColumnsError(t *testing.T) {
	err := pkgerrors.NewMissingColumnsError("roster.csv",
		[]string{"Member Card ID", "Email"},
		[]string{"First Name", "Last Name", "Card #"})

	assert.Equal(t, "missing required columns: Member Card ID, Email in roster.csv", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))

	wrapped := fmt.Errorf("loading: %w", err)
	mce, ok := pkgerrors.IsMissingColumns(wrapped)
	require.True(t, ok)
	assert.Equal(t, []string{"First Name", "Last Name", "Card #"}, mce.Available)

	_, ok = pkgerrors.IsMissingColumns(errors.New("other"))
	assert.False(t, ok)
}

func TestConfigError(t *testing.T) {
	base := errors.New("bad value")
	err := pkgerrors.NewConfigError("pipeline", "unknown pipeline four-pass", base)
	assert.Equal(t, "configuration error in pipeline: unknown pipeline four-pass", err.Error())
	assert.ErrorIs(t, err, base)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestIOError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		err := pkgerrors.NewIOError("read", "/tmp/roster.xlsx", os.ErrNotExist)
		assert.Contains(t, err.Error(), "read")
		assert.Contains(t, err.Error(), "/tmp/roster.xlsx")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("without path", func(t *testing.T) {
		err := &pkgerrors.IOError{Operation: "write", Message: "disk full"}
		assert.Equal(t, "IO error during write: disk full", err.Error())
	})
}

func TestParseError(t *testing.T) {
	t.Run("with location", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "csv",
			File:    "roster.csv",
			Line:    4,
			Column:  2,
			Message: "bare quote",
		}
		assert.Equal(t, "parse error in csv at roster.csv:4:2: bare quote", err.Error())
	})

	t.Run("unsupported format unwraps", func(t *testing.T) {
		err := pkgerrors.NewParseError("xls", "old.xls", "legacy workbooks are not supported", pkgerrors.ErrUnsupportedFormat)
		assert.Equal(t, "parse error in xls file old.xls: legacy workbooks are not supported", err.Error())
		assert.True(t, pkgerrors.IsUnsupportedFormat(err))
	})
}

func TestResourceError(t *testing.T) {
	base := errors.New("boom")
	err := pkgerrors.NewResourceError("load", "roster", "members.csv", base)
	assert.Equal(t, "failed to load roster members.csv: boom", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapResource("load", "roster", "", nil))
	assert.NoError(t, pkgerrors.WrapParse("csv", "x", nil))
	assert.NoError(t, pkgerrors.WrapValidation("field", nil))

	base := errors.New("boom")
	assert.ErrorIs(t, pkgerrors.WrapIO("read", "x", base), base)
	assert.ErrorIs(t, pkgerrors.WrapParse("csv", "x", base), base)
	assert.True(t, pkgerrors.IsValidationError(pkgerrors.WrapValidation("field", base)))
}

func TestIsCanceled(t *testing.T) {
	err := fmt.Errorf("%w: %w", pkgerrors.ErrCanceled, errors.New("context canceled"))
	assert.True(t, pkgerrors.IsCanceled(err))
	assert.False(t, pkgerrors.IsCanceled(errors.New("other")))
}

package cmdutil

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/pkg/errors"
)

func TestParseColumnMappings(t *testing.T) {
	mapping, err := ParseColumnMappings([]string{
		"member card id=Card #",
		" First Name = Given ",
		"Email=E-mail=Primary",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Member Card ID": "Card #",
		"First Name":     "Given",
		"Email":          "E-mail=Primary",
	}, mapping)
}

func TestParseColumnMappingsErrors(t *testing.T) {
	for _, value := range []string{"First Name", "=Given", "First Name=", "Phone=Mobile"} {
		t.Run(value, func(t *testing.T) {
			_, err := ParseColumnMappings([]string{value})
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestRosterFlagsOptions(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := AddRosterFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--pipeline", "two-pass",
		"--email-policy", "consuming",
		"--map", "Last Name=Surname",
	}))

	opts, err := flags.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	flags.Pipeline = "sideways"
	_, err = flags.Options()
	assert.True(t, errors.IsValidationError(err))
}

func TestRosterFlagsEmpty(t *testing.T) {
	opts, err := (&RosterFlags{}).Options()
	require.NoError(t, err)
	assert.Empty(t, opts)
}

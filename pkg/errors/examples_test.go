package errors_test

import (
	"fmt"

	"github.com/agentstation/roster/pkg/errors"
)

// Example demonstrates reacting to a missing-columns failure by offering a mapping.
func Example() {
	var err error = errors.NewMissingColumnsError("", []string{"Member Card ID"}, []string{"First Name", "Last Name", "Card #"})

	if mce, ok := errors.IsMissingColumns(err); ok {
		fmt.Println(mce.Error())
		fmt.Println("available:", mce.Available)
	}

	// Output:
	// missing required columns: Member Card ID
	// available: [First Name Last Name Card #]
}

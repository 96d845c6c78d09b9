package constants_test

import (
	"fmt"

	"github.com/agentstation/roster/pkg/constants"
)

// Example demonstrates converting a record position into a spreadsheet row number.
func Example() {
	position := 0
	fmt.Printf("record %d is on row %d\n", position, position+constants.RowOffset)
	fmt.Printf("required: %s, %s, %s\n", constants.ColumnFirstName, constants.ColumnLastName, constants.ColumnMemberID)

	// Output:
	// record 0 is on row 2
	// required: First Name, Last Name, Member Card ID
}

package workflow

import "fmt"

// GenerateCaseID generates a case ID from the current max number.
// The format is APP-XXXX where XXXX is a zero-padded 4-digit number.
func GenerateCaseID(currentMax int) string {
	return fmt.Sprintf("APP-%04d", currentMax+1)
}

// ParseCaseNumber extracts the numeric portion from a case ID.
// Returns -1 if the ID format is invalid.
func ParseCaseNumber(id string) int {
	var num int
	_, err := fmt.Sscanf(id, "APP-%d", &num)
	if err != nil {
		return -1
	}
	return num
}

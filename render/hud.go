package render

import "fmt"

// HUDLines returns the overlay text for the given hit count.
func HUDLines(hits int) []string {
	return []string{
		fmt.Sprintf("Hit: %d", hits),
		"Timer:",
	}
}

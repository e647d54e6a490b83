package utils

import (
	"fmt"
	"strings"
)

// RoomName builds the display name for the next room of a type, counting
// from 1: "Double 1", "Double 2", ...
func RoomName(roomType string, existing int) string {
	return fmt.Sprintf("%s %d", roomType, existing+1)
}

// NormalizeGender lowercases and trims a gender value so that placement
// comparisons are not defeated by import formatting ("Male", " FEMALE ").
func NormalizeGender(gender string) string {
	return strings.ToLower(strings.TrimSpace(gender))
}

package utils

import (
	"fmt"
	"strings"
)

var fileSizeUnits = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize renders a byte count as a compact lower-case unit string.
func FormatFileSize(sizeInBytes int64) string {
	if sizeInBytes < 0 {
		return "0b"
	}
	scaledValue := float64(sizeInBytes)
	unitIndex := 0
	for scaledValue >= 1024 && unitIndex < len(fileSizeUnits)-1 {
		scaledValue /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%db", sizeInBytes)
	}
	if scaledValue < 10 {
		formattedValue := strings.TrimSuffix(fmt.Sprintf("%.1f", scaledValue), ".0")
		return formattedValue + fileSizeUnits[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", scaledValue, fileSizeUnits[unitIndex])
}

package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"archivestats/internal/models"
)

func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatFloat renders f with the fewest digits that round-trip. Integral
// values keep a ".0" suffix and magnitudes outside [1e-4, 1e16) switch to
// exponent form, so 3e9 bytes reads "3.0".
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func PrintSummary(w io.Writer, summary *models.Summary) error {
	_, err := fmt.Fprintf(w, "Filesize sum: %s GB\nNumber of days: %d\nDate range: %s - %s\n",
		FormatFloat(summary.TotalSizeGB),
		summary.EntryCount,
		summary.FirstDate,
		summary.LastDate,
	)
	return err
}

func PrintJSON(w io.Writer, data interface{}) error {
	jsonOutput, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonOutput))
	return err
}

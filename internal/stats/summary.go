// Package stats derives the archive summary from listing entries.
package stats

import (
	"fmt"
	"math/bits"
	"strings"

	"archivestats/internal/models"
	"archivestats/pkg/utils"
)

const bytesPerGB = 1_000_000_000

// DateToken returns the part of key before its first dot.
func DateToken(key string) string {
	token, _, _ := strings.Cut(key, ".")
	return token
}

// Summarize folds entries into a Summary. The first date comes from the
// first entry; the last date from the entry trailingSkip positions before
// the end, so trailing non-data objects stay out of the range.
func Summarize(entries []models.Entry, trailingSkip int) (*models.Summary, error) {
	if trailingSkip < 0 {
		return nil, &models.DataShapeError{Reason: fmt.Sprintf("trailing skip must not be negative, got %d", trailingSkip)}
	}
	if len(entries) == 0 {
		return nil, &models.DataShapeError{Reason: "listing has no entries"}
	}

	lastIdx := len(entries) - 1 - trailingSkip
	if lastIdx < 0 {
		return nil, &models.DataShapeError{
			Reason: fmt.Sprintf("need at least %d entries to skip %d trailing, got %d", trailingSkip+1, trailingSkip, len(entries)),
		}
	}

	var total, carry uint64
	for i, e := range entries {
		total, carry = bits.Add64(total, e.Size, 0)
		if carry != 0 {
			return nil, &models.DataShapeError{
				Reason: fmt.Sprintf("total size overflows 64 bits at entry %d (%s)", i, e.Key),
			}
		}
	}

	return &models.Summary{
		TotalSizeBytes: total,
		TotalSizeGB:    float64(total) / bytesPerGB,
		TotalSizeHuman: utils.FormatBytes(total),
		EntryCount:     len(entries),
		FirstDate:      DateToken(entries[0].Key),
		LastDate:       DateToken(entries[lastIdx].Key),
	}, nil
}

// Package listing decodes S3-style bucket listing XML into paired entries.
package listing

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"archivestats/internal/models"
)

// listBucketResult matches any root element, so both ListBucketResult
// variants, ListVersionsResult and S3-compatible lookalikes decode.
// DeleteMarker elements carry no Size and are not entries.
type listBucketResult struct {
	Name        string     `xml:"Name"`
	IsTruncated bool       `xml:"IsTruncated"`
	Contents    []contents `xml:"Contents"`
	Versions    []contents `xml:"Version"`
}

// Pointers distinguish a missing element from an empty one.
type contents struct {
	Key  *string `xml:"Key"`
	Size *string `xml:"Size"`
}

// Parse decodes doc and returns its entries in document order.
func Parse(doc string) (*models.Listing, error) {
	var result listBucketResult
	if err := xml.Unmarshal([]byte(doc), &result); err != nil {
		return nil, &models.ParseError{Err: err}
	}

	objects := append(result.Contents, result.Versions...)

	entries := make([]models.Entry, 0, len(objects))
	for i, c := range objects {
		if c.Key == nil {
			return nil, &models.DataShapeError{Reason: fmt.Sprintf("entry %d has no Key", i)}
		}
		if c.Size == nil {
			return nil, &models.DataShapeError{Reason: fmt.Sprintf("entry %d (%s) has no Size", i, *c.Key)}
		}

		size, err := parseSize(*c.Size)
		if err != nil {
			return nil, &models.ParseError{Err: fmt.Errorf("entry %d (%s): invalid Size %q: %w", i, *c.Key, *c.Size, err)}
		}

		entries = append(entries, models.Entry{Key: *c.Key, Size: size})
	}

	return &models.Listing{
		Name:        result.Name,
		IsTruncated: result.IsTruncated,
		Entries:     entries,
	}, nil
}

// parseSize accepts surrounding whitespace and a single leading plus sign.
func parseSize(text string) (uint64, error) {
	text = strings.TrimSpace(text)
	if digits, ok := strings.CutPrefix(text, "+"); ok && !strings.HasPrefix(digits, "+") {
		text = digits
	}
	return strconv.ParseUint(text, 10, 64)
}

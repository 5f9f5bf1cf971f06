package models

// Entry is one object from a bucket listing.
type Entry struct {
	Key  string `json:"key"`
	Size uint64 `json:"size"`
}

// Listing is a parsed bucket listing page.
type Listing struct {
	Name        string  `json:"name"`
	IsTruncated bool    `json:"is_truncated"`
	Entries     []Entry `json:"entries"`
}

type Summary struct {
	TotalSizeBytes uint64  `json:"total_size_bytes"`
	TotalSizeGB    float64 `json:"total_size_gb"`
	TotalSizeHuman string  `json:"total_size_human"`
	EntryCount     int     `json:"entry_count"`
	FirstDate      string  `json:"first_date"`
	LastDate       string  `json:"last_date"`
}

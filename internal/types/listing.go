package types

// JobListing is a single search hit. URL is unique within one result set.
type JobListing struct {
	Title   string  `json:"title"`
	Snippet string  `json:"snippet,omitempty"`
	URL     string  `json:"url"`
	Company *string `json:"company,omitempty"`
}

// CompanyName returns the company or an empty string when the backend did not
// report one.
func (l JobListing) CompanyName() string {
	if l.Company == nil {
		return ""
	}
	return *l.Company
}

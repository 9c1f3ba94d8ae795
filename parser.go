package arxharvest

// ListingParser extracts structured records from a search listing page.
type ListingParser interface {
	// ParseListing locates every result block in the page body and
	// extracts one record per block. A page without result blocks yields
	// an empty slice; that is the end-of-results signal, not an error.
	// Field extraction failures are independent: a missing field resolves
	// to its sentinel value without affecting the other fields. Keywords
	// are left empty; deriving them is the caller's responsibility.
	ParseListing(html string) ([]*Record, error)
}

package mock

import (
	"github.com/fwojciec/arxharvest"
)

var _ arxharvest.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of arxharvest.ListingParser.
type ListingParser struct {
	ParseListingFn func(html string) ([]*arxharvest.Record, error)
}

func (p *ListingParser) ParseListing(html string) ([]*arxharvest.Record, error) {
	return p.ParseListingFn(html)
}

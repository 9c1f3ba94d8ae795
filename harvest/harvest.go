// Package harvest provides the page-by-page extraction of search
// results. It coordinates fetching, parsing, keyword derivation, and
// persistence of the accumulated records.
package harvest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/arxharvest"
	"golang.org/x/time/rate"
)

// Pagination defaults. The listing backend serves up to 200 results per
// page; three seconds between page requests keeps the client polite.
const (
	DefaultPageSize = 200
	DefaultDelay    = 3 * time.Second
)

// Harvester walks a paginated search listing and accumulates one record
// per result.
type Harvester struct {
	Fetcher  arxharvest.Fetcher
	Parser   arxharvest.ListingParser
	Keywords arxharvest.KeywordExtractor
	Writer   arxharvest.RecordWriter

	// Archive, if set, captures every fetched page body.
	Archive arxharvest.PageArchive

	// PageSize is the offset increment between pages. It must agree with
	// the size parameter embedded in the base URL.
	PageSize int

	// Delay is the minimum spacing between page requests. The first
	// request is not delayed.
	Delay time.Duration

	// RetryDelays, if set, enables bounded fetch retries with the given
	// waits between attempts. The default (nil) treats every transport
	// failure as terminal.
	RetryDelays []time.Duration
}

// Result holds the outcome of a harvest run.
type Result struct {
	// Pages counts fully processed result pages.
	Pages int

	// Records holds every accumulated record, in discovery order.
	Records []*arxharvest.Record

	// Saved reports whether the output file was written.
	Saved bool

	// Interrupted holds the terminal error when the run stopped before
	// the end of the result set. It is nil after a normal termination.
	Interrupted error
}

// ProgressEvent reports one processed page.
type ProgressEvent struct {
	Page    int // 1-based page number
	Offset  int // offset the page was requested at
	Results int // result blocks on this page
	Total   int // records accumulated so far
}

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// Run walks the result set from offset zero until a page yields no
// results, the fetch fails, or per-page processing fails. All paths
// converge on persistence: whatever was accumulated is written, provided
// at least one record exists. The returned error is non-nil only for an
// invalid base URL and for output-write failures; a run interrupted
// mid-way is reported through Result.Interrupted instead.
func (h *Harvester) Run(ctx context.Context, baseURL string, progress ProgressFunc) (*Result, error) {
	pageSize := h.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	delay := h.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	if err := ValidateBaseURL(baseURL, pageSize); err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Every(delay), 1)

	result := &Result{}
	for offset := 0; ; offset += pageSize {
		if err := limiter.Wait(ctx); err != nil {
			result.Interrupted = err
			break
		}

		body, err := h.fetch(ctx, PageURL(baseURL, offset))
		if err != nil {
			result.Interrupted = err
			break
		}

		if h.Archive != nil {
			if err := h.Archive.SavePage(ctx, offset, body); err != nil {
				result.Interrupted = err
				break
			}
		}

		records, err := h.Parser.ParseListing(body)
		if err != nil {
			result.Interrupted = err
			break
		}

		// A resultless page is the normal end of the result set: the
		// backend serves it past the last page instead of an error.
		if len(records) == 0 {
			break
		}

		if err := h.processPage(ctx, result, records); err != nil {
			result.Interrupted = err
			break
		}

		result.Pages++
		if progress != nil {
			progress(ProgressEvent{
				Page:    result.Pages,
				Offset:  offset,
				Results: len(records),
				Total:   len(result.Records),
			})
		}
	}

	if len(result.Records) == 0 {
		return result, nil
	}
	if err := h.Writer.WriteRecords(ctx, result.Records); err != nil {
		return result, err
	}
	result.Saved = true

	return result, nil
}

// processPage derives keywords for each record and appends it to the
// accumulator. Records completed before a keyword failure stay
// accumulated; the failing record is dropped with the rest of its page.
func (h *Harvester) processPage(ctx context.Context, result *Result, records []*arxharvest.Record) error {
	for _, record := range records {
		if record.Keywords == nil {
			record.Keywords = []string{}
		}

		if h.Keywords != nil && record.Abstract != "" && record.Abstract != arxharvest.NA {
			keywords, err := h.Keywords.ExtractKeywords(ctx, record.Abstract)
			if err != nil {
				return err
			}
			phrases := make([]string, 0, len(keywords))
			for _, kw := range keywords {
				phrases = append(phrases, kw.Phrase)
			}
			record.Keywords = phrases
		}

		result.Records = append(result.Records, record)
	}
	return nil
}

// fetch retrieves one page, retrying when RetryDelays is configured.
func (h *Harvester) fetch(ctx context.Context, pageURL string) (string, error) {
	if len(h.RetryDelays) == 0 {
		return h.Fetcher.Fetch(ctx, pageURL)
	}
	return FetchWithRetryDelays(ctx, pageURL, h.Fetcher.Fetch, nil, h.RetryDelays)
}

// ValidateBaseURL rejects base URLs the loop cannot page correctly: the
// URL must be absolute, must not already carry a start parameter, and
// its size parameter, when present, must match pageSize. A mismatch
// would silently skip or duplicate results as the offset advances.
func ValidateBaseURL(baseURL string, pageSize int) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return arxharvest.Errorf(arxharvest.EINVALID, "invalid base URL: %v", err)
	}
	if !u.IsAbs() {
		return arxharvest.Errorf(arxharvest.EINVALID, "base URL %q is not absolute", baseURL)
	}

	query := u.Query()
	if query.Has("start") {
		return arxharvest.Errorf(arxharvest.EINVALID, "base URL already carries a start parameter")
	}
	if size := query.Get("size"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n != pageSize {
			return arxharvest.Errorf(arxharvest.EINVALID, "base URL size parameter %q does not match page size %d", size, pageSize)
		}
	}
	return nil
}

// PageURL appends the pagination offset to the base URL.
func PageURL(baseURL string, offset int) string {
	sep := "&"
	if !strings.Contains(baseURL, "?") {
		sep = "?"
	}
	return fmt.Sprintf("%s%sstart=%d", baseURL, sep, offset)
}

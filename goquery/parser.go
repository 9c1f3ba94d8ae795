// Package goquery extracts bibliographic records from arXiv search
// listing pages using CSS selectors.
package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/arxharvest"
)

// Selectors for the arXiv advanced-search result markup. Each result is
// an li.arxiv-result; category tags come in a primary (link) and a
// secondary (grey) variant.
const (
	resultSelector            = "li.arxiv-result"
	titleSelector             = "p.title"
	authorsSelector           = "p.authors"
	abstractSelector          = "span.abstract-full"
	primaryCategorySelector   = "span.tag.is-small.is-link.tooltip.is-tooltip-top"
	secondaryCategorySelector = "span.tag.is-small.is-grey.tooltip.is-tooltip-top"
	metadataSelector          = "p.is-size-7"
	commentsSelector          = "p.comments.is-size-7"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	yearRE       = regexp.MustCompile(`\b(20\d{2})\b`)
)

// Ensure Parser implements arxharvest.ListingParser at compile time.
var _ arxharvest.ListingParser = (*Parser)(nil)

// Parser extracts records from arXiv listing pages.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseListing locates every result block in the page and extracts one
// record per block. A missing field resolves to its sentinel value; it
// never fails the parse or the other fields.
func (p *Parser) ParseListing(html string) ([]*arxharvest.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, arxharvest.Errorf(arxharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	records := []*arxharvest.Record{}
	doc.Find(resultSelector).Each(func(_ int, result *goquery.Selection) {
		records = append(records, parseResult(result))
	})
	return records, nil
}

func parseResult(result *goquery.Selection) *arxharvest.Record {
	return &arxharvest.Record{
		Title:      extractTitle(result),
		Authors:    extractAuthors(result),
		Abstract:   extractAbstract(result),
		Keywords:   []string{},
		Categories: extractCategories(result),
		Year:       extractYear(result),
		JournalRef: extractJournalRef(result),
	}
}

func extractTitle(result *goquery.Selection) string {
	title := result.Find(titleSelector).First()
	if title.Length() == 0 {
		return arxharvest.NA
	}
	return strings.TrimSpace(title.Text())
}

// extractAuthors strips the "Authors:" label, collapses whitespace, and
// splits the remainder on commas. A present-but-empty author block yields
// a single empty name rather than the sentinel.
func extractAuthors(result *goquery.Selection) arxharvest.AuthorList {
	block := result.Find(authorsSelector).First()
	if block.Length() == 0 {
		return nil
	}

	text := strings.ReplaceAll(block.Text(), "Authors:", "")
	text = strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))

	parts := strings.Split(text, ",")
	authors := make(arxharvest.AuthorList, 0, len(parts))
	for _, part := range parts {
		authors = append(authors, strings.TrimSpace(part))
	}
	return authors
}

func extractAbstract(result *goquery.Selection) string {
	abstract := result.Find(abstractSelector).First()
	if abstract.Length() == 0 {
		return arxharvest.NA
	}

	text := strings.TrimSpace(abstract.Text())
	if after, ok := strings.CutPrefix(text, "Abstract:"); ok {
		text = strings.TrimSpace(after)
	}
	return text
}

// extractCategories collects primary tags first, then secondary tags,
// preserving document order within each group.
func extractCategories(result *goquery.Selection) []string {
	categories := []string{}
	for _, selector := range []string{primaryCategorySelector, secondaryCategorySelector} {
		result.Find(selector).Each(func(_ int, tag *goquery.Selection) {
			categories = append(categories, strings.TrimSpace(tag.Text()))
		})
	}
	return categories
}

// extractYear scans the segment of the metadata line before the first
// semicolon for a four-digit year in the 2000s.
func extractYear(result *goquery.Selection) arxharvest.Year {
	meta := result.Find(metadataSelector).First()
	if meta.Length() == 0 {
		return 0
	}

	head, _, _ := strings.Cut(meta.Text(), ";")
	m := yearRE.FindStringSubmatch(head)
	if m == nil {
		return 0
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return arxharvest.Year(year)
}

// extractJournalRef finds the first comments paragraph whose leading span
// labels it as a journal reference and returns the cleaned reference text.
func extractJournalRef(result *goquery.Selection) string {
	ref := arxharvest.NA
	result.Find(commentsSelector).EachWithBreak(func(_ int, p *goquery.Selection) bool {
		label := p.Find("span").First()
		if label.Length() == 0 || !strings.Contains(label.Text(), "Journal ref") {
			return true
		}

		text := strings.ReplaceAll(p.Text(), "Journal ref:", "")
		text = strings.TrimSpace(text)
		text = strings.Trim(text, `"`)
		ref = strings.TrimSpace(text)
		return false
	})
	return ref
}

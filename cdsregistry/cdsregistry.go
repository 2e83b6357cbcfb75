// Package cdsregistry is a thin HTTP+HTML adapter resolving a gene symbol
// to its canonical coding sequence, the one external collaborator
// spec.md §6 names besides the folder and the TE oracle
// (`get_canonical_cds(symbol) → String | GeneNotFound`). It is explicitly
// outside CORE: the orchestrator only ever depends on the CDSResolver
// interface, never on this package directly.
package cdsregistry

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// CDSResolver maps a gene symbol to its canonical coding sequence.
type CDSResolver interface {
	CanonicalCDS(symbol string) (string, error)
}

// GeneNotFoundError is returned when symbol has no entry in the registry,
// spec.md §6's GeneNotFound outcome.
type GeneNotFoundError struct {
	Symbol string
}

func (e *GeneNotFoundError) Error() string {
	return fmt.Sprintf("cdsregistry: gene symbol %q not found", e.Symbol)
}

// cdsSelector is the CSS selector the lookup page's canonical-CDS element is
// expected to match, mirroring genbank_clone.go's goquery.Find idiom.
const cdsSelector = "pre.cds-sequence, #canonical-cds"

var nonBaseChars = regexp.MustCompile(`[^ACGTUacgtu]`)

// HTTPResolver queries a gene-symbol lookup page over HTTP and scrapes its
// canonical CDS out of the returned HTML, the same GET-then-goquery.Find
// shape as genbank_clone.go's directory listing scrape.
type HTTPResolver struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPResolver builds a resolver against baseURL (the gene symbol is
// appended as a path segment) with a bounded request timeout — the teacher's
// scrape has none, but an interactive CLI run should never hang forever on a
// single network call.
func NewHTTPResolver(baseURL string) *HTTPResolver {
	return &HTTPResolver{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CanonicalCDS implements CDSResolver.
func (r *HTTPResolver) CanonicalCDS(symbol string) (string, error) {
	url := fmt.Sprintf("%s/%s", r.BaseURL, symbol)
	res, err := r.Client.Get(url)
	if err != nil {
		return "", fmt.Errorf("cdsregistry: fetching %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return "", &GeneNotFoundError{Symbol: symbol}
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cdsregistry: %s returned status %d", url, res.StatusCode)
	}

	return parseCanonicalCDS(res.Body, symbol)
}

func parseCanonicalCDS(body io.Reader, symbol string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("cdsregistry: parsing lookup page: %w", err)
	}

	raw := strings.TrimSpace(doc.Find(cdsSelector).First().Text())
	if raw == "" {
		return "", &GeneNotFoundError{Symbol: symbol}
	}

	cleaned := nonBaseChars.ReplaceAllString(raw, "")
	rna := strings.ToUpper(strings.ReplaceAll(cleaned, "T", "U"))
	if rna == "" {
		return "", &GeneNotFoundError{Symbol: symbol}
	}
	return rna, nil
}

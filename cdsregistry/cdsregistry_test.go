package cdsregistry

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCanonicalCDSParsesFoundGene(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/GAPDH" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`<html><body><pre class="cds-sequence">atg ccc aag taa</pre></body></html>`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL)
	cds, err := resolver.CanonicalCDS("GAPDH")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cds != "AUGCCCAAGUAA" {
		t.Errorf("CanonicalCDS = %q, want AUGCCCAAGUAA", cds)
	}
}

func TestCanonicalCDSReturnsGeneNotFoundOn404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL)
	_, err := resolver.CanonicalCDS("NOTAGENE")
	if _, ok := err.(*GeneNotFoundError); !ok {
		t.Errorf("error = %T, want *GeneNotFoundError", err)
	}
}

func TestCanonicalCDSReturnsGeneNotFoundOnEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>no canonical transcript on file</p></body></html>`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL)
	_, err := resolver.CanonicalCDS("PSEUDOGENE1")
	if _, ok := err.(*GeneNotFoundError); !ok {
		t.Errorf("error = %T, want *GeneNotFoundError", err)
	}
}

func TestCanonicalCDSSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL)
	_, err := resolver.CanonicalCDS("GAPDH")
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if _, ok := err.(*GeneNotFoundError); ok {
		t.Error("a server error must not be reported as GeneNotFound")
	}
}

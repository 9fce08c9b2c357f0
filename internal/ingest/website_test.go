package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func Test_Website(t *testing.T) {
	t.Run("it should extract the text content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, `<html><head><title>ignored</title><script>var x = 1;</script></head>
<body><h1>Mitochondria</h1><p>The powerhouse   of the cell.</p>
<style>.a{color:red}</style></body></html>`)
		}))
		defer srv.Close()

		got, err := Website(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("got error: %v", err)
		}
		if !strings.Contains(got, "Mitochondria") {
			t.Errorf("expected heading text, got: %v", got)
		}
		if !strings.Contains(got, "The powerhouse of the cell.") {
			t.Errorf("expected collapsed whitespace in body text, got: %v", got)
		}
		if strings.Contains(got, "var x") || strings.Contains(got, "color:red") {
			t.Errorf("expected script and style content to be stripped, got: %v", got)
		}
		if strings.Contains(got, "ignored") {
			t.Errorf("expected head content to be stripped, got: %v", got)
		}
	})

	t.Run("it should error on bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := Website(context.Background(), srv.URL)
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("it should error on unsupported content type", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			fmt.Fprint(w, "%PDF-1.4")
		}))
		defer srv.Close()

		_, err := Website(context.Background(), srv.URL)
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("it should error on an invalid url", func(t *testing.T) {
		_, err := Website(context.Background(), "not a url")
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func Test_extractText(t *testing.T) {
	testCases := []struct {
		desc  string
		given string
		want  string
	}{
		{
			desc:  "paragraphs become lines",
			given: "<p>one</p><p>two</p>",
			want:  "one\ntwo",
		},
		{
			desc:  "nested inline tags join",
			given: "<p>one <b>bold</b> two</p>",
			want:  "one\nbold\ntwo",
		},
		{
			desc:  "script content is skipped",
			given: "<p>kept</p><script>dropped()</script>",
			want:  "kept",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, err := extractText(strings.NewReader(tC.given))
			if err != nil {
				t.Fatalf("got error: %v", err)
			}
			if got != tC.want {
				t.Fatalf("expected: %q, got: %q", tC.want, got)
			}
		})
	}
}

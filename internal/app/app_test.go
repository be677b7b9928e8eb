package app

import (
	"testing"

	"linktap/pkg/styled"
)

func TestMarkLinksFindsURLs(t *testing.T) {
	txt := MarkLinks("see https://go.dev/doc and http://example.org, ok?")
	got := txt.Ranges(styled.KeyLink)
	if len(got) != 2 {
		t.Fatalf("expected 2 links, got %d: %+v", len(got), got)
	}
	if got[0].Value != "https://go.dev/doc" {
		t.Fatalf("unexpected first URL: %v", got[0].Value)
	}
	if txt.Slice(got[1].Range) != "http://example.org" {
		t.Fatalf("unexpected second link text: %q", txt.Slice(got[1].Range))
	}
}

func TestMarkLinksHandlesNonASCII(t *testing.T) {
	txt := MarkLinks("héllo \U0001F600 https://example.org done")
	got := txt.Ranges(styled.KeyLink)
	if len(got) != 1 {
		t.Fatalf("expected 1 link, got %d", len(got))
	}
	if txt.Slice(got[0].Range) != "https://example.org" {
		t.Fatalf("range misaligned over non-ASCII text: %q", txt.Slice(got[0].Range))
	}
}

func TestMarkLinksPlainText(t *testing.T) {
	txt := MarkLinks("no links at all")
	if len(txt.Ranges(styled.KeyLink)) != 0 {
		t.Fatalf("expected no links")
	}
}

func TestSampleContentHasDeclaredLink(t *testing.T) {
	txt := sampleContent()
	if url, ok := txt.Link(10); !ok || url != "https://example.com/link" {
		t.Fatalf("sample link missing: %q,%v", url, ok)
	}
	if _, ok := txt.Highlight(10); !ok {
		t.Fatalf("sample link has no declared highlight")
	}
	if txt.Slice(styled.Range{Start: 10, Length: 4}) != "Link" {
		t.Fatalf("sample offsets drifted")
	}
}

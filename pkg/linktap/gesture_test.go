package linktap

import (
	"image/color"
	"testing"

	"linktap/pkg/styled"
)

var (
	linkBlue  = color.NRGBA{R: 0x1A, G: 0x56, B: 0xB8, A: 0xFF}
	tapRed    = color.NRGBA{R: 0xB8, G: 0x33, B: 0x2A, A: 0xFF}
	highlight = styled.Range{Start: 10, Length: 4}
)

func gestureView() *stubView {
	view := linkedView(400, 100)
	view.content = view.content.
		WithForeground(highlight, linkBlue).
		WithHighlight(highlight, tapRed)
	return view
}

func TestTouchDownOutsideLinkFails(t *testing.T) {
	e := NewEngine(gestureView())
	g := NewLinkGesture(e)
	if g.Begin(2, 2) {
		t.Fatalf("touch-down with no resolvable range must fail")
	}
	if g.Active() {
		t.Fatalf("failed begin left the gesture active")
	}
}

func TestTouchDownCapturesAndHighlights(t *testing.T) {
	view := gestureView()
	e := NewEngine(view)
	g := NewLinkGesture(e)

	cx, cy := center(view.rects[10])
	if !g.Begin(cx, cy) {
		t.Fatalf("touch-down inside link must capture")
	}
	hit, ok := g.Captured()
	if !ok || hit.Range != (styled.Range{Start: 10, Length: 4}) {
		t.Fatalf("captured %+v, want {10,4}", hit)
	}
	if url, ok := g.CapturedURL(); !ok || url != "https://a.example" {
		t.Fatalf("captured URL = %q,%v", url, ok)
	}
	if fg, ok := view.content.Foreground(10); !ok || fg != tapRed {
		t.Fatalf("declared highlight not applied: %+v,%v", fg, ok)
	}
}

func TestHighlightFallsBackToDimmedForeground(t *testing.T) {
	view := linkedView(400, 100)
	view.content = view.content.WithForeground(highlight, linkBlue)
	e := NewEngine(view)
	g := NewLinkGesture(e)

	cx, cy := center(view.rects[10])
	if !g.Begin(cx, cy) {
		t.Fatalf("capture failed")
	}
	want := linkBlue
	want.A = 102
	if fg, _ := view.content.Foreground(10); fg != want {
		t.Fatalf("fallback highlight = %+v, want foreground at 40%% alpha %+v", fg, want)
	}
}

func TestMoveTogglesHighlightAtBoundary(t *testing.T) {
	view := gestureView()
	e := NewEngine(view)
	g := NewLinkGesture(e)

	cx, cy := center(view.rects[10])
	g.Begin(cx, cy)

	g.Move(2, 2)
	if fg, _ := view.content.Foreground(10); fg != linkBlue {
		t.Fatalf("leaving the range must restore the color, got %+v", fg)
	}
	g.Move(cx, cy)
	if fg, _ := view.content.Foreground(10); fg != tapRed {
		t.Fatalf("re-entering the range must re-apply the highlight, got %+v", fg)
	}
}

func TestTouchUpInsideRecognizes(t *testing.T) {
	view := gestureView()
	e := NewEngine(view)
	g := NewLinkGesture(e)

	cx, cy := center(view.rects[10])
	g.Begin(cx, cy)
	hit, ok := g.End(cx, cy)
	if !ok {
		t.Fatalf("touch-up at the capture point must recognize")
	}
	if hit.Range != (styled.Range{Start: 10, Length: 4}) || hit.Value != "https://a.example" {
		t.Fatalf("recognized hit = %+v", hit)
	}
	if g.Active() {
		t.Fatalf("gesture still active after end")
	}
	if fg, _ := view.content.Foreground(10); fg != linkBlue {
		t.Fatalf("original color not restored after recognition: %+v", fg)
	}
}

func TestTouchUpOutsideFails(t *testing.T) {
	view := gestureView()
	e := NewEngine(view)
	g := NewLinkGesture(e)

	cx, cy := center(view.rects[10])
	g.Begin(cx, cy)
	g.Move(2, 2)
	if _, ok := g.End(2, 2); ok {
		t.Fatalf("touch-up outside the captured range must fail")
	}
	if fg, _ := view.content.Foreground(10); fg != linkBlue {
		t.Fatalf("original color not restored after failure: %+v", fg)
	}
}

func TestSecondTouchRejected(t *testing.T) {
	view := gestureView()
	e := NewEngine(view)
	g := NewLinkGesture(e)

	cx, cy := center(view.rects[10])
	g.Begin(cx, cy)
	if g.Begin(cx, cy) {
		t.Fatalf("second touch while a sequence is active must fail")
	}
	if _, ok := g.Captured(); !ok {
		t.Fatalf("rejected second touch disturbed the first sequence")
	}
}

func TestCancelRestoresState(t *testing.T) {
	view := gestureView()
	e := NewEngine(view)
	g := NewLinkGesture(e)

	cx, cy := center(view.rects[10])
	g.Begin(cx, cy)
	g.Cancel()
	if g.Active() {
		t.Fatalf("cancel left the gesture active")
	}
	if fg, _ := view.content.Foreground(10); fg != linkBlue {
		t.Fatalf("cancel did not restore the color: %+v", fg)
	}
	// A fresh sequence works after cancel.
	if !g.Begin(cx, cy) {
		t.Fatalf("gesture unusable after cancel")
	}
}

func TestResetWithoutTouchIsANoop(t *testing.T) {
	e := NewEngine(gestureView())
	g := NewLinkGesture(e)
	g.Reset()
	g.Cancel()
	if g.Active() {
		t.Fatalf("reset activated the gesture")
	}
}

func TestHighlightRemovedWhenNoOriginalForeground(t *testing.T) {
	view := linkedView(400, 100) // links carry no foreground attribute
	e := NewEngine(view)
	g := NewLinkGesture(e)

	cx, cy := center(view.rects[10])
	g.Begin(cx, cy)
	want := color.NRGBA{A: 102}
	if fg, ok := view.content.Foreground(10); !ok || fg != want {
		t.Fatalf("fallback highlight = %+v,%v want black at 40%% alpha", fg, ok)
	}
	g.Cancel()
	if _, ok := view.content.Foreground(10); ok {
		t.Fatalf("foreground attribute should be absent again after reset")
	}
}

package textview

import (
	"image"
	"image/color"
	"testing"

	"linktap/pkg/linktap"
	"linktap/pkg/styled"
)

func sample() styled.Text {
	t := styled.New("This is a Link. The rest stays plain.")
	r := styled.Range{Start: 10, Length: 4}
	t = t.WithLink(r, "https://example.com/link")
	t = t.WithForeground(r, color.NRGBA{R: 0x1A, G: 0x56, B: 0xB8, A: 0xFF})
	t = t.WithHighlight(r, color.NRGBA{R: 0xB8, G: 0x33, B: 0x2A, A: 0xFF})
	return t
}

func TestRenderContentNilOnZeroBounds(t *testing.T) {
	v := New(0, 0)
	v.SetContent(sample())
	if ra := v.RenderContent(); ra != nil {
		t.Fatalf("zero-bounds view must produce no raster")
	}
}

func TestRenderContentMatchesBounds(t *testing.T) {
	v := New(320, 48)
	v.SetContent(sample())
	ra := v.RenderContent()
	if ra == nil {
		t.Fatalf("render failed")
	}
	if ra.W != 320 || ra.H != 48 || ra.Stride != 320*4 {
		t.Fatalf("raster %dx%d stride %d, want 320x48 stride %d", ra.W, ra.H, ra.Stride, 320*4)
	}
	// Corner pixel is the opaque view background.
	r, g, b, a, ok := ra.At(0, 0)
	if !ok || r != 255 || g != 255 || b != 255 || a != 255 {
		t.Fatalf("background pixel = %d,%d,%d,%d,%v", r, g, b, a, ok)
	}
}

func TestLineHeightPositive(t *testing.T) {
	v := New(100, 100)
	if lh := v.LineHeight(); lh < 8 || lh > 64 {
		t.Fatalf("implausible line height %v", lh)
	}
}

func TestObserversNotified(t *testing.T) {
	v := New(100, 100)
	var contents, bounds int
	obs := &countObserver{onContent: func() { contents++ }, onBounds: func() { bounds++ }}
	v.AddObserver(obs)

	v.SetContent(sample())
	v.SetBounds(200, 100)
	if contents != 1 || bounds != 1 {
		t.Fatalf("notifications = %d content, %d bounds", contents, bounds)
	}

	v.RemoveObserver(obs)
	v.SetContent(styled.New("x"))
	if contents != 1 {
		t.Fatalf("observer notified after removal")
	}
}

type countObserver struct {
	onContent func()
	onBounds  func()
}

func (o *countObserver) ContentChanged() { o.onContent() }
func (o *countObserver) BoundsChanged()  { o.onBounds() }

func TestEngineRoundTripThroughRenderedText(t *testing.T) {
	v := New(400, 60)
	v.SetContent(sample())
	e := linktap.NewEngine(v)

	els := e.Elements(styled.KeyLink)
	if len(els) != 1 {
		t.Fatalf("expected 1 element, got %d", len(els))
	}
	rect, ok := els[0].Rect()
	if !ok {
		t.Fatalf("no rectangle for the rendered link")
	}
	full := image.Rect(0, 0, 400, 60)
	if !rect.In(full) {
		t.Fatalf("rect %v escapes the view", rect)
	}
	if rect.Dx() < 2 || rect.Dy() < 2 {
		t.Fatalf("rect %v too small to sample", rect)
	}

	cx := float64(rect.Min.X+rect.Max.X) / 2
	cy := float64(rect.Min.Y+rect.Max.Y) / 2
	hit, ok := e.RangeAt(styled.KeyLink, cx, cy)
	if !ok {
		t.Fatalf("center of rendered link missed")
	}
	if hit.Range != (styled.Range{Start: 10, Length: 4}) {
		t.Fatalf("recovered range %+v, want {10,4}", hit.Range)
	}
	if hit.Value != "https://example.com/link" {
		t.Fatalf("recovered value %v", hit.Value)
	}
}

func TestGestureScenarioOverRenderedText(t *testing.T) {
	v := New(400, 60)
	v.SetContent(sample())
	e := linktap.NewEngine(v)
	g := linktap.NewLinkGesture(e)

	rect, ok := e.RectFor(styled.KeyLink, 0)
	if !ok {
		t.Fatalf("no rect for link")
	}
	cx := float64(rect.Min.X+rect.Max.X) / 2
	cy := float64(rect.Min.Y+rect.Max.Y) / 2

	if !g.Begin(cx, cy) {
		t.Fatalf("touch-down inside rendered link failed")
	}
	declared := color.NRGBA{R: 0xB8, G: 0x33, B: 0x2A, A: 0xFF}
	if fg, _ := v.Content().Foreground(10); fg != declared {
		t.Fatalf("declared highlight not shown: %+v", fg)
	}

	if hit, ok := g.End(cx, cy); !ok || hit.Range != (styled.Range{Start: 10, Length: 4}) {
		t.Fatalf("touch-up at capture point: %+v,%v", hit, ok)
	}
	original := color.NRGBA{R: 0x1A, G: 0x56, B: 0xB8, A: 0xFF}
	if fg, _ := v.Content().Foreground(10); fg != original {
		t.Fatalf("original color not restored: %+v", fg)
	}

	// Down inside, release outside: failed gesture, color restored.
	if !g.Begin(cx, cy) {
		t.Fatalf("second sequence failed to capture")
	}
	g.Move(1, 1)
	if _, ok := g.End(1, 1); ok {
		t.Fatalf("touch-up outside the link must fail")
	}
	if fg, _ := v.Content().Foreground(10); fg != original {
		t.Fatalf("original color not restored after failed gesture: %+v", fg)
	}
}

func TestMultiLineContentRenders(t *testing.T) {
	v := New(300, 120)
	txt := styled.New("first line\nsecond line with a Link here\nthird")
	r := styled.Range{Start: 30, Length: 4}
	if txt.Slice(r) != "Link" {
		t.Fatalf("test offsets drifted: %q", txt.Slice(r))
	}
	txt = txt.WithLink(r, "https://example.org")
	v.SetContent(txt)

	e := linktap.NewEngine(v)
	rect, ok := e.RectFor(styled.KeyLink, 0)
	if !ok {
		t.Fatalf("link on second line not found")
	}
	lh := int(v.LineHeight())
	if rect.Min.Y < lh || rect.Min.Y >= 2*lh {
		t.Fatalf("rect %v not on the second line (line height %d)", rect, lh)
	}
}

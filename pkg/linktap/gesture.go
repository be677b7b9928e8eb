package linktap

import (
	"image/color"

	"linktap/pkg/styled"
)

// highlightAlpha is the opacity applied to the original foreground when a
// range declares no highlight color of its own.
const highlightAlpha = 102 // 40%

// LinkGesture is the touch-driven consumer of the engine: it captures the
// marked range under a touch-down, tracks the point across moves while
// toggling a highlight color exactly at the range boundary, and recognizes
// on touch-up only when the final point still decodes to the captured
// range. Single touch only; a Begin while a sequence is active fails the
// new sequence.
//
// The engine's cache is held from Begin to End/Cancel so the captured
// range's geometry stays stable for the whole sequence.
type LinkGesture struct {
	engine *Engine
	key    styled.Key

	active      bool
	hit         Hit
	highlight   color.NRGBA
	highlighted bool
	originalFG  color.NRGBA
	hadFG       bool
}

// NewLinkGesture builds a recognizer over KeyLink ranges.
func NewLinkGesture(engine *Engine) *LinkGesture {
	return NewKeyGesture(engine, styled.KeyLink)
}

// NewKeyGesture builds a recognizer for any marked-range key.
func NewKeyGesture(engine *Engine, key styled.Key) *LinkGesture {
	if engine == nil {
		panic("linktap: nil engine")
	}
	return &LinkGesture{engine: engine, key: key}
}

// Begin starts a touch sequence. It fails when another sequence is active
// or the point decodes to no marked range; on success the range is
// captured and its highlight applied.
func (g *LinkGesture) Begin(x, y float64) bool {
	if g.active {
		return false
	}
	hit, ok := g.engine.RangeAt(g.key, x, y)
	if !ok {
		return false
	}

	g.active = true
	g.engine.hold()
	g.hit = hit

	content := g.engine.view.Content()
	g.originalFG, g.hadFG = content.Foreground(hit.Range.Start)
	if hl, ok := content.Highlight(hit.Range.Start); ok {
		g.highlight = hl
	} else {
		base := g.originalFG
		if !g.hadFG {
			base = color.NRGBA{A: 255}
		}
		base.A = highlightAlpha
		g.highlight = base
	}
	g.setHighlight(true)
	return true
}

// Move re-queries the current point and toggles the highlight when the
// decoded range starts or stops matching the captured one.
func (g *LinkGesture) Move(x, y float64) {
	if !g.active {
		return
	}
	hit, ok := g.engine.RangeAt(g.key, x, y)
	inside := ok && hit.Index == g.hit.Index
	if inside != g.highlighted {
		g.setHighlight(inside)
	}
}

// End finishes the sequence. The gesture recognizes only when the final
// point still decodes to the captured range; either way the original color
// is restored and the captured state cleared.
func (g *LinkGesture) End(x, y float64) (Hit, bool) {
	if !g.active {
		return Hit{}, false
	}
	hit, ok := g.engine.RangeAt(g.key, x, y)
	recognized := ok && hit.Index == g.hit.Index
	captured := g.hit
	g.Reset()
	if !recognized {
		return Hit{}, false
	}
	return captured, true
}

// Cancel aborts the sequence unconditionally.
func (g *LinkGesture) Cancel() {
	g.Reset()
}

// Reset restores the original foreground color and clears captured state.
// Safe to call when no sequence is active.
func (g *LinkGesture) Reset() {
	if !g.active {
		return
	}
	if g.highlighted {
		g.setHighlight(false)
	}
	g.engine.release()
	g.active = false
	g.hit = Hit{}
	g.hadFG = false
}

// Active reports whether a touch sequence is in progress.
func (g *LinkGesture) Active() bool { return g.active }

// Captured returns the range captured by the current sequence.
func (g *LinkGesture) Captured() (Hit, bool) {
	if !g.active {
		return Hit{}, false
	}
	return g.hit, true
}

// CapturedURL returns the captured range's URL when the sequence is active
// and the marked value is a string.
func (g *LinkGesture) CapturedURL() (string, bool) {
	if !g.active {
		return "", false
	}
	url, ok := g.hit.Value.(string)
	return url, ok
}

// setHighlight swaps the captured range's foreground between the highlight
// and its original color. The write goes through WithoutInvalidating so
// the engine's own cache survives it.
func (g *LinkGesture) setHighlight(on bool) {
	g.engine.WithoutInvalidating(func() {
		content := g.engine.view.Content()
		r := g.hit.Range
		switch {
		case on:
			content = content.WithForeground(r, g.highlight)
		case g.hadFG:
			content = content.WithForeground(r, g.originalFG)
		default:
			content = content.WithoutValue(styled.KeyForeground, r)
		}
		g.engine.view.SetContent(content)
	})
	g.highlighted = on
}

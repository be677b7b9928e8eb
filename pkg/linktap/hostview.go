package linktap

import "linktap/pkg/styled"

// ViewObserver receives explicit change notifications from a host view.
// Hosts must call these on every content or bounds change; the engine
// never observes properties implicitly.
type ViewObserver interface {
	ContentChanged()
	BoundsChanged()
}

// HostView is the surface the engine needs from a text label: readable and
// swappable styled content, pixel bounds, and a synchronous render of the
// current content into an offscreen raster at exactly those bounds.
//
// RenderContent must return nil when the view cannot produce a buffer
// (zero bounds); the engine then treats every lookup as a miss.
type HostView interface {
	Content() styled.Text
	SetContent(styled.Text)
	Bounds() (w, h int)
	MinScale() float64
	LineHeight() float64
	RenderContent() *Raster
	AddObserver(ViewObserver)
	RemoveObserver(ViewObserver)
}

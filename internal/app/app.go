package app

import (
	"fmt"
	"image/color"
	"os"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/sqweek/dialog"
	"golang.org/x/image/font/basicfont"

	"linktap/internal/render"
	"linktap/internal/ui"
	"linktap/pkg/linktap"
	"linktap/pkg/styled"
)

const (
	labelPadX = 8
	labelPadY = 12
)

type rect struct {
	x int
	y int
	w int
	h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && y >= r.y && x < r.x+r.w && y < r.y+r.h
}

type Options struct {
	Title    string
	WidthPx  int
	HeightPx int
	FilePath string
}

// Label narrows the host-view dependency to what the app drives; the
// concrete type is pkg/textview's View.
type Label interface {
	linktap.HostView
	SetBounds(w, h int)
}

type App struct {
	opts    Options
	theme   ui.Theme
	view    Label
	engine  *linktap.Engine
	gesture *linktap.LinkGesture

	frameBuffer *render.FrameBuffer
	canvas      *ebiten.Image
	labelRect   rect

	pressed   bool
	showRects bool
	status    string
}

func New(opts Options, view Label) *App {
	if opts.WidthPx <= 0 {
		opts.WidthPx = 900
	}
	if opts.HeightPx <= 0 {
		opts.HeightPx = 620
	}
	if opts.Title == "" {
		opts.Title = "TapView"
	}

	a := &App{
		opts:   opts,
		theme:  ui.DefaultTheme(),
		view:   view,
		status: "Ready",
	}
	a.engine = linktap.NewEngine(view)
	a.gesture = linktap.NewLinkGesture(a.engine)

	if opts.FilePath != "" {
		if err := a.openFile(opts.FilePath); err != nil {
			a.status = fmt.Sprintf("Open failed: %v", err)
			a.view.SetContent(sampleContent())
		}
	} else {
		a.view.SetContent(sampleContent())
	}
	return a
}

func (a *App) Run() error {
	ebiten.SetWindowSize(a.opts.WidthPx, a.opts.HeightPx)
	ebiten.SetWindowTitle(a.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(a)
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		a.openFileDialog()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		a.showRects = !a.showRects
		if a.showRects {
			a.status = "Accessibility rects on"
		} else {
			a.status = "Accessibility rects off"
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.gesture.Cancel()
		a.pressed = false
		a.status = "Cancelled"
	}

	mx, my := ebiten.CursorPosition()
	lx := float64(mx - a.labelRect.x)
	ly := float64(my - a.labelRect.y)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		a.pressed = true
		if a.gesture.Begin(lx, ly) {
			if hit, ok := a.gesture.Captured(); ok {
				a.status = fmt.Sprintf("Link %q at {%d,%d}", a.view.Content().Slice(hit.Range), hit.Range.Start, hit.Range.Length)
			}
		} else if a.labelRect.contains(mx, my) {
			a.status = "No link there"
		}
	case a.pressed && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		a.gesture.Move(lx, ly)
	case a.pressed && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		a.pressed = false
		if hit, ok := a.gesture.End(lx, ly); ok {
			url, _ := hit.Value.(string)
			if err := clipboard.WriteAll(url); err != nil {
				a.status = fmt.Sprintf("Recognized %s (clipboard: %v)", url, err)
			} else {
				a.status = fmt.Sprintf("Copied %s", url)
			}
		} else {
			a.status = "Released outside link"
		}
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if a.frameBuffer == nil || a.frameBuffer.W != w || a.frameBuffer.H != h {
		a.frameBuffer = render.NewFrameBuffer(w, h)
		a.canvas = ebiten.NewImage(w, h)
	}

	layout := ui.DrawShell(a.frameBuffer, a.theme, 1)
	a.labelRect = rect{
		x: layout.LabelX + labelPadX,
		y: layout.LabelY + labelPadY,
		w: layout.LabelW - labelPadX*2,
		h: layout.LabelH - labelPadY*2,
	}
	if vw, vh := a.view.Bounds(); vw != a.labelRect.w || vh != a.labelRect.h {
		a.view.SetBounds(a.labelRect.w, a.labelRect.h)
	}

	a.frameBuffer.DrawRaster(a.labelRect.x, a.labelRect.y, a.view.RenderContent())

	if a.showRects {
		for _, el := range a.engine.Elements(styled.KeyLink) {
			if r, ok := el.Rect(); ok {
				a.frameBuffer.StrokeRect(a.labelRect.x+r.Min.X, a.labelRect.y+r.Min.Y, r.Dx(), r.Dy(), 1, a.theme.AccessRect)
			}
		}
	}

	a.canvas.WritePixels(a.frameBuffer.Pixels)
	screen.DrawImage(a.canvas, nil)

	face := basicfont.Face7x13
	text.Draw(screen, a.opts.Title+"  —  tap a link, O opens a file, A toggles rects", face, 12, layout.TopBarH/2+4, color.RGBA{R: 236, G: 241, B: 248, A: 255})
	text.Draw(screen, a.status, face, 12, h-a.theme.StatusDp/2+4, color.RGBA{R: 42, G: 56, B: 80, A: 255})
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < 480 {
		outsideWidth = 480
	}
	if outsideHeight < 320 {
		outsideHeight = 320
	}
	return outsideWidth, outsideHeight
}

func (a *App) openFileDialog() {
	path, err := dialog.File().Filter("Text files", "txt", "md").Load()
	if err != nil {
		if err != dialog.ErrCancelled {
			a.status = fmt.Sprintf("Open failed: %v", err)
		}
		return
	}
	if err := a.openFile(path); err != nil {
		a.status = fmt.Sprintf("Open failed: %v", err)
		return
	}
	a.status = fmt.Sprintf("Opened %s", path)
}

func (a *App) openFile(path string) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	a.gesture.Cancel()
	a.view.SetContent(MarkLinks(string(blob)))
	return nil
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"'),\]]+`)

// MarkLinks attaches a link attribute over every http(s) URL in plain
// text. Offsets convert through the styled text so non-ASCII content maps
// correctly to UTF-16 ranges.
func MarkLinks(s string) styled.Text {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	t := styled.New(s)
	linkColor := color.NRGBA{R: 0x1A, G: 0x56, B: 0xB8, A: 0xFF}
	for _, loc := range urlPattern.FindAllStringIndex(s, -1) {
		start := t.U16Offset(loc[0])
		end := t.U16Offset(loc[1])
		r := styled.Range{Start: start, Length: end - start}
		t = t.WithLink(r, s[loc[0]:loc[1]])
		t = t.WithForeground(r, linkColor)
	}
	return t
}

func sampleContent() styled.Text {
	body := "This is a Link.\n" +
		"Plain text between taps stays inert.\n" +
		"Docs live at https://go.dev/doc and the FAQ at https://example.org/faq.\n" +
		"A third line with no links at all."
	t := MarkLinks(body)
	// "Link" in the first line gets an explicit destination and highlight.
	r := styled.Range{Start: 10, Length: 4}
	t = t.WithLink(r, "https://example.com/link")
	t = t.WithForeground(r, color.NRGBA{R: 0x1A, G: 0x56, B: 0xB8, A: 0xFF})
	t = t.WithHighlight(r, color.NRGBA{R: 0xB8, G: 0x33, B: 0x2A, A: 0xFF})
	return t
}

package ui

import (
	"linktap/internal/render"
)

type Layout struct {
	TopBarH   int
	CanvasY   int
	CanvasH   int
	LabelX    int
	LabelY    int
	LabelW    int
	LabelH    int
	StatusBar int
	StatusH   int
}

func ComputeLayout(w, h int, theme Theme, scale float32) Layout {
	if scale <= 0 {
		scale = 1
	}
	dp := func(v int) int { return int(float32(v) * scale) }

	topH := dp(theme.TopBarDp)
	statusH := dp(theme.StatusDp)
	margin := dp(theme.PageMarginDp)

	canvasY := topH
	canvasH := h - canvasY - statusH
	if canvasH < 0 {
		canvasH = 0
	}

	labelW := w - margin*2
	labelH := canvasH - margin*2
	maxLabelW := dp(760)
	if labelW > maxLabelW {
		labelW = maxLabelW
	}
	if labelW < dp(280) {
		labelW = dp(280)
	}
	if labelH < dp(160) {
		labelH = dp(160)
	}

	return Layout{
		TopBarH:   topH,
		CanvasY:   canvasY,
		CanvasH:   canvasH,
		LabelX:    (w - labelW) / 2,
		LabelY:    canvasY + margin,
		LabelW:    labelW,
		LabelH:    labelH,
		StatusBar: h - statusH,
		StatusH:   statusH,
	}
}

func DrawShell(fb *render.FrameBuffer, theme Theme, scale float32) Layout {
	layout := ComputeLayout(fb.W, fb.H, theme, scale)

	fb.Clear(theme.AppBackground)

	fb.FillRect(0, 0, fb.W, layout.TopBarH, theme.TopBar)
	fb.FillRect(0, layout.CanvasY, fb.W, layout.CanvasH, theme.Canvas)

	// Centered label page
	fb.FillRect(layout.LabelX+2, layout.LabelY+2, layout.LabelW, layout.LabelH, theme.Shadow)
	fb.FillRect(layout.LabelX, layout.LabelY, layout.LabelW, layout.LabelH, theme.Page)
	fb.StrokeRect(layout.LabelX, layout.LabelY, layout.LabelW, layout.LabelH, 1, theme.Border)

	accentH := int(3 * scale)
	if accentH < 1 {
		accentH = 1
	}
	fb.FillRect(layout.LabelX, layout.LabelY, layout.LabelW, accentH, theme.Accent)

	fb.FillRect(0, layout.StatusBar, fb.W, layout.StatusH, theme.StatusBar)
	fb.StrokeRect(0, layout.StatusBar, fb.W, layout.StatusH, 1, theme.Border)

	return layout
}

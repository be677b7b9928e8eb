package main

import (
	"flag"
	"fmt"
	"os"

	"linktap/internal/app"
	"linktap/pkg/textview"
)

func main() {
	var opts app.Options
	flag.StringVar(&opts.FilePath, "open", "", "text file to display with auto-marked links")
	flag.IntVar(&opts.WidthPx, "width", 900, "window width in pixels")
	flag.IntVar(&opts.HeightPx, "height", 620, "window height in pixels")
	flag.Parse()
	opts.Title = "TapView"

	view := textview.New(0, 0)
	application := app.New(opts, view)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tapview failed: %v\n", err)
		os.Exit(1)
	}
}

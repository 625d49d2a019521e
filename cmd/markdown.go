package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md for the terminal on stdout.
func printMarkdown(md string) { fmt.Print(renderMarkdown(md)) }

// renderMarkdown renders md for the terminal. It returns md as is with -raw or when rendering fails.
func renderMarkdown(md string) string {
	if *raw {
		return md
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering markdown: %v\n", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering markdown: %v\n", err)
		return md
	}
	return out
}

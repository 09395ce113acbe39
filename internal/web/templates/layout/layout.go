// Package layout holds the page shell shared by every keeper page
package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// FlashMessage is a one-shot banner carried across a redirect
type FlashMessage struct {
	Type    string // "success" or "error"
	Message string
}

// PageData is common to every page
type PageData struct {
	Title  string
	Season int
	Flash  *FlashMessage
}

const styles = `
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 48rem; padding: 0 1rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ddd; padding: .4rem; text-align: left; }
.flash { padding: .6rem 1rem; border-radius: 4px; margin-bottom: 1rem; }
.flash-success { background: #e6f6e6; }
.flash-error { background: #fbe3e3; }
.under-budget { color: #1b7a1b; }
.near-budget { color: #a66b00; }
.over-budget { color: #b00020; font-weight: bold; }
`

// Base renders the document shell around body
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>%s | Keepers %d</title><style>%s</style></head><body>",
			templ.EscapeString(data.Title), data.Season, styles,
		); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<header><h1><a href=\"/\">Keepers %d</a></h1></header><main>", data.Season); err != nil {
			return err
		}
		if data.Flash != nil {
			if err := Flash(*data.Flash).Render(ctx, w); err != nil {
				return err
			}
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}

// Flash renders a banner
func Flash(f FlashMessage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<div class=\"flash flash-%s\" role=\"alert\">%s</div>",
			templ.EscapeString(f.Type), templ.EscapeString(f.Message))
		return err
	})
}

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/genryu22/learn-browser/markup"
	"github.com/genryu22/learn-browser/protocol"
	"github.com/genryu22/learn-browser/url"
)

const (
	rawPreviewLen   = 500
	cleanPreviewLen = 300
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// report renders the outcome of one request as text
type report struct {
	out   io.Writer
	width int
}

func newReport(out io.Writer, width int) *report {
	return &report{out: out, width: width}
}

func (r *report) urlDetails(u url.Url) {
	r.heading("URL Details:")
	r.field("Scheme", u.Scheme.String())
	r.field("Host", u.Host)
	r.field("Path", u.Path)
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Making HTTP request to %s...\n\n", u.Host)
}

func (r *report) response(resp *protocol.HttpResponse) {
	r.heading("Response received:")
	r.field("Version", resp.Version)
	r.field("Status", fmt.Sprintf("%d %s", resp.Status, resp.Explanation))
	fmt.Fprintln(r.out)

	r.heading("Headers:")
	names := make([]string, 0, len(resp.Headers))
	for name := range resp.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.field(name, resp.Headers[name])
	}
	fmt.Fprintln(r.out)

	r.heading(fmt.Sprintf("Raw HTML Body (first %d characters):", rawPreviewLen))
	fmt.Fprintln(r.out, markup.Preview(resp.Body, rawPreviewLen))
	fmt.Fprintln(r.out)

	clean := strings.TrimSpace(markup.Strip(resp.Body))
	r.heading(fmt.Sprintf("Clean Text (HTML tags removed, first %d characters):", cleanPreviewLen))
	fmt.Fprintln(r.out, r.wrap(markup.Preview(clean, cleanPreviewLen)))
	fmt.Fprintln(r.out)

	r.heading("Statistics:")
	r.field("Original length", fmt.Sprintf("%d characters", len(resp.Body)))
	r.field("Headers count", fmt.Sprintf("%d", len(resp.Headers)))
}

func (r *report) failure(err error) {
	fmt.Fprintln(r.out, errorStyle.Render(fmt.Sprintf("Request failed: %v", err)))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, helpStyle.Render("Note: this example needs a network connection."))
	fmt.Fprintln(r.out, helpStyle.Render("   Try URLs like: http://example.com or http://httpbin.org/html"))
}

func (r *report) heading(text string) {
	fmt.Fprintln(r.out, headingStyle.Render(text))
}

func (r *report) field(name, value string) {
	fmt.Fprintf(r.out, "  %s: %s\n", labelStyle.Render(name), value)
}

// wrap soft-wraps text to the terminal width; off a terminal it is a no-op.
func (r *report) wrap(text string) string {
	if r.width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(r.width).Render(text)
}

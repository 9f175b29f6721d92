// Package renderer formats the ledger and the tax reports as markdown.
//
// The markdown is meant to be printed in a terminal with glamour, or handed
// over to the assistant as context.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/equity"
)

// renderer accumulates a markdown document.
type renderer struct {
	*strings.Builder
}

func newRenderer() *renderer {
	return &renderer{Builder: &strings.Builder{}}
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// section writes a block of markdown that is only kept when write returns
// true, once the whole block is known.
func (r *renderer) section(write func(s *renderer) bool) {
	s := newRenderer()
	if write(s) {
		r.WriteString(s.String())
	}
}

// cell returns the string for a value that may be unknown.
func cell(m equity.Money, ok bool) string {
	if !ok {
		return ""
	}
	return m.String()
}

// fmv returns the fair market value of an asset, empty if unknown.
func fmv(a equity.Asset) string {
	return cell(a.FairMarketValue())
}

package tsalert

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// ColorMode controls ANSI styling of rendered output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode converts a string to ColorMode, defaulting to auto.
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(s) {
	case "always", "true", "on":
		return ColorAlways
	case "never", "false", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// DefaultSeparatorWidth is the width of the line printed under each header.
const DefaultSeparatorWidth = 32

// Renderer prints enclosing functions with one highlighted token.
type Renderer struct {
	w              io.Writer
	separatorWidth int

	pathStyle      *color.Color
	highlightStyle *color.Color
	labelStyle     *color.Color
	messageStyle   *color.Color
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, mode ColorMode, separatorWidth int) *Renderer {
	if separatorWidth <= 0 {
		separatorWidth = DefaultSeparatorWidth
	}
	r := &Renderer{
		w:              w,
		separatorWidth: separatorWidth,
		pathStyle:      color.New(color.Bold),
		highlightStyle: color.New(color.FgGreen, color.Bold),
		labelStyle:     color.New(color.FgRed, color.Bold),
		messageStyle:   color.New(color.FgRed),
	}
	for _, c := range []*color.Color{r.pathStyle, r.highlightStyle, r.labelStyle, r.messageStyle} {
		switch mode {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}
	return r
}

// Header prints the "path:line:column" line and the separator for an alert.
func (r *Renderer) Header(a Alert) error {
	_, err := fmt.Fprintf(r.w, "%s:%d:%d\n%s\n",
		r.pathStyle.Sprint(a.File), a.Line, a.Column, strings.Repeat("=", r.separatorWidth))
	return err
}

// Footer ends the block of one alert.
func (r *Renderer) Footer() error {
	_, err := fmt.Fprintln(r.w)
	return err
}

// Render prints the function enclosing node, one numbered row per line. The
// row equal to line (0-based) gets node highlighted, followed by a caret
// underline, the message and a closing underline. Nothing is printed when
// node is nil or has no enclosing function.
func (r *Renderer) Render(unit *SourceUnit, node Node, line int, message string) error {
	if node == nil {
		return nil
	}
	span, ok := unit.EnclosingFunction(node)
	if !ok {
		return nil
	}

	lines := splitLines(unit.Text)
	var sb strings.Builder
	for i := span.Start; i <= span.End && i < len(lines); i++ {
		if i != line {
			fmt.Fprintf(&sb, "%d: %s\n", i+1, lines[i])
			continue
		}
		r.writeTarget(&sb, i, lines[i], node, message)
	}

	_, err := io.WriteString(r.w, sb.String())
	return err
}

func (r *Renderer) writeTarget(sb *strings.Builder, row int, text string, node Node, message string) {
	start, end := tokenBounds(node, utf8.RuneCountInString(text))
	bs, be := byteOffset(text, start), byteOffset(text, end)

	fmt.Fprintf(sb, "%d: ", row+1)
	sb.WriteString(text[:bs])
	sb.WriteString(r.highlightStyle.Sprint(text[bs:be]))
	sb.WriteString(text[be:])
	sb.WriteByte('\n')

	// The caret arithmetic is tuned to the "N: " line prefix; keep it as is.
	sb.WriteString(dashes(end + start - 2))
	sb.WriteString("^\n")
	sb.WriteString(r.labelStyle.Sprint("ALERT:"))
	sb.WriteByte(' ')
	sb.WriteString(r.messageStyle.Sprint(message))
	sb.WriteByte('\n')
	sb.WriteString(dashes(end + start - 1))
	sb.WriteByte('\n')
}

// tokenBounds clamps the node's character columns to a line of n characters.
func tokenBounds(node Node, n int) (start, end int) {
	start = node.StartPosition().Column
	end = node.EndPosition().Column
	if node.EndPosition().Row != node.StartPosition().Row {
		end = n
	}
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	return start, end
}

// byteOffset returns the byte offset of character column col in text.
// Invalid bytes count as one character each, as in utf8.RuneCount.
func byteOffset(text string, col int) int {
	off := 0
	for i := 0; i < col && off < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
	}
	return off
}

func dashes(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("-", n)
}

// splitLines splits text on newlines, dropping a trailing "\r" from each line
// and the empty element after a final newline.
func splitLines(text []byte) []string {
	if len(text) == 0 {
		return nil
	}
	lines := strings.Split(string(text), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

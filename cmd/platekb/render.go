package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"

	"github.com/dshills/platekb/internal/config"
	"github.com/dshills/platekb/internal/keyboard/key"
	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/keyboard/request"
)

// cellWidth is the display width of one key in the text grid.
const cellWidth = 6

type printer struct {
	out    io.Writer
	format string
}

func (p printer) printLayout(l layout.Layout) error {
	if p.format == config.OutputText {
		_, err := io.WriteString(p.out, renderGrid(l))
		return err
	}
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}

// printError writes a JSON error envelope to the output in JSON mode and a
// plain message to stderr otherwise.
func (p printer) printError(err error, stderr io.Writer) {
	if p.format == config.OutputJSON {
		fmt.Fprintln(p.out, string(request.ErrorEnvelope(err)))
		return
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
}

// renderGrid draws the layout one row per line. Disabled keys are shown
// in parentheses.
func renderGrid(l layout.Layout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d %q %s (detected %s) %d/%d\n",
		l.KeyboardType, l.Index, l.PresetNumber, l.NumberType, l.DetectedNumberType,
		l.NumberLength, l.NumberLimitLength)

	for i := 0; i < layout.MaxRows; i++ {
		row := l.Row(i)
		if len(row) == 0 {
			continue
		}
		for _, k := range row {
			b.WriteString(pad(label(k), cellWidth))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func label(k key.Key) string {
	text := k.Text
	switch k.Code {
	case key.CodeDelete:
		text = "DEL"
	case key.CodeMore:
		text = "..."
	}
	if !k.Enabled && strings.TrimSpace(text) != "" {
		return "(" + text + ")"
	}
	return text
}

// pad centers s in a cell of n display columns.
func pad(s string, n int) string {
	w := displayWidth(s)
	if w >= n {
		return s
	}
	left := (n - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", n-w-left)
}

// displayWidth counts East Asian wide and fullwidth characters as two columns.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

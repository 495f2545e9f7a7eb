package ui

import (
	"fmt"
	"math"
	"strings"

	"pitdash.klederson.com/internal/signal"
)

// SignalRow pairs a definition with its latest reading.
type SignalRow struct {
	Def     signal.Definition
	Reading signal.Reading
}

// RenderSignalList renders the scrollable signal panel. The title stays fixed
// at the top; only the entries scroll.
func RenderSignalList(rows []SignalRow, width, height, scroll int) string {
	innerW := max(20, width-4)

	title := StylePanelTitle.Render(fmt.Sprintf("SIGNALS [%d]", len(rows)))
	separator := StyleSeparator.Render(strings.Repeat("-", innerW))
	headerLines := []string{title, separator}

	innerH := max(len(headerLines)+1, height-2)
	rowSpace := innerH - len(headerLines)

	var rowLines []string
	if len(rows) == 0 {
		rowLines = append(rowLines, "", StyleHelp.Render(" No signals in schema"))
	} else {
		linesPerRow := 3 // 2 content + 1 blank
		maxVisible := max(1, rowSpace/linesPerRow)

		start := 0
		if scroll >= maxVisible {
			start = scroll - maxVisible + 1
		}
		start = min(start, len(rows)-1)

		for i := start; i < len(rows) && len(rowLines) < rowSpace; i++ {
			for _, l := range renderSignalEntry(rows[i], innerW) {
				if len(rowLines) >= rowSpace {
					break
				}
				rowLines = append(rowLines, l)
			}
		}
	}

	for len(rowLines) < rowSpace {
		rowLines = append(rowLines, "")
	}
	if len(rowLines) > rowSpace {
		rowLines = rowLines[:rowSpace]
	}

	all := make([]string, 0, innerH)
	all = append(all, headerLines...)
	all = append(all, rowLines...)

	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(all, "\n"))
	return clampLines(rendered, height)
}

func renderSignalEntry(row SignalRow, maxW int) []string {
	d, r := row.Def, row.Reading

	name := truncRaw(strings.ToUpper(d.Name), 10)

	value := "--"
	if r.Observed {
		value = FormatValue(d, r.Value)
	}
	value = fmt.Sprintf("%9s", value)

	gaugeW := max(5, maxW-40)
	fraction := 0.0
	if r.Observed {
		fraction = d.Fraction(r.Value)
	}

	var (
		valueStr string
		tag      string
	)
	switch {
	case !r.Observed:
		valueStr = StyleNoData.Render(value)
		tag = StyleNoData.Render("NO DATA")
	case r.Stale:
		valueStr = StyleStale.Render(value)
		tag = StyleStale.Render("STALE")
	case !d.InRange(r.Value):
		valueStr = StyleOutOfRange.Render(value)
		tag = StyleOutOfRange.Render("RANGE")
	default:
		valueStr = StyleSignalValue.Render(value)
	}

	line1 := " " + StyleSignalName.Render(name) + " " + valueStr + " " +
		StyleSignalUnit.Render(truncRaw(d.Unit, 7)) + " " +
		renderGauge(fraction, gaugeW, r.Observed && !r.Stale) + " " + tag

	desc := d.Description
	if desc == "" {
		desc = fmt.Sprintf("%s..%s %s", FormatValue(d, d.Min), FormatValue(d, d.Max), d.Unit)
	}
	line2 := StyleSignalDesc.Render(" " + strings.TrimRight(truncRaw(desc, maxW-2), " "))

	return []string{line1, line2, ""}
}

func renderGauge(fraction float64, w int, live bool) string {
	filled := int(math.Round(fraction * float64(w)))
	on, off := strings.Repeat("=", filled), strings.Repeat("-", w-filled)
	if !live {
		return StyleGaugeOff.Render("[" + on + off + "]")
	}
	return StyleGaugeOff.Render("[") + StyleGaugeOn.Render(on) + StyleGaugeOff.Render(off+"]")
}

// FormatValue prints v with a precision suited to the signal's range.
func FormatValue(d signal.Definition, v float64) string {
	span := d.Max - d.Min
	switch {
	case span >= 1000:
		return fmt.Sprintf("%.0f", v)
	case span >= 10:
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if len(s) > w {
		return s[:w]
	}
	return s + strings.Repeat(" ", w-len(s))
}

// clampLines forces rendered output to exactly height lines. lipgloss Height()
// only sets a minimum.
func clampLines(rendered string, height int) string {
	lines := strings.Split(rendered, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
)

// WrapLines decides which text of a row may wrap. When the primary text is at
// least as long as the accessory text, the primary label wraps (0) and the
// accessory stays on one line (1). Otherwise the accessory wraps and the
// primary stays on one line. Lengths count grapheme clusters.
func WrapLines(primary, accessory string) (primaryLines, accessoryLines int) {
	if uniseg.GraphemeClusterCount(primary) >= uniseg.GraphemeClusterCount(accessory) {
		return 0, 1
	}
	return 1, 0
}

const (
	checkmarkGlyph  = "✓"
	disclosureGlyph = "›"
	switchOnGlyph   = "● on"
	switchOffGlyph  = "○ off"
	ellipsis        = "…"
)

// accessory returns the accessory content, styled, and whether it was drawn
// by a view (views size themselves and are not wrapped).
func (r *Row) accessory(budget int) (string, bool) {
	a := r.Appearance
	style := a.AccessoryStyle()
	if r.Disabled {
		style = a.DisabledStyle()
	}

	switch r.Accessory {
	case AccessoryText, AccessoryImage:
		return r.AccessoryText, false
	case AccessoryCheckmark:
		return a.OnStyle().Render(checkmarkGlyph), true
	case AccessoryDisclosure:
		if r.AccessoryText == "" {
			return style.Render(disclosureGlyph), true
		}
		return r.AccessoryText + " " + disclosureGlyph, false
	case AccessorySwitch:
		switch {
		case !r.Switch.Enabled:
			glyph := switchOffGlyph
			if r.Switch.On {
				glyph = switchOnGlyph
			}
			return a.DisabledStyle().Render(glyph), true
		case r.Switch.On:
			return a.OnStyle().Render(switchOnGlyph), true
		default:
			return style.Render(switchOffGlyph), true
		}
	case AccessoryView:
		if r.AccessoryRender == nil {
			return "", true
		}
		return r.AccessoryRender(budget), true
	default:
		return "", false
	}
}

// fit lays text out in width cells: one line truncates, 0 wraps freely, any
// other count wraps and then clips.
func fit(text string, width, lines int) string {
	if width < 1 {
		width = 1
	}
	if lines == 1 {
		return ansi.Truncate(strings.ReplaceAll(text, "\n", " "), width, ellipsis)
	}
	s := lipgloss.NewStyle().Width(width)
	if lines > 1 {
		s = s.MaxHeight(lines)
	}
	return s.Render(text)
}

// Render draws the row in width cells.
func (r *Row) Render(width int) string {
	a := r.Appearance
	labelStyle := a.LabelStyle()
	accStyle := a.AccessoryStyle()
	if r.Disabled {
		labelStyle = a.DisabledStyle()
		accStyle = labelStyle
	}

	lead := ""
	if r.Icon != "" {
		lead = r.Icon + " "
	}
	avail := width - lipgloss.Width(lead)
	if avail < 2 {
		avail = 2
	}

	acc, drawn := r.accessory(avail / 2)
	textNat := lipgloss.Width(r.Text)
	accNat := lipgloss.Width(acc)
	gap := 0
	if accNat > 0 {
		gap = 1
	}

	textW, accW := textNat, accNat
	if accNat == 0 {
		textW = min(textNat, avail)
	} else if textNat+gap+accNat > avail {
		half := (avail - gap) / 2
		switch {
		case drawn:
			accW = min(accNat, avail-gap-1)
			textW = avail - gap - accW
		case r.TextLines != 1 && r.AccessoryLines == 1:
			accW = min(accNat, half)
			textW = avail - gap - accW
		case r.TextLines == 1 && r.AccessoryLines != 1:
			textW = min(textNat, half)
			accW = avail - gap - textW
		default:
			textW = half
			accW = avail - gap - half
		}
	}

	left := labelStyle.Render(fit(r.Text, textW, r.TextLines))
	if lead != "" {
		left = lipgloss.JoinHorizontal(lipgloss.Top, lead, left)
	}

	out := left
	if accNat > 0 {
		right := acc
		if !drawn {
			right = accStyle.Render(fit(acc, accW, r.AccessoryLines))
		}
		leftW := width - gap - lipgloss.Width(right)
		if leftW < 1 {
			leftW = 1
		}
		out = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(leftW).Render(left),
			strings.Repeat(" ", gap),
			right,
		)
	}

	if r.Height > 0 {
		out = lipgloss.NewStyle().Height(r.Height).MaxHeight(r.Height).Render(out)
	}
	return out
}

package table

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name          string
		primary       string
		accessory     string
		wantPrimary   int
		wantAccessory int
	}{
		{"primary longer", "Phone number", "+1", 0, 1},
		{"accessory longer", "Name", "Jonathan Appleseed", 1, 0},
		{"equal length", "abcd", "wxyz", 0, 1},
		{"both empty", "", "", 0, 1},
		{"empty accessory", "Label", "", 0, 1},
		{"empty primary", "", "value", 1, 0},
		{"graphemes not bytes", "héllo", "abcde", 0, 1},
		{"emoji cluster counts once", "ab", "👍🏽", 0, 1},
		{"one short", "abc", "abcd", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, a := WrapLines(tt.primary, tt.accessory)
			if p != tt.wantPrimary || a != tt.wantAccessory {
				t.Errorf("WrapLines(%q, %q) = %d, %d; want %d, %d",
					tt.primary, tt.accessory, p, a, tt.wantPrimary, tt.wantAccessory)
			}
		})
	}
}

func lines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestRenderPrimaryWraps(t *testing.T) {
	row := &Row{
		Text:           "a very long primary label that has to wrap",
		Accessory:      AccessoryText,
		AccessoryText:  "short",
		AccessoryLines: 1,
	}

	out := lines(row.Render(30))
	if len(out) < 2 {
		t.Fatalf("primary label should wrap, got %q", out)
	}
	if !strings.Contains(out[0], "short") {
		t.Errorf("accessory should stay whole on the first line, got %q", out[0])
	}
	for _, l := range out {
		if lipgloss.Width(l) > 30 {
			t.Errorf("line %q wider than 30", l)
		}
	}
}

func TestRenderAccessoryWraps(t *testing.T) {
	row := &Row{
		Text:          "Name",
		TextLines:     1,
		Accessory:     AccessoryText,
		AccessoryText: "this accessory value is definitely longer than the label",
	}

	out := lines(row.Render(30))
	if len(out) < 2 {
		t.Fatalf("accessory should wrap, got %q", out)
	}
	if !strings.HasPrefix(out[0], "Name") {
		t.Errorf("primary label should stay on the first line, got %q", out[0])
	}
	for _, l := range out[1:] {
		if strings.Contains(l, "Name") {
			t.Errorf("single-line primary label leaked onto %q", l)
		}
	}
}

func TestRenderSingleLineTruncates(t *testing.T) {
	row := &Row{
		Text:           "Short",
		TextLines:      1,
		Accessory:      AccessoryText,
		AccessoryText:  "x",
		AccessoryLines: 1,
	}
	row.Text = strings.Repeat("long ", 20)

	out := lines(row.Render(20))
	if len(out) != 1 {
		t.Fatalf("both single-line texts should give one line, got %q", out)
	}
	if !strings.Contains(out[0], ellipsis) {
		t.Errorf("truncated label should end with an ellipsis, got %q", out[0])
	}
}

func TestRenderAccessories(t *testing.T) {
	tests := []struct {
		name string
		row  *Row
		want string
	}{
		{"checkmark", &Row{Text: "Dark", Accessory: AccessoryCheckmark}, checkmarkGlyph},
		{"disclosure", &Row{Text: "Username", Accessory: AccessoryDisclosure}, disclosureGlyph},
		{"disclosure value", &Row{Text: "Username", Accessory: AccessoryDisclosure, AccessoryText: "jo.42", AccessoryLines: 1}, "jo.42 " + disclosureGlyph},
		{"switch on", &Row{Text: "Receipts", Accessory: AccessorySwitch, Switch: SwitchState{On: true, Enabled: true}}, switchOnGlyph},
		{"switch off", &Row{Text: "Receipts", Accessory: AccessorySwitch, Switch: SwitchState{Enabled: true}}, switchOffGlyph},
		{"image", &Row{Text: "Status", Accessory: AccessoryImage, AccessoryText: "◉", AccessoryLines: 1}, "◉"},
		{"view", &Row{Text: "Meter", Accessory: AccessoryView, AccessoryRender: func(int) string { return "[###]" }}, "[###]"},
		{"icon", &Row{Icon: "★", Text: "Starred"}, "★ Starred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ansi.Strip(tt.row.Render(40))
			if !strings.Contains(out, tt.want) {
				t.Errorf("Render() = %q, want it to contain %q", out, tt.want)
			}
		})
	}
}

func TestRenderFixedHeight(t *testing.T) {
	row := &Row{Text: "Tall", Height: 3}
	if got := len(lines(row.Render(20))); got != 3 {
		t.Errorf("rendered %d lines, want 3", got)
	}

	row = &Row{Text: strings.Repeat("wrap me ", 10), Height: 1}
	if got := len(lines(row.Render(20))); got != 1 {
		t.Errorf("rendered %d lines, want height clipped to 1", got)
	}
}

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rm-hull/product-sheets/internal/models"
)

const dialogWidth = 60

// Dialog renders the product dialog to a terminal. Output is written when
// the dialog becomes visible.
type Dialog struct {
	w       io.Writer
	content models.ModalContent
	visible bool
	closeUp bool
	err     error
}

func NewDialog(w io.Writer) *Dialog {
	return &Dialog{w: w}
}

func (d *Dialog) Render(content models.ModalContent) {
	d.content = content
}

func (d *Dialog) SetVisible(visible bool) {
	if visible && !d.visible {
		_, d.err = fmt.Fprintln(d.w, d.View())
	}
	d.visible = visible
}

// SetScrollLocked is a no-op: a terminal has no page behind the dialog.
func (d *Dialog) SetScrollLocked(bool) {}

func (d *Dialog) FocusClose() {
	d.closeUp = true
}

func (d *Dialog) Visible() bool {
	return d.visible
}

// Err reports the last write failure, if any.
func (d *Dialog) Err() error {
	return d.err
}

func (d *Dialog) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("33"))

	labelStyle := lipgloss.NewStyle().
		Faint(true).
		Width(14)

	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(dialogWidth)

	var content strings.Builder
	content.WriteString(titleStyle.Render(d.content.Title))
	content.WriteString("\n\n")

	if d.content.Image != nil {
		content.WriteString(labelStyle.Render("Image"))
		content.WriteString(fmt.Sprintf("%s (%s)\n", d.content.Image.Src, d.content.Image.Alt))
	}

	content.WriteString(d.content.Description)
	content.WriteString("\n\n")

	for _, field := range []struct{ label, value string }{
		{"Price", d.content.Price},
		{"Unit", d.content.Unit},
		{"Availability", d.content.Availability},
		{"SKU", d.content.SKU},
	} {
		content.WriteString(labelStyle.Render(field.label))
		content.WriteString(field.value)
		content.WriteString("\n")
	}

	closeLabel := "[ close ]"
	if d.closeUp {
		closeLabel = lipgloss.NewStyle().Reverse(true).Render(closeLabel)
	}
	content.WriteString("\n")
	content.WriteString(closeLabel)

	return borderStyle.Render(content.String())
}

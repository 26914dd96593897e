package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal draws pages as aligned text for the command line. Colors are
// only emitted when w is a terminal.
type Terminal struct{}

func (Terminal) Render(w io.Writer, p Page) error {
	if err := checkPage(p); err != nil {
		return err
	}

	st := newTermStyles(lipgloss.NewRenderer(w))
	var b strings.Builder

	if p.Flash != "" {
		b.WriteString(st.flash.Render(p.Flash) + "\n\n")
	}

	switch p.Mode {
	case ModeCatalog:
		writeCatalog(&b, st, p.Catalog)
	case ModeCart:
		writeCart(&b, st, p.Cart)
	}

	fmt.Fprintf(&b, "\n%s\n", st.muted.Render(fmt.Sprintf("Cart: %d item(s)  ·  %d", p.Count, p.Year)))
	_, err := io.WriteString(w, b.String())
	return err
}

type termStyles struct {
	title, header, muted, flash, total lipgloss.Style
	id, name, money, qty              lipgloss.Style
}

func newTermStyles(r *lipgloss.Renderer) termStyles {
	return termStyles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		header: r.NewStyle().Bold(true).Underline(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("244")),
		flash:  r.NewStyle().Foreground(lipgloss.Color("42")),
		total:  r.NewStyle().Bold(true),
		id:     r.NewStyle().Width(5),
		name:   r.NewStyle().Width(24),
		money:  r.NewStyle().Width(10).Align(lipgloss.Right),
		qty:    r.NewStyle().Width(5).Align(lipgloss.Right),
	}
}

func writeCatalog(b *strings.Builder, st termStyles, v *CatalogView) {
	b.WriteString(st.title.Render("Products") + "\n")
	for _, c := range v.Cards {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			st.id.Render("#"+strconv.Itoa(c.ID)),
			st.name.Render(c.Name),
			st.money.Render(FormatPrice(c.Price)),
		) + "\n")
	}
}

func writeCart(b *strings.Builder, st termStyles, v *CartView) {
	b.WriteString(st.title.Render("Your cart") + "\n")
	if len(v.Rows) == 0 {
		b.WriteString(st.muted.Render("(empty)") + "\n")
	} else {
		b.WriteString(st.header.Render(lipgloss.JoinHorizontal(lipgloss.Top,
			st.id.Render("ID"),
			st.name.Render("Product"),
			st.money.Render("Price"),
			st.qty.Render("Qty"),
			st.money.Render("Subtotal"),
		)) + "\n")
		for _, r := range v.Rows {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
				st.id.Render("#"+strconv.Itoa(r.ID)),
				st.name.Render(r.Name),
				st.money.Render(FormatPrice(r.Price)),
				st.qty.Render(strconv.Itoa(r.Quantity)),
				st.money.Render(FormatPrice(r.Subtotal)),
			) + "\n")
		}
	}

	if len(v.Dangling) > 0 {
		fmt.Fprintf(b, "%s\n", st.muted.Render(fmt.Sprintf("%d line(s) reference products no longer sold; run prune to drop them", len(v.Dangling))))
	}
	fmt.Fprintf(b, "\n%s %s\n", st.total.Render("Total:"), FormatPrice(v.Total))
}

package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/quarkonium/internal/storage"
)

// Browser steps through the states of one stored run.
type Browser struct {
	meta          *storage.RunMetadata
	table         *storage.Table
	cursor        int
	overlay       bool
	theme         int
	width, height int
}

func NewBrowser(meta *storage.RunMetadata, t *storage.Table) Browser {
	return Browser{meta: meta, table: t, width: 100, height: 30}
}

// WithTheme starts the browser on the named theme. Unknown names keep the
// current one.
func (b Browser) WithTheme(name string) Browser {
	for i, n := range ThemeNames() {
		if n == name {
			b.theme = i
		}
	}
	return b
}

func (b Browser) Cursor() int   { return b.cursor }
func (b Browser) Overlay() bool { return b.overlay }
func (b Browser) Theme() Theme  { return Themes[b.theme] }
func (b Browser) Init() tea.Cmd { return nil }
func (b Browser) states() int   { return len(b.table.U) }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return b, tea.Quit
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
		case "down", "j":
			if b.cursor < b.states()-1 {
				b.cursor++
			}
		case "o":
			b.overlay = !b.overlay
		case "t":
			b.theme = (b.theme + 1) % len(Themes)
		}
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
	}
	return b, nil
}

func (b Browser) View() string {
	th := b.Theme()
	var sb strings.Builder

	title := "quarkonium"
	if b.meta != nil {
		title = fmt.Sprintf("%s · b=%.5f · %s", b.meta.Name, b.meta.Slope, b.meta.Integrator)
	}
	sb.WriteString("\n  " + GradientText(title, th.Secondary, th.Primary) + "\n  " + Separator(max(b.width-4, 8)) + "\n\n")

	cursor := lipgloss.NewStyle().Foreground(th.Secondary).Bold(true)
	muted := lipgloss.NewStyle().Foreground(th.Muted)
	for i, label := range b.table.Labels {
		line := fmt.Sprintf("%-10s", label)
		if rec := b.record(i); rec != nil {
			line += fmt.Sprintf("  E=%9.5f  M=%8.4f GeV", rec.Energy, rec.Mass)
		}
		if i < len(b.table.U) {
			line += "  " + Sparkline(b.table.U[i], 24)
		}
		if i == b.cursor {
			sb.WriteString("  " + cursor.Render("▸ "+line) + "\n")
		} else {
			sb.WriteString("  " + muted.Render("  "+line) + "\n")
		}
	}
	sb.WriteString("\n")

	cols := []int{b.cursor}
	caption := ""
	if b.cursor < len(b.table.Labels) {
		caption = "u(r) " + b.table.Labels[b.cursor]
	}
	if b.overlay {
		cols = make([]int, b.states())
		for i := range cols {
			cols[i] = i
		}
		caption = "u(r) all states"
	}
	chartWidth := max(b.width-16, 20)
	chartHeight := max(b.height-b.states()-16, 6)
	sb.WriteString(Chart(b.table, cols, chartWidth, chartHeight, caption, th.Series) + "\n\n")

	if rec := b.record(b.cursor); rec != nil {
		names := make([]string, 0, len(rec.Metrics))
		for k := range rec.Metrics {
			names = append(names, k)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names)+1)
		parts = append(parts, MetricLabel.Render("iterations ")+MetricValue.Render(fmt.Sprint(rec.Iterations)))
		for _, k := range names {
			parts = append(parts, MetricLabel.Render(k+" ")+MetricValue.Render(fmt.Sprintf("%.4g", rec.Metrics[k])))
		}
		panel := Panel.BorderForeground(th.Accent).Render(strings.Join(parts, "  "))
		sb.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(panel) + "\n\n")
	}

	sb.WriteString("  " + KeyHint.Render("j/k select  o overlay  t theme  q quit") + "\n")
	return sb.String()
}

func (b Browser) record(i int) *storage.StateRecord {
	if b.meta == nil || i < 0 || i >= len(b.meta.States) {
		return nil
	}
	return &b.meta.States[i]
}

func RunBrowser(meta *storage.RunMetadata, t *storage.Table, theme string) error {
	_, err := tea.NewProgram(NewBrowser(meta, t).WithTheme(theme), tea.WithAltScreen()).Run()
	return err
}

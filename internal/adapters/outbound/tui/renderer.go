// Package tui renders human-readable reports. Output here is informational
// only; no consumer parses it.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/layerguard/layerguard/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	kindStyle     = lipgloss.NewStyle().Bold(true).Foreground(danger)
	softKindStyle = lipgloss.NewStyle().Bold(true).Foreground(warning)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// remediation is the fixed note closing every violation report.
const remediation = `Core modules must not directly import UI, Network, or Filesystem layers.
Instead, use dependency injection or abstract interfaces.
For more info, see: docs/architecture/layer-guidelines.md`

// RenderReport renders the full human report: a clean banner when nothing
// was found, otherwise the violations grouped by kind in first-seen order
// with the remediation note appended.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	title := headerStyle.Render("layerguard")
	subtitle := dimStyle.Render("Architectural Boundary Report")

	if report.IsClean() {
		verdict := passStyle.Bold(true).Render("PASS")
		b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
		b.WriteString("\n\n")
		b.WriteString("  " + passStyle.Render("No architectural violations found. All layer boundaries are respected.") + "\n")
		return b.String()
	}

	verdict := failStyle.Bold(true).Render(fmt.Sprintf("FAIL  %d violation(s)", len(report.Violations)))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	for _, group := range report.GroupByKind() {
		style := kindStyle
		if group.Kind == domain.KindPotentialViolation {
			style = softKindStyle
		}
		b.WriteString("  ")
		b.WriteString(style.Render(string(group.Kind)))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d violations)", len(group.Violations))))
		b.WriteString("\n")
		for _, v := range group.Violations {
			b.WriteString("    - ")
			b.WriteString(fileStyle.Render(fmt.Sprintf("%s:%d", v.File, v.Line)))
			b.WriteString(" ")
			b.WriteString(v.Detail)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine + "\n\n")
	b.WriteString("  " + titleStyle.Render("Remediation") + "\n")
	for _, line := range strings.Split(remediation, "\n") {
		b.WriteString("  " + dimStyle.Render(line) + "\n")
	}

	return b.String()
}

// RenderHistory renders past runs, most recent last.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return dimStyle.Render("No run history yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Run History") + "\n\n")
	for _, e := range entries {
		verdict := passStyle.Render("clean")
		if !e.Clean {
			verdict = failStyle.Render(fmt.Sprintf("%d violation(s)", e.Total))
		}
		commit := e.CommitHash
		if len(commit) > 8 {
			commit = commit[:8]
		}
		if commit == "" {
			commit = "-"
		}
		b.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
			dimStyle.Render(e.Timestamp),
			faintStyle.Render(commit),
			dimStyle.Render(string(e.Profile)),
			verdict))
	}
	return b.String()
}

// RenderRules renders the effective rule table for one registry.
func RenderRules(registry *domain.Registry) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Effective Rules") + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("profile: %s   io_policy: %s", registry.Profile(), registry.IOPolicy())) + "\n\n")

	for _, name := range registry.LayerNames() {
		rule, _ := registry.LayerRuleFor(name)
		b.WriteString("  " + warnStyle.Bold(true).Render("layer "+rule.Name) + "\n")

		b.WriteString("    " + titleStyle.Render("file patterns") + "\n")
		for _, p := range rule.FilePatterns {
			b.WriteString("      " + dimStyle.Render(p) + "\n")
		}

		b.WriteString("    " + titleStyle.Render("forbidden imports") + "\n")
		b.WriteString("      " + dimStyle.Render(strings.Join(rule.ForbiddenImports, ", ")) + "\n")

		b.WriteString("    " + titleStyle.Render("forbidden dependencies") + "\n")
		deps := make([]string, 0, len(rule.ForbiddenDeps))
		for dep := range rule.ForbiddenDeps {
			deps = append(deps, dep)
		}
		sort.Strings(deps)
		for _, dep := range deps {
			fd := rule.ForbiddenDeps[dep]
			if fd.Wildcard {
				b.WriteString("      " + dimStyle.Render(dep+" = *") + "\n")
			} else {
				b.WriteString("      " + dimStyle.Render(fmt.Sprintf("%s = %v", dep, fd.Features)) + "\n")
			}
		}
	}

	b.WriteString("\n    " + titleStyle.Render("forbidden std imports") + "\n")
	b.WriteString("      " + dimStyle.Render(strings.Join(domain.ForbiddenStdImports, ", ")) + "\n")

	return b.String()
}

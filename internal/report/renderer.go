package report

import (
	"fmt"
	"strings"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/stats"
	"cs2kz_stats/internal/domain/summary"
	"cs2kz_stats/internal/domain/tier"

	"github.com/charmbracelet/lipgloss"
)

// Renderer draws catalog pages and course reports for the terminal. Tier
// labels use the tier color table.
type Renderer struct {
	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	mutedStyle  lipgloss.Style
	tierStyles  map[tier.Tier]lipgloss.Style
}

// NewRenderer creates a renderer with one style per tier
func NewRenderer() *Renderer {
	tierStyles := make(map[tier.Tier]lipgloss.Style)
	for _, t := range tier.Tiers() {
		color, _ := tier.Color(t)
		tierStyles[t] = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	}

	return &Renderer{
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("240")),
		mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		tierStyles:  tierStyles,
	}
}

// TierLabel returns the colored display name of a tier. Unknown tiers are
// printed as-is without color.
func (r *Renderer) TierLabel(t tier.Tier) string {
	style, ok := r.tierStyles[t]
	if !ok {
		return string(t)
	}
	return style.Render(tier.DisplayName(t))
}

// paddedTierLabel pads by visible width; fmt padding would count ANSI codes
func (r *Renderer) paddedTierLabel(t tier.Tier) string {
	label := r.TierLabel(t)
	padding := tierColumnWidth - lipgloss.Width(label)
	if padding < 1 {
		padding = 1
	}
	return label + strings.Repeat(" ", padding)
}

// RenderCatalogPage draws one page of the course catalog
func (r *Renderer) RenderCatalogPage(courses []app.CourseInfo, query app.CourseQuery, total int) string {
	var b strings.Builder

	b.WriteString(r.titleStyle.Render(fmt.Sprintf("Courses (%s, %s)", query.Mode, query.LeaderboardType)) + "\n")

	first := 0
	if len(courses) > 0 {
		first = query.Offset + 1
	}
	b.WriteString(r.mutedStyle.Render(fmt.Sprintf("showing %d-%d of %d", first, query.Offset+len(courses), total)) + "\n\n")

	if len(courses) == 0 {
		b.WriteString(r.mutedStyle.Render("No courses found") + "\n")
		return b.String()
	}

	b.WriteString(r.headerStyle.Render(fmt.Sprintf("%-24s %-20s %-12s %-10s %s", "Map", "Course", "Tier", "State", "Created")) + "\n")
	for _, course := range courses {
		b.WriteString(fmt.Sprintf("%-24s %-20s %s%-10s %s\n",
			course.Map,
			course.Name,
			r.paddedTierLabel(course.Tier),
			course.State,
			FormatTimestamp(course.CreatedOn, true),
		))
	}

	return b.String()
}

// RenderAvailability draws a tier histogram as labelled bars
func (r *Renderer) RenderAvailability(title string, h stats.TierHistogram) string {
	var b strings.Builder
	b.WriteString(r.titleStyle.Render(title) + "\n")

	peak := 0
	for _, count := range h {
		if count > peak {
			peak = count
		}
	}

	for i, t := range tier.CompletableTiers() {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("█", h[i]*barWidth/peak)
		}
		b.WriteString(fmt.Sprintf("%s%5d %s\n", r.paddedTierLabel(t), h[i], r.tierStyles[t].Render(bar)))
	}
	b.WriteString(r.mutedStyle.Render(fmt.Sprintf("total %d", h.Total())) + "\n")

	return b.String()
}

const (
	barWidth        = 30
	tierColumnWidth = 12
)

// RenderCourseReport draws the distribution and WR history of a course
func (r *Renderer) RenderCourseReport(report summary.CourseReport) string {
	var b strings.Builder

	b.WriteString(r.titleStyle.Render(report.Title()) + "\n")
	b.WriteString(r.mutedStyle.Render(fmt.Sprintf("%d records, %s facet", report.Records, report.Facet)) + "\n\n")
	r.writeDistribution(&b, report.Distribution)

	b.WriteString(r.headerStyle.Render("WR History") + "\n")
	if len(report.History) == 0 {
		b.WriteString(r.mutedStyle.Render("No records") + "\n")
		return b.String()
	}
	for _, entry := range report.History {
		improved := ""
		if entry.TimeImproved > 0 {
			improved = "-" + FormatRunTime(entry.TimeImproved)
		}
		b.WriteString(fmt.Sprintf("%s  %-20s %12s %10s  %d TP\n",
			FormatTimestamp(entry.SubmittedAt, false),
			entry.Player.Name,
			FormatRunTime(entry.Time),
			improved,
			entry.Teleports,
		))
	}

	return b.String()
}

// RenderPlayerReport draws a player's distribution and their completed
// courses per tier against the catalog
func (r *Renderer) RenderPlayerReport(report summary.PlayerReport) string {
	var b strings.Builder

	b.WriteString(r.titleStyle.Render(report.Title()) + "\n")
	b.WriteString(r.mutedStyle.Render(fmt.Sprintf("%d records, %s facet", report.Records, report.Facet)) + "\n\n")
	r.writeDistribution(&b, report.Distribution)

	b.WriteString(r.headerStyle.Render("Completed courses") + "\n")
	for i, t := range tier.CompletableTiers() {
		b.WriteString(fmt.Sprintf("%s%4d / %-4d %5.1f%%\n",
			r.paddedTierLabel(t),
			report.CompletionsByTier[i],
			report.AvailableByTier[i],
			report.CompletionPercent(i),
		))
	}
	b.WriteString(r.mutedStyle.Render(fmt.Sprintf("total %d / %d", report.CompletionsByTier.Total(), report.AvailableByTier.Total())) + "\n")

	return b.String()
}

func (r *Renderer) writeDistribution(b *strings.Builder, dist stats.Distribution) {
	b.WriteString(r.headerStyle.Render("Distribution") + "\n")
	fmt.Fprintf(b, "WRs %d  Top 20 %d  Top 50 %d  Top 100 %d\n", dist.WRs, dist.Top20, dist.Top50, dist.Top100)
	for i, count := range dist.PointsDist {
		fmt.Fprintf(b, "  %6s-%-6s %d\n", SeparateThousands(float64(i*1000)), SeparateThousands(float64((i+1)*1000)), count)
	}
	b.WriteString("\n")
}

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stint/internal/cachemanager"
	"github.com/zjrosen/stint/internal/config"
	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/ui/shared/markdown"
	"github.com/zjrosen/stint/internal/ui/styles"
)

var (
	reportFrom     string
	reportTo       string
	reportProject  string
	reportMarkdown bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print aggregated time totals without starting the TUI",
	Long: `Print time booked per project and per activity over a day span.

The span defaults to the current week (Monday through Sunday). Use
--project to narrow the totals to a single project by name.

Examples:
  # Totals for the current week
  stint report

  # Totals for one calendar month
  stint report --from 2026-08-01 --to 2026-08-31

  # One project only, rendered as markdown
  stint report --project "Acme website" --markdown`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFrom, "from", "",
		"start day, YYYY-MM-DD (default: Monday of the current week)")
	reportCmd.Flags().StringVar(&reportTo, "to", "",
		"end day, YYYY-MM-DD (default: Sunday of the current week)")
	reportCmd.Flags().StringVar(&reportProject, "project", "",
		"narrow totals to one project by name")
	reportCmd.Flags().BoolVar(&reportMarkdown, "markdown", false,
		"render the report as markdown")
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	weekFrom, weekTo := store.WeekOf(time.Now())
	from, to, err := resolveReportRange(reportFrom, reportTo, weekFrom, weekTo)
	if err != nil {
		return err
	}

	dbPath := cfg.DB.Path
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = s.Close() }()

	ctx := cmd.Context()

	var projectID, projectName string
	if reportProject != "" {
		project, err := findProjectByName(ctx, s.Projects(), reportProject)
		if err != nil {
			return err
		}
		projectID = project.ID
		projectName = project.Name
	}

	data, err := loadReport(ctx, s.Entries(), from, to, projectID)
	if err != nil {
		return fmt.Errorf("loading report: %w", err)
	}
	data.project = projectName

	out := cmd.OutOrStdout()
	if reportMarkdown {
		rendered, err := renderReportMarkdown(data)
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		fmt.Fprint(out, rendered)
		return nil
	}
	fmt.Fprint(out, renderReportTable(data))
	return nil
}

// reportData is one resolved report: the span, the optional project
// filter, and both groupings.
type reportData struct {
	from       store.Day
	to         store.Day
	project    string
	byProject  []store.ReportRow
	byActivity []store.ReportRow
}

// resolveReportRange turns the --from/--to flags into an inclusive day
// span. A missing side falls back to the given current-week boundary.
func resolveReportRange(fromArg, toArg string, weekFrom, weekTo store.Day) (store.Day, store.Day, error) {
	from := weekFrom
	if fromArg != "" {
		from = store.Day(fromArg)
		if _, err := from.Time(); err != nil {
			return "", "", fmt.Errorf("invalid --from day %q: expected YYYY-MM-DD", fromArg)
		}
	}
	to := weekTo
	if toArg != "" {
		to = store.Day(toArg)
		if _, err := to.Time(); err != nil {
			return "", "", fmt.Errorf("invalid --to day %q: expected YYYY-MM-DD", toArg)
		}
	}

	// Day strings compare chronologically
	if string(to) < string(from) {
		return "", "", fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return from, to, nil
}

// findProjectByName resolves a project by exact name, ignoring case.
// Archived projects are included so historical reports stay reachable.
func findProjectByName(ctx context.Context, repo store.ProjectRepo, name string) (*store.Project, error) {
	projects, err := repo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown project %q", name)
}

// loadReport runs both aggregations through a read-through cache, the
// same path the reports mode takes.
func loadReport(ctx context.Context, entries store.EntryRepo, from, to store.Day, projectID string) (reportData, error) {
	type span struct {
		from, to  store.Day
		projectID string
	}
	cache := cachemanager.NewInMemoryCacheManager[string, []store.ReportRow](
		"report", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)

	byProject := cachemanager.NewReadThroughCache(cache,
		func(ctx context.Context, in span) ([]store.ReportRow, error) {
			return entries.SumByProject(ctx, in.from, in.to, in.projectID)
		}, false)
	byActivity := cachemanager.NewReadThroughCache(cache,
		func(ctx context.Context, in span) ([]store.ReportRow, error) {
			return entries.SumByActivity(ctx, in.from, in.to, in.projectID)
		}, false)

	in := span{from: from, to: to, projectID: projectID}
	data := reportData{from: from, to: to}

	var err error
	key := fmt.Sprintf("project|%s|%s|%s", from, to, projectID)
	if data.byProject, err = byProject.Get(ctx, key, in, cachemanager.DefaultExpiration); err != nil {
		return data, err
	}
	key = fmt.Sprintf("activity|%s|%s|%s", from, to, projectID)
	if data.byActivity, err = byActivity.Get(ctx, key, in, cachemanager.DefaultExpiration); err != nil {
		return data, err
	}
	return data, nil
}

// renderReportTable lays the report out as plain aligned text.
func renderReportTable(data reportData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Time report %s to %s\n", data.from, data.to)
	if data.project != "" {
		fmt.Fprintf(&b, "Project: %s\n", data.project)
	}
	fmt.Fprintf(&b, "Total: %s\n", styles.FormatMinutes(totalMinutes(data.byProject)))

	if len(data.byProject) == 0 {
		b.WriteString("\nNo time booked in this span.\n")
		return b.String()
	}

	writeTableSection(&b, "By project", data.byProject)
	writeTableSection(&b, "By activity", data.byActivity)
	return b.String()
}

func writeTableSection(b *strings.Builder, title string, rows []store.ReportRow) {
	nameWidth := len("Name")
	for _, r := range rows {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}

	total := totalMinutes(rows)
	fmt.Fprintf(b, "\n%s\n", title)
	fmt.Fprintf(b, "  %-*s  %7s  %5s\n", nameWidth, "Name", "Time", "Share")
	for _, r := range rows {
		fmt.Fprintf(b, "  %-*s  %7s  %4d%%\n",
			nameWidth, r.Name, styles.FormatMinutes(r.Minutes), sharePercent(r.Minutes, total))
	}
}

// renderReportMarkdown renders the report through glamour for terminal
// display.
func renderReportMarkdown(data reportData) (string, error) {
	raw := buildReportMarkdown(data)
	renderer, err := markdown.New(reportMarkdownWidth, cfg.UI.Theme)
	if err != nil {
		return "", err
	}
	return renderer.Render(raw)
}

const reportMarkdownWidth = 80

// buildReportMarkdown produces the markdown source for --markdown.
func buildReportMarkdown(data reportData) string {
	var b strings.Builder
	b.WriteString("# Time report\n\n")
	fmt.Fprintf(&b, "%s to %s\n\n", data.from, data.to)
	if data.project != "" {
		fmt.Fprintf(&b, "Project: %s\n\n", data.project)
	}
	fmt.Fprintf(&b, "Total: %s\n", styles.FormatMinutes(totalMinutes(data.byProject)))

	if len(data.byProject) == 0 {
		b.WriteString("\nNo time booked in this span.\n")
		return b.String()
	}

	writeMarkdownSection(&b, "By project", data.byProject)
	writeMarkdownSection(&b, "By activity", data.byActivity)
	return b.String()
}

func writeMarkdownSection(b *strings.Builder, title string, rows []store.ReportRow) {
	total := totalMinutes(rows)
	fmt.Fprintf(b, "\n## %s\n\n", title)
	b.WriteString("| Name | Time | Share |\n")
	b.WriteString("| --- | ---: | ---: |\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s | %d%% |\n",
			r.Name, styles.FormatMinutes(r.Minutes), sharePercent(r.Minutes, total))
	}
}

func totalMinutes(rows []store.ReportRow) int {
	total := 0
	for _, r := range rows {
		total += r.Minutes
	}
	return total
}

func sharePercent(minutes, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(minutes)/float64(total)*100 + 0.5)
}

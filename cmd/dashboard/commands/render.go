package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/domain/entities"
)

type taskRow struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Priority  string   `yaml:"priority"`
	Status    string   `yaml:"status"`
	WorkDone  int      `yaml:"workDone"`
	Due       string   `yaml:"dueDate,omitempty"`
	Assignees []string `yaml:"assignees,omitempty"`
	Project   string   `yaml:"project,omitempty"`
	Overdue   bool     `yaml:"overdue"`
}

type projectRow struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Status   string `yaml:"status"`
	Progress int    `yaml:"progress"`
	Head     string `yaml:"head,omitempty"`
}

type commentRow struct {
	Author  string `yaml:"author"`
	Role    string `yaml:"role,omitempty"`
	Time    string `yaml:"time,omitempty"`
	Content string `yaml:"content"`
}

func newTaskRow(t *entities.Task, now time.Time) taskRow {
	row := taskRow{
		ID:        t.ID.String(),
		Title:     t.Title,
		Priority:  string(t.Priority),
		Status:    string(t.Status),
		WorkDone:  t.WorkDone,
		Assignees: t.AssigneeNames,
		Project:   t.ProjectName,
		Overdue:   t.IsOverdue(now),
	}
	if !t.DueDate.IsZero() {
		row.Due = t.DueDate.Format("2006-01-02")
	}
	return row
}

// renderer prints command results as a coloured table or as YAML
type renderer struct {
	w    io.Writer
	yaml bool

	header  *color.Color
	overdue *color.Color
	done    *color.Color
	warn    *color.Color
}

func newRendererFor(w io.Writer, format string, noColor bool) (*renderer, error) {
	r := &renderer{
		w:       w,
		header:  color.New(color.Bold),
		overdue: color.New(color.FgRed),
		done:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
	}
	switch format {
	case "", "table":
	case "yaml":
		r.yaml = true
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	if noColor {
		for _, c := range []*color.Color{r.header, r.overdue, r.done, r.warn} {
			c.DisableColor()
		}
	}
	return r, nil
}

func (r *renderer) encode(v interface{}) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func (r *renderer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
}

func (r *renderer) warnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		r.warn.Fprintf(w, "warning: %s\n", msg)
	}
}

func (r *renderer) tasks(tasks []entities.Task, now time.Time) error {
	rows := make([]taskRow, 0, len(tasks))
	for i := range tasks {
		rows = append(rows, newTaskRow(&tasks[i], now))
	}
	if r.yaml {
		return r.encode(rows)
	}

	tw := r.table()
	fmt.Fprintln(tw, r.header.Sprint("ID\tTITLE\tPRIORITY\tSTATUS\tDONE\tDUE\tASSIGNEES"))
	for _, row := range rows {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%d%%\t%s\t%s",
			row.ID, row.Title, row.Priority, row.Status, row.WorkDone, row.Due, strings.Join(row.Assignees, ", "))
		switch {
		case row.Overdue:
			line = r.overdue.Sprint(line)
		case row.Status == string(entities.TaskStatusCompleted):
			line = r.done.Sprint(line)
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

func (r *renderer) taskUpdate(t *entities.Task, now time.Time) error {
	row := newTaskRow(t, now)
	if r.yaml {
		return r.encode(row)
	}
	_, err := fmt.Fprintf(r.w, "%s  %s  %s  %d%%  %d comments\n",
		now.Format("15:04:05"), row.Title, row.Status, row.WorkDone, len(t.Comments))
	return err
}

func (r *renderer) projects(projects []entities.Project) error {
	rows := make([]projectRow, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		rows = append(rows, projectRow{
			ID:       p.ID.String(),
			Name:     p.Name,
			Status:   string(p.EffectiveStatus()),
			Progress: p.Progress,
			Head:     p.AssignedEmployeeName,
		})
	}
	if r.yaml {
		return r.encode(rows)
	}

	tw := r.table()
	fmt.Fprintln(tw, r.header.Sprint("ID\tNAME\tSTATUS\tPROGRESS\tHEAD"))
	for _, row := range rows {
		line := fmt.Sprintf("%s\t%s\t%s\t%d%%\t%s", row.ID, row.Name, row.Status, row.Progress, row.Head)
		if row.Status == string(entities.ProjectStatusCompleted) {
			line = r.done.Sprint(line)
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

func (r *renderer) stats(view *services.StatsView) error {
	if r.yaml {
		return r.encode(view)
	}

	s := view.Stats
	tw := r.table()
	fmt.Fprintf(tw, "Total tasks\t%d\n", s.TotalTasks)
	fmt.Fprintf(tw, "Completed\t%s\n", r.done.Sprint(s.CompletedTasks))
	fmt.Fprintf(tw, "Pending\t%d\n", s.PendingTasks)
	fmt.Fprintf(tw, "In progress\t%d\n", s.InProgressTasks)
	fmt.Fprintf(tw, "Overdue\t%s\n", r.overdue.Sprint(s.OverdueTasks))
	fmt.Fprintf(tw, "Projects\t%d (%d active)\n", s.TotalProjects, s.ActiveProjects)
	if b := view.Breakdown; b != nil {
		fmt.Fprintf(tw, "Urgent\t%d\n", b.Urgent)
		fmt.Fprintf(tw, "Less urgent\t%d\n", b.LessUrgent)
		fmt.Fprintf(tw, "Free time\t%d\n", b.FreeTime)
	}
	return tw.Flush()
}

func (r *renderer) comments(comments []entities.Comment) error {
	rows := make([]commentRow, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, commentRow{
			Author:  c.AuthorName,
			Role:    string(c.AuthorRole),
			Time:    c.Timestamp,
			Content: c.Content,
		})
	}
	if r.yaml {
		return r.encode(rows)
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(r.w, "%s %s: %s\n", r.header.Sprint(row.Author), row.Time, row.Content); err != nil {
			return err
		}
	}
	return nil
}

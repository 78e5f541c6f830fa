package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"taskdeck/internal/tasks"
)

// NewTasksCommand returns the non-interactive task listing subcommand.
func NewTasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "List tasks without opening the dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "status",
				Aliases: []string{"s"},
				Usage:   "Filter by status: all, active or finished",
				Value:   string(tasks.FilterAll),
			},
			&cli.StringFlag{
				Name:  "category",
				Usage: "Filter by category name",
			},
			&cli.StringFlag{
				Name:  "search",
				Usage: "Filter by title substring",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: table, json or yaml",
				Value:   "table",
			},
		},
		Action: runTasks,
	}
}

// taskRow is the externally visible shape of a listed task. The raw
// category id is replaced with its resolved name.
type taskRow struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Status   string `json:"status" yaml:"status"`
	Priority string `json:"priority" yaml:"priority"`
	Category string `json:"category" yaml:"category"`
	DueDate  string `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
}

func runTasks(ctx context.Context, cmd *cli.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}

	ftype := tasks.FilterType(cmd.String("status"))
	switch ftype {
	case tasks.FilterAll, tasks.FilterActive, tasks.FilterFinished:
	default:
		return fmt.Errorf("unknown status %q (want all, active or finished)", ftype)
	}

	all, err := d.client.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	categories, err := d.client.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	filter := tasks.Filter{Query: cmd.String("search"), Type: ftype}
	if name := cmd.String("category"); name != "" {
		id, ok := categoryID(name, categories)
		if !ok {
			return fmt.Errorf("unknown category %q", name)
		}
		filter.Category = id
	}

	rows := make([]taskRow, 0, len(all))
	for _, t := range filter.Apply(all) {
		rows = append(rows, taskRow{
			ID:       t.ID,
			Title:    t.Title,
			Status:   string(t.Status),
			Priority: string(t.Priority),
			Category: tasks.CategoryName(t.Category, categories),
			DueDate:  t.DueDate,
		})
	}

	switch cmd.String("output") {
	case "table":
		return writeTable(rows)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(rows)
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", cmd.String("output"))
	}
}

// categoryID resolves a category name, case-insensitively, to its id.
func categoryID(name string, categories []tasks.Category) (string, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.ID, true
		}
	}
	return "", false
}

func writeTable(rows []taskRow) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tSTATUS\tPRIORITY\tCATEGORY\tDUE")
	for _, r := range rows {
		due := r.DueDate
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Title, r.Status, r.Priority, r.Category, due)
	}
	return w.Flush()
}

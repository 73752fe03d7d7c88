package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list [--all] <list-name>`.
type ListCmd struct {
	all bool
}

// SetAll sets the --all flag (for testing).
func (c *ListCmd) SetAll(all bool) {
	c.all = all
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return nil }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todo list [--all] [<list-name>]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// A named list becomes the current one, as selecting it in a list view would.
	if name := joinName(args); name != "" {
		list, err := svc.ResolveList(name)
		if err != nil {
			return fail(errOut, err)
		}
		if err := svc.SelectList(ctx, list.ID); err != nil {
			return fail(errOut, err)
		}
	}

	if c.all {
		svc.SetShowCompleted(true)
	}

	list, found := svc.CurrentList()
	if !found {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.NoSelection)
		}
		return exitcode.Success
	}

	output.FormatListHeader(out, list.Name)

	tasks := svc.VisibleTasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.EmptyList)
		}
		return exitcode.Success
	}

	for i, task := range tasks {
		output.FormatTask(out, i+1, task)
	}
	return exitcode.Success
}

package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command (alias create).
type AddCmd struct {
	listName string
	desc     string
	due      string
	at       string
}

// SetListName sets the list name (for testing).
func (c *AddCmd) SetListName(name string) {
	c.listName = name
}

// SetDue sets the due date and time (for testing).
func (c *AddCmd) SetDue(date, at string) {
	c.due = date
	c.at = at
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "todo add [--list <list-name>] [--desc <text>] [--due <YYYY-MM-DD>] [--at <HH:MM>] <title...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.at, "at", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := joinName(args)
	if title == "" {
		return usageError(errOut, "title required")
	}

	list, err := targetList(svc, c.listName)
	if err != nil {
		return fail(errOut, err)
	}

	_, err = svc.CreateTask(ctx, service.TaskFields{
		Title:       title,
		Description: c.desc,
		DueDate:     c.due,
		DueTime:     c.at,
		ListID:      list.ID,
	})
	if err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}

package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the given flags change the
// task; everything else keeps its current value.
type EditCmd struct {
	title    optString
	desc     optString
	due      optString
	at       optString
	listName optString
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "todo edit [--title <text>] [--desc <text>] [--due <YYYY-MM-DD>] [--at <HH:MM>] [--list <list-name>] <ref>"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = EditCmd{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.desc, "desc", "")
	fs.Var(&c.due, "due", "")
	fs.Var(&c.at, "at", "")
	fs.Var(&c.listName, "list", "")
	fs.Var(&c.listName, "l", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, err := ResolveTaskRef(svc, args)
	if err != nil {
		return fail(errOut, err)
	}

	fields := task.Fields()
	if c.title.set {
		fields.Title = c.title.value
	}
	if c.desc.set {
		fields.Description = c.desc.value
	}
	if c.due.set {
		fields.DueDate = c.due.value
		// Clearing the date clears the time unless a new one is given.
		if fields.DueDate == "" && !c.at.set {
			fields.DueTime = ""
		}
	}
	if c.at.set {
		fields.DueTime = c.at.value
	}
	if c.listName.set {
		list, err := svc.ResolveList(c.listName.value)
		if err != nil {
			return fail(errOut, err)
		}
		fields.ListID = list.ID
	}

	if _, err := svc.UpdateTask(ctx, task.ID, fields); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}

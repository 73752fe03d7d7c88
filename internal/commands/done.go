package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles, so running it on a
// completed task reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "todo done [common flags] <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, err := ResolveTaskRef(svc, args)
	if err != nil {
		return fail(errOut, err)
	}

	task, err = svc.ToggleTaskComplete(ctx, task.ID)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		if task.Completed {
			fmt.Fprintln(out, "done")
		} else {
			fmt.Fprintln(out, "reopened")
		}
	}
	return exitcode.Success
}

package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/service"
)

func init() {
	Register(&RmListCmd{})
}

// RmListCmd implements the rmlist command.
type RmListCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *RmListCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmListCmd) Name() string      { return "rmlist" }
func (c *RmListCmd) Aliases() []string { return nil }
func (c *RmListCmd) Synopsis() string  { return "Delete a list" }
func (c *RmListCmd) Usage() string     { return "todo rmlist [--force] <list-name>" }
func (c *RmListCmd) NeedsStore() bool  { return true }

func (c *RmListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *RmListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := joinName(args)
	if name == "" {
		return usageError(errOut, "list name required")
	}

	list, err := svc.ResolveList(name)
	if err != nil {
		return fail(errOut, err)
	}

	if err := svc.DeleteList(ctx, list.ID, c.force); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}

package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/service"
)

func init() {
	Register(&UseCmd{})
}

// UseCmd implements the use command.
type UseCmd struct{}

func (c *UseCmd) Name() string      { return "use" }
func (c *UseCmd) Aliases() []string { return nil }
func (c *UseCmd) Synopsis() string  { return "Select the current list" }
func (c *UseCmd) Usage() string     { return "todo use [common flags] <list-name>" }
func (c *UseCmd) NeedsStore() bool  { return true }

func (c *UseCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UseCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := joinName(args)
	if name == "" {
		return usageError(errOut, "list name required")
	}

	list, err := svc.ResolveList(name)
	if err != nil {
		return fail(errOut, err)
	}
	if err := svc.SelectList(ctx, list.ID); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}

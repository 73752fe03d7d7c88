package commands

import (
	"context"
	"errors"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/service"
)

func init() {
	Register(&CreateListCmd{})
}

// CreateListCmd implements the createlist command (alias addlist).
// The new list becomes the current one.
type CreateListCmd struct{}

func (c *CreateListCmd) Name() string      { return "createlist" }
func (c *CreateListCmd) Aliases() []string { return []string{"addlist"} }
func (c *CreateListCmd) Synopsis() string  { return "Create a new list" }
func (c *CreateListCmd) Usage() string     { return "todo createlist [common flags] <list-name>" }
func (c *CreateListCmd) NeedsStore() bool  { return true }

func (c *CreateListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CreateListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := joinName(args)
	if name == "" {
		return usageError(errOut, "list name required")
	}

	if code, taken := nameTaken(svc, name, errOut); taken {
		return code
	}

	if _, err := svc.CreateList(ctx, name); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}

// nameTaken reports whether a list called name already exists. Names are
// kept unique on the command line so they can be used as references.
func nameTaken(svc service.Service, name string, errOut io.Writer) (int, bool) {
	_, err := svc.ResolveList(name)
	switch {
	case err == nil, errors.Is(err, service.ErrAmbiguous):
		return usageError(errOut, "list already exists: %s", name), true
	case errors.Is(err, service.ErrNotFound):
		return 0, false
	default:
		return fail(errOut, err), true
	}
}

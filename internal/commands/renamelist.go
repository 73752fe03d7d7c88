package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/service"
)

func init() {
	Register(&RenameListCmd{})
}

// RenameListCmd implements the renamelist command.
type RenameListCmd struct {
	to string
}

// SetTo sets the new name (for testing).
func (c *RenameListCmd) SetTo(name string) {
	c.to = name
}

func (c *RenameListCmd) Name() string      { return "renamelist" }
func (c *RenameListCmd) Aliases() []string { return nil }
func (c *RenameListCmd) Synopsis() string  { return "Rename a list" }
func (c *RenameListCmd) Usage() string     { return "todo renamelist --to <new-name> <list-name>" }
func (c *RenameListCmd) NeedsStore() bool  { return true }

func (c *RenameListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.to, "to", "", "")
}

func (c *RenameListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := joinName(args)
	if name == "" {
		return usageError(errOut, "list name required")
	}
	newName := strings.TrimSpace(c.to)
	if newName == "" {
		return usageError(errOut, "new name required (--to)")
	}

	list, err := svc.ResolveList(name)
	if err != nil {
		return fail(errOut, err)
	}

	// Changing only the case of a list's own name is allowed.
	if !strings.EqualFold(newName, strings.TrimSpace(list.Name)) {
		if code, taken := nameTaken(svc, newName, errOut); taken {
			return code
		}
	}

	if _, err := svc.RenameList(ctx, list.ID, newName); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}

package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print all lists" }
func (c *ListsCmd) Usage() string     { return "todo lists [common flags]" }
func (c *ListsCmd) NeedsStore() bool  { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	current, _ := svc.CurrentList()
	for _, list := range svc.Lists() {
		output.FormatListName(out, list, list.ID == current.ID)
	}
	return exitcode.Success
}

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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                          List open tasks of the current list
  todo list [--all] [<list-name>]               Select a list and show its tasks
  todo lists                                    Print all lists (* marks the current one)
  todo add [--list <list-name>] [--desc <text>] [--due <YYYY-MM-DD>] [--at <HH:MM>] <title...>
  todo create ...                               Alias for add
  todo edit [--title <text>] [--desc <text>] [--due <YYYY-MM-DD>] [--at <HH:MM>] [--list <list-name>] <ref>
  todo done <ref>                               Toggle completion
  todo rm <ref>                                 Delete a task
  todo createlist <list-name>                   Create a list and select it
  todo addlist <list-name>                      Alias for createlist
  todo renamelist --to <new-name> <list-name>
  todo use <list-name>                          Select the current list
  todo rmlist [--force] <list-name>             Delete a list (--force deletes its tasks)
  todo import [--into-current]                  Copy lists and tasks from Google Tasks
  todo login                                    Authorize read access to Google Tasks
  todo logout                                   Remove stored credentials
  todo help
  todo version

A <ref> is a task number as shown by "todo list --all", or a task id prefix.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`

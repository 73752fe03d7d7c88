package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"todo/internal/backend/googletasks"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&ImportCmd{})
}

// ImportSource provides a read-only snapshot of remote task lists.
type ImportSource interface {
	Snapshot(ctx context.Context) ([]service.ImportedList, error)
}

// SourceFactory creates an ImportSource from config.
type SourceFactory func(ctx context.Context, cfg *config.Config) (ImportSource, error)

// ImportCmd implements the import command.
type ImportCmd struct {
	intoCurrent bool

	// NewSource overrides the Google Tasks source (for testing).
	NewSource SourceFactory
}

// SetIntoCurrent sets the --into-current flag (for testing).
func (c *ImportCmd) SetIntoCurrent(v bool) {
	c.intoCurrent = v
}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Import lists and tasks from Google Tasks" }
func (c *ImportCmd) Usage() string     { return "todo import [common flags] [--into-current]" }
func (c *ImportCmd) NeedsStore() bool  { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.intoCurrent, "into-current", false, "")
}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "unexpected argument: %s", args[0])
	}

	factory := c.NewSource
	if factory == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: todo login)")
			return exitcode.AuthError
		}
		factory = googleSource
	}

	src, err := factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	lists, err := src.Snapshot(ctx)
	if err != nil {
		if errors.Is(err, googletasks.ErrAuth) {
			fmt.Fprintf(errOut, "error: auth error: %v\n", err)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	stats, err := importLists(ctx, svc, lists, c.intoCurrent)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "imported %d tasks into %d lists (%d new)\n", stats.tasks, stats.lists, stats.created)
	}
	return exitcode.Success
}

func googleSource(ctx context.Context, cfg *config.Config) (ImportSource, error) {
	return googletasks.New(ctx, cfg, zap.L())
}

type importStats struct {
	lists   int
	created int
	tasks   int
}

// importLists copies lists into svc. A remote list is merged into the local
// list with the same name, or created. The selection current before the
// import is restored at the end.
func importLists(ctx context.Context, svc service.Service, lists []service.ImportedList, intoCurrent bool) (importStats, error) {
	var stats importStats

	prior, hadPrior := svc.CurrentList()
	if intoCurrent && !hadPrior {
		return stats, errNoSelection
	}

	for _, remote := range lists {
		var target service.TaskList
		if intoCurrent {
			target = prior
		} else {
			var created bool
			var err error
			target, created, err = findOrCreateList(ctx, svc, remote.Name)
			if err != nil {
				return stats, err
			}
			if created {
				stats.created++
			}
			stats.lists++
		}

		for _, t := range remote.Tasks {
			task, err := svc.CreateTask(ctx, service.TaskFields{
				Title:       t.Title,
				Description: t.Description,
				DueDate:     t.DueDate,
				ListID:      target.ID,
			})
			if err != nil {
				return stats, fmt.Errorf("import %q: %w", t.Title, err)
			}
			if t.Completed {
				if _, err := svc.ToggleTaskComplete(ctx, task.ID); err != nil {
					return stats, err
				}
			}
			stats.tasks++
		}
	}
	if intoCurrent {
		stats.lists = 1
	}

	if hadPrior {
		if err := svc.SelectList(ctx, prior.ID); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func findOrCreateList(ctx context.Context, svc service.Service, name string) (service.TaskList, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "(untitled)"
	}

	list, err := svc.ResolveList(name)
	switch {
	case err == nil:
		return list, false, nil
	case errors.Is(err, service.ErrNotFound):
		list, err = svc.CreateList(ctx, name)
		return list, err == nil, err
	default:
		return service.TaskList{}, false, err
	}
}

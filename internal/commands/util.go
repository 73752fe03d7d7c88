package commands

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

// errNoSelection is returned when a command needs a current list and none is selected.
var errNoSelection = &service.ValidationError{Reason: "no list selected (run: todo use <list-name>)"}

// fail prints err and returns the matching exit code.
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.For(err)
}

// usageError prints a usage problem and returns exitcode.UserError.
func usageError(errOut io.Writer, format string, args ...any) int {
	fmt.Fprintf(errOut, "error: "+format+"\n", args...)
	return exitcode.UserError
}

// ok prints the success marker unless quiet.
func ok(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// joinName joins positional args into a trimmed name.
func joinName(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// targetList resolves name, or returns the current list when name is empty.
func targetList(svc service.Service, name string) (service.TaskList, error) {
	if strings.TrimSpace(name) != "" {
		return svc.ResolveList(name)
	}
	list, found := svc.CurrentList()
	if !found {
		return service.TaskList{}, errNoSelection
	}
	return list, nil
}

// optString is a string flag that records whether it was given.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

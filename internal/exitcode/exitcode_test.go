package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"todo/internal/service"
)

func TestFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"validation", &service.ValidationError{Field: "title", Reason: "title required"}, UserError},
		{"not found", &service.NotFoundError{Kind: "task", ID: "x"}, UserError},
		{"ambiguous", &service.AmbiguousError{Kind: "list", Name: "x"}, UserError},
		{"wrapped not found", fmt.Errorf("edit: %w", &service.NotFoundError{Kind: "list", ID: "x"}), UserError},
		{"persistence", &service.PersistenceError{Op: "save", Err: errors.New("disk full")}, BackendError},
		{"other", errors.New("boom"), BackendError},
	}
	for _, tc := range cases {
		if got := For(tc.err); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

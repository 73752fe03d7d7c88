package output

import (
	"bytes"
	"testing"

	"todo/internal/service"
)

func TestFormatTask_Plain(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 1, service.Task{Title: "Buy milk"})

	expected := "   1  [ ] Buy milk\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTask_CompletedWithDue(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 12, service.Task{Title: "Report", DueDate: "2024-01-02", DueTime: "09:30", Completed: true})

	expected := "  12  [x] Report  (due 2024-01-02 09:30)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTask_DateOnly(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 3, service.Task{Title: "Pay rent", DueDate: "2024-02-01"})

	expected := "   3  [ ] Pay rent  (due 2024-02-01)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTask_Description(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 1, service.Task{Title: "Trip", Description: "pack bags\r\nbook taxi"})

	expected := "   1  [ ] Trip\n          pack bags\n          book taxi\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTask_NormalizesTitle(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 1, service.Task{Title: "line1\nline2"})
	FormatTask(&buf, 2, service.Task{Title: "   "})

	expected := "   1  [ ] line1 line2\n   2  [ ] (untitled)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatListHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatListHeader(&buf, "Work")

	expected := "== Work ==\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatListName(t *testing.T) {
	var buf bytes.Buffer
	FormatListName(&buf, service.TaskList{ID: "a", Name: "My Tasks"}, true)
	FormatListName(&buf, service.TaskList{ID: "b", Name: ""}, false)

	expected := "* My Tasks\n  (untitled)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

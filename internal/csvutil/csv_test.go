package csvutil

import (
	"strings"
	"testing"
)

func TestMarshalEmptyRows(t *testing.T) {
	columns := []Column{{Key: "id", Header: "ID"}, {Key: "name", Header: "Name"}}
	got := Marshal(nil, columns)
	want := "ID,Name"
	if got != want {
		t.Errorf("Marshal(nil) = %q, want %q", got, want)
	}
}

func TestMarshalColumnOrder(t *testing.T) {
	columns := []Column{
		{Key: "b", Header: "Second"},
		{Key: "a", Header: "First"},
	}
	rows := []map[string]string{{"a": "1", "b": "2"}}
	got := Marshal(rows, columns)
	want := "Second,First\n\"2\",\"1\""
	if got != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalNoTrailingNewline(t *testing.T) {
	columns := []Column{{Key: "v", Header: "Value"}}
	rows := []map[string]string{{"v": "a"}, {"v": "b"}}
	got := Marshal(rows, columns)
	if strings.HasSuffix(got, "\n") {
		t.Errorf("output carries a trailing newline: %q", got)
	}
	if want := "Value\n\"a\"\n\"b\""; got != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalQuoting(t *testing.T) {
	columns := []Column{{Key: "v", Header: "Value"}}
	tests := []struct {
		name string
		rows []map[string]string
		want string
	}{
		{"plain", []map[string]string{{"v": "hello"}}, "Value\n\"hello\""},
		{"embedded comma", []map[string]string{{"v": "a,b"}}, "Value\n\"a,b\""},
		{"embedded quote", []map[string]string{{"v": `say "hi"`}}, "Value\n\"say \"\"hi\"\"\""},
		{"embedded newline", []map[string]string{{"v": "line1\nline2"}}, "Value\n\"line1\nline2\""},
		{"missing key quoted empty", []map[string]string{{}}, "Value\n\"\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Marshal(tt.rows, columns); got != tt.want {
				t.Errorf("Marshal = %q, want %q", got, tt.want)
			}
		})
	}
}

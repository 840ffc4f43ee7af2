package ui

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// SkeletonRows is the number of placeholder rows shown while loading.
const SkeletonRows = 5

// DefaultEmptyText is shown when a table has no rows.
const DefaultEmptyText = "No data available"

// Style tags a column for renderers.
type Style string

const (
	StylePlain   Style = ""
	StyleBold    Style = "bold"
	StyleMuted   Style = "muted"
	StyleSuccess Style = "success"
	StyleDanger  Style = "danger"
)

// Column describes one table column. The cell text comes from Value when
// set, otherwise from Field, matched against the row's JSON tag or Go field
// name.
type Column[T any] struct {
	Header string
	Field  string
	Value  func(T) string
	Style  Style
	Width  int
}

// Table describes how rows of T are shown.
type Table[T any] struct {
	Title     string
	Columns   []Column[T]
	Key       func(T) string
	EmptyText string
}

// Mode is the render mode of a View. Exactly one applies.
type Mode int

const (
	ModeLoading Mode = iota
	ModeEmpty
	ModePopulated
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeEmpty:
		return "empty"
	default:
		return "populated"
	}
}

// Header is a projected column header.
type Header struct {
	Title string
	Style Style
	Width int
}

// Row is a projected table row. Placeholder rows have an empty Key.
type Row struct {
	Key         string
	Cells       []string
	Placeholder bool
}

// View is a table projected for rendering.
type View struct {
	Title   string
	Mode    Mode
	Headers []Header
	Rows    []Row
	Message string
}

// Project builds the View of rows. While loading it holds SkeletonRows
// placeholder rows whatever rows contains; otherwise zero rows give a single
// message and no rows, and any rows are kept in input order.
func Project[T any](t Table[T], rows []T, loading bool) View {
	v := View{Title: t.Title, Headers: make([]Header, len(t.Columns))}
	for i, c := range t.Columns {
		v.Headers[i] = Header{Title: c.Header, Style: c.Style, Width: c.Width}
	}

	switch {
	case loading:
		v.Mode = ModeLoading
		v.Rows = make([]Row, SkeletonRows)
		for i := range v.Rows {
			cells := make([]string, len(t.Columns))
			for j, c := range t.Columns {
				cells[j] = placeholder(c.Width)
			}
			v.Rows[i] = Row{Cells: cells, Placeholder: true}
		}
	case len(rows) == 0:
		v.Mode = ModeEmpty
		v.Message = t.EmptyText
		if v.Message == "" {
			v.Message = DefaultEmptyText
		}
	default:
		v.Mode = ModePopulated
		v.Rows = make([]Row, len(rows))
		for i, r := range rows {
			cells := make([]string, len(t.Columns))
			for j, c := range t.Columns {
				cells[j] = c.cell(r)
			}
			v.Rows[i] = Row{Key: t.key(r, i), Cells: cells}
		}
	}
	return v
}

func (t Table[T]) key(r T, i int) string {
	if t.Key != nil {
		return t.Key(r)
	}
	return fmt.Sprint(i)
}

func (c Column[T]) cell(r T) string {
	if c.Value != nil {
		return c.Value(r)
	}
	return FieldString(r, c.Field)
}

func placeholder(width int) string {
	if width <= 0 {
		width = 8
	}
	return strings.Repeat("░", min(width, 12))
}

var fieldCache sync.Map // reflect.Type -> map[string][]int

// FieldString returns the named field of v formatted with fmt. name matches
// a JSON tag or a Go field name, including fields of embedded structs.
// Unknown fields give an empty string.
func FieldString(v any, name string) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return ""
	}

	index, ok := fieldIndex(rv.Type())[name]
	if !ok {
		return ""
	}
	return fmt.Sprint(rv.FieldByIndex(index).Interface())
}

func fieldIndex(t reflect.Type) map[string][]int {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string][]int)
	}

	out := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if _, taken := out[f.Name]; !taken {
			out[f.Name] = f.Index
		}
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
			if _, taken := out[tag]; !taken || len(f.Index) == 1 {
				out[tag] = f.Index
			}
		}
	}
	fieldCache.Store(t, out)
	return out
}

package tui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/huh"
)

// AutoForm generates a huh.Form from a struct pointer using reflection.
// It parses the `tui:"..."` tag to configure field properties.
func AutoForm(v any) *huh.Form {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		panic("AutoForm requires a pointer to a struct")
	}

	el := val.Elem()
	t := el.Type()
	var fields []huh.Field

	for i := 0; i < el.NumField(); i++ {
		field := el.Field(i)
		fieldType := t.Field(i)
		tag := fieldType.Tag.Get("tui")
		if tag == "" {
			continue
		}

		props := parseTag(tag)

		title := props["title"]
		if title == "" {
			title = fieldType.Name
		}
		desc := props["desc"]

		switch field.Kind() {
		case reflect.String:
			input := huh.NewInput().
				Title(title).
				Description(desc).
				Placeholder(props["placeholder"]).
				Value(field.Addr().Interface().(*string))

			if vKey, ok := props["validate"]; ok {
				if validator, exists := Validators[vKey]; exists {
					input.Validate(validator)
				}
			}
			fields = append(fields, input)
		}
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithTheme(huh.ThemeBase16()).WithShowHelp(false)
}

// Helper to parse "key=val,key2=val2"
func parseTag(tag string) map[string]string {
	res := make(map[string]string)
	for _, part := range strings.Split(tag, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			res[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
	return res
}

// Validator Registry
var Validators = map[string]func(string) error{
	"required": func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("this field is required")
		}
		return nil
	},
}

// ConfirmForm asks a single yes/no question.
func ConfirmForm(title, desc string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Affirmative("Yes").
				Negative("No").
				Value(value),
		),
	).WithTheme(huh.ThemeBase16()).WithShowHelp(false)
}

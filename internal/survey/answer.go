package survey

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// AnswerKind is the shape of an Answer. Each QuestionType expects exactly one.
type AnswerKind int

const (
	KindNone AnswerKind = iota
	KindScalar
	KindSet
	KindDropdownText
	KindDropdownCheckbox
)

func (k AnswerKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSet:
		return "set"
	case KindDropdownText:
		return "dropdown_text"
	case KindDropdownCheckbox:
		return "dropdown_checkbox"
	default:
		return "none"
	}
}

// KindFor returns the answer shape a question type accepts.
func KindFor(t QuestionType) AnswerKind {
	switch t {
	case TypeText, TypeNumber, TypeRadio, TypeDropdown, TypeSlider:
		return KindScalar
	case TypeMultiSelect:
		return KindSet
	case TypeDropdownText:
		return KindDropdownText
	case TypeDropdownCheckbox:
		return KindDropdownCheckbox
	default:
		return KindNone
	}
}

// Answer is a tagged union over the answer shapes. The zero value is "no answer".
type Answer struct {
	kind     AnswerKind
	value    string
	set      []string
	selected string
	text     string
}

func Scalar(v string) Answer {
	return Answer{kind: KindScalar, value: v}
}

// Set builds a multi-select answer; duplicates are dropped, first occurrence wins.
func Set(values ...string) Answer {
	return Answer{kind: KindSet, set: uniq(values)}
}

func DropdownText(selected, text string) Answer {
	return Answer{kind: KindDropdownText, selected: selected, text: text}
}

func DropdownCheckbox(selected string, checkboxes ...string) Answer {
	return Answer{kind: KindDropdownCheckbox, selected: selected, set: uniq(checkboxes)}
}

func (a Answer) Kind() AnswerKind { return a.kind }

func (a Answer) IsZero() bool { return a.kind == KindNone }

// Value is the scalar value; empty for other kinds.
func (a Answer) Value() string {
	if a.kind != KindScalar {
		return ""
	}
	return a.value
}

// Values is the multi-select membership in insertion order.
func (a Answer) Values() []string {
	if a.kind != KindSet {
		return nil
	}
	return append([]string(nil), a.set...)
}

func (a Answer) SelectedOption() string { return a.selected }

func (a Answer) Text() string { return a.text }

func (a Answer) Checkboxes() []string {
	if a.kind != KindDropdownCheckbox {
		return nil
	}
	return append([]string(nil), a.set...)
}

// WithOptionToggled flips membership of option in a multi-select answer.
func (a Answer) WithOptionToggled(option string) Answer {
	return Answer{kind: KindSet, set: toggle(a.Values(), option)}
}

// WithCheckboxToggled flips membership of option in a dropdown-checkbox answer,
// keeping the selected option.
func (a Answer) WithCheckboxToggled(option string) Answer {
	return Answer{kind: KindDropdownCheckbox, selected: a.selected, set: toggle(a.Checkboxes(), option)}
}

// WithSelectedOption replaces the dropdown part of a DROPDOWN_TEXT or
// DROPDOWN_CHECKBOX answer, keeping the other half.
func (a Answer) WithSelectedOption(kind AnswerKind, selected string) Answer {
	switch kind {
	case KindDropdownText:
		return DropdownText(selected, a.text)
	case KindDropdownCheckbox:
		return DropdownCheckbox(selected, a.Checkboxes()...)
	}
	return a
}

// CompleteFor reports whether the answer fills every required part for t.
// "0" is a complete scalar; only a missing answer or "" is not.
func (a Answer) CompleteFor(t QuestionType) bool {
	if a.kind != KindFor(t) {
		return false
	}
	switch a.kind {
	case KindDropdownText:
		return a.selected != "" && a.text != ""
	case KindDropdownCheckbox:
		return a.selected != "" && len(a.set) > 0
	case KindSet:
		return len(a.set) > 0
	case KindScalar:
		return a.value != ""
	}
	return false
}

// String renders the answer for people: exports, prompts and logs.
func (a Answer) String() string {
	switch a.kind {
	case KindScalar:
		return a.value
	case KindSet:
		return strings.Join(a.set, ", ")
	case KindDropdownText:
		return a.selected + ": " + a.text
	case KindDropdownCheckbox:
		return fmt.Sprintf("%s (%s)", a.selected, strings.Join(a.set, ", "))
	}
	return ""
}

type dropdownTextJSON struct {
	SelectedOption string `json:"selected_option"`
	Text           string `json:"text"`
}

type dropdownCheckboxJSON struct {
	SelectedOption string   `json:"selected_option"`
	Checkboxes     []string `json:"checkboxes"`
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case KindScalar:
		return json.Marshal(a.value)
	case KindSet:
		return json.Marshal(nonNil(a.set))
	case KindDropdownText:
		return json.Marshal(dropdownTextJSON{SelectedOption: a.selected, Text: a.text})
	case KindDropdownCheckbox:
		return json.Marshal(dropdownCheckboxJSON{SelectedOption: a.selected, Checkboxes: nonNil(a.set)})
	default:
		return []byte("null"), nil
	}
}

var errAnswerShape = errors.New("unsupported answer shape")

// UnmarshalJSON decodes by shape: strings and numbers are scalars, arrays are
// sets, and objects are dropdown answers (with "checkboxes" for the checkbox kind).
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Scalar(s)
	case '[':
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("answer set: %w", err)
		}
		*a = Set(values...)
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		if _, ok := fields["checkboxes"]; ok {
			var v dropdownCheckboxJSON
			if err := json.Unmarshal(data, &v); err != nil {
				return fmt.Errorf("dropdown checkbox answer: %w", err)
			}
			*a = DropdownCheckbox(v.SelectedOption, v.Checkboxes...)
			return nil
		}
		var v dropdownTextJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("dropdown text answer: %w", err)
		}
		*a = DropdownText(v.SelectedOption, v.Text)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", errAnswerShape, string(data))
		}
		*a = Scalar(n.String())
	}
	return nil
}

func uniq(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func toggle(values []string, v string) []string {
	out := make([]string, 0, len(values)+1)
	found := false
	for _, x := range values {
		if x == v {
			found = true
			continue
		}
		out = append(out, x)
	}
	if !found {
		out = append(out, v)
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

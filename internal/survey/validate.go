package survey

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MinTerminalTextLen = 100
	MaxTerminalTextLen = 200
)

// Incomplete returns the ids of questions whose answer is missing or partial.
func Incomplete(questions []Question, answers map[int]Answer) []int {
	var ids []int
	for _, q := range questions {
		if !answers[q.ID].CompleteFor(q.QuestionType) {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// CheckTerminalLength enforces the free-text length window on a TEXT terminal
// question. Other types pass. Length counts runes.
func CheckTerminalLength(q Question, a Answer) error {
	if q.QuestionType != TypeText {
		return nil
	}
	n := utf8.RuneCountInString(a.Value())
	if n < MinTerminalTextLen || n > MaxTerminalTextLen {
		return &ValidationError{
			Reason:      fmt.Sprintf("please provide between %d and %d characters for the last question", MinTerminalTextLen, MaxTerminalTextLen),
			QuestionIDs: []int{q.ID},
		}
	}
	return nil
}

// Accept checks an answer against the catalog entry: option membership for
// choice types and the inclusive range for NUMBER and SLIDER.
func (q Question) Accept(a Answer) error {
	if a.Kind() != KindFor(q.QuestionType) {
		return fmt.Errorf("question %d: %w", q.ID, ErrAnswerShape)
	}

	switch q.QuestionType {
	case TypeText:
		return nil
	case TypeRadio, TypeDropdown:
		if !hasOption(q.Options, a.Value()) {
			return fmt.Errorf("question %d: %w", q.ID, ErrInvalidSelection)
		}
	case TypeMultiSelect:
		for _, v := range a.Values() {
			if !hasOption(q.Options, v) {
				return fmt.Errorf("question %d: %w", q.ID, ErrInvalidSelection)
			}
		}
	case TypeNumber, TypeSlider:
		if q.Range == nil {
			return nil
		}
		v, err := strconv.Atoi(strings.TrimSpace(a.Value()))
		if err != nil || !q.Range.Contains(v) {
			return fmt.Errorf("question %d: %w", q.ID, ErrOutOfRange)
		}
	case TypeDropdownText:
		if !hasOption(q.Options, a.SelectedOption()) {
			return fmt.Errorf("question %d: %w", q.ID, ErrInvalidSelection)
		}
	case TypeDropdownCheckbox:
		if !hasOption(q.Options, a.SelectedOption()) {
			return fmt.Errorf("question %d: %w", q.ID, ErrInvalidSelection)
		}
		for _, v := range a.Checkboxes() {
			if !hasOption(q.CheckboxOptions, v) {
				return fmt.Errorf("question %d: %w", q.ID, ErrInvalidCheckbox)
			}
		}
	default:
		return fmt.Errorf("question %d: %w", q.ID, ErrAnswerShape)
	}
	return nil
}

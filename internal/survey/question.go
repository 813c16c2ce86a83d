// Package survey holds the onboarding questionnaire domain: the question and
// behavior catalogs, typed answers, page segmentation, and the flow controller
// that drives a user from the first page to the final dual submission.
package survey

import (
	"encoding/json"
	"fmt"
)

type QuestionType string

const (
	TypeText             QuestionType = "TEXT"
	TypeNumber           QuestionType = "NUMBER"
	TypeRadio            QuestionType = "RADIO"
	TypeDropdown         QuestionType = "DROPDOWN"
	TypeMultiSelect      QuestionType = "MULTI_SELECT_DROPDOWN"
	TypeSlider           QuestionType = "SLIDER"
	TypeDropdownText     QuestionType = "DROPDOWN_TEXT"
	TypeDropdownCheckbox QuestionType = "DROPDOWN_CHECKBOX"
)

func (t QuestionType) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeRadio, TypeDropdown, TypeMultiSelect,
		TypeSlider, TypeDropdownText, TypeDropdownCheckbox:
		return true
	}
	return false
}

type Question struct {
	ID              int          `json:"id"`
	QuestionText    string       `json:"question_text"`
	QuestionType    QuestionType `json:"question_type"`
	Options         []string     `json:"options,omitempty"`
	CheckboxOptions []string     `json:"checkbox_options,omitempty"`
	Range           *Range       `json:"range,omitempty"`
}

// Range is an inclusive integer bound, encoded as a two element array.
type Range struct {
	Min int
	Max int
}

func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Min, r.Max})
}

func (r *Range) UnmarshalJSON(data []byte) error {
	var bounds []int
	if err := json.Unmarshal(data, &bounds); err != nil {
		return fmt.Errorf("range: %w", err)
	}
	if len(bounds) != 2 {
		return fmt.Errorf("range: expected [min, max], got %d values", len(bounds))
	}
	r.Min, r.Max = bounds[0], bounds[1]
	return nil
}

type Behavior struct {
	ID            int    `json:"id"`
	BehaviorTitle string `json:"behavior_title"`
	Description   string `json:"description"`
}

// AnswerItem is one entry of the submit-answers payload.
type AnswerItem struct {
	QuestionID int    `json:"question_id"`
	Answer     Answer `json:"answer"`
}

// BehaviorItem is one entry of the submit-behavior payload.
type BehaviorItem struct {
	BehaviorID    int  `json:"behavior_id"`
	FirstPriority bool `json:"first_priority"`
	HighPriority  bool `json:"high_priority"`
}

func hasOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

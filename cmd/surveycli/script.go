package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"eatwise/internal/survey"
)

// Script is a scripted survey run: answers keyed by question id in wire
// form, the behaviors to pick, and the high-priority subset used when more
// than three behaviors are picked.
type Script struct {
	Answers      map[int]survey.Answer `json:"answers"`
	Behaviors    []int                 `json:"behaviors"`
	HighPriority []int                 `json:"high_priority"`
}

func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Behaviors) == 0 {
		return nil, errors.New("parse script: behaviors is empty")
	}
	return &s, nil
}

// Run pages through a loaded controller, filling each page from the script,
// then picks behaviors and submits. A priority stage is answered with
// HighPriority before the second submit.
func (s *Script) Run(ctx context.Context, c *survey.Controller) (survey.State, error) {
	for i := 0; i < c.TotalPages(); i++ {
		for _, q := range c.PageQuestions() {
			a, ok := s.Answers[q.ID]
			if !ok {
				continue
			}
			if err := c.SetAnswer(q.ID, a); err != nil {
				return c.State(), err
			}
		}
		if c.IsFinalPage() {
			break
		}
		if err := c.GoToPage(survey.Next); err != nil {
			return c.State(), fmt.Errorf("page %d: %w", c.CurrentPage(), err)
		}
	}

	for _, id := range s.Behaviors {
		if err := c.ToggleBehavior(id); err != nil {
			return c.State(), err
		}
	}

	state, err := c.Submit(ctx)
	if err != nil || state != survey.StatePriority {
		return state, err
	}
	for _, id := range s.HighPriority {
		c.ToggleHighPriority(id)
	}
	return c.Submit(ctx)
}

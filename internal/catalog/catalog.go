// Package catalog loads the question and behavior catalogs served by the API.
// Entries come from numbered environment variables (QUESTION_1, QUESTION_2, ...
// and BEHAVIOR_1, ...), each holding one JSON object, read until the first gap.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"eatwise/internal/survey"
)

const (
	QuestionPrefix = "QUESTION_"
	BehaviorPrefix = "BEHAVIOR_"
)

type LookupFunc func(key string) (string, bool)

type Catalog struct {
	questions []survey.Question
	qByID     map[int]survey.Question
	behaviors []survey.Behavior
	bByID     map[int]survey.Behavior
}

func LoadFromEnv() (*Catalog, error) {
	return Load(os.LookupEnv)
}

func Load(lookup LookupFunc) (*Catalog, error) {
	c := &Catalog{
		qByID: make(map[int]survey.Question),
		bByID: make(map[int]survey.Behavior),
	}

	for i := 1; ; i++ {
		raw, ok := lookup(fmt.Sprintf("%s%d", QuestionPrefix, i))
		if !ok || raw == "" {
			break
		}
		var q survey.Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return nil, fmt.Errorf("%s%d: %w", QuestionPrefix, i, err)
		}
		// the position is the id when none is given
		if q.ID == 0 {
			q.ID = i
		}
		if !q.QuestionType.Valid() {
			return nil, fmt.Errorf("%s%d: unknown question_type %q", QuestionPrefix, i, q.QuestionType)
		}
		if _, dup := c.qByID[q.ID]; dup {
			return nil, fmt.Errorf("%s%d: duplicate question id %d", QuestionPrefix, i, q.ID)
		}
		c.questions = append(c.questions, q)
		c.qByID[q.ID] = q
	}

	for i := 1; ; i++ {
		raw, ok := lookup(fmt.Sprintf("%s%d", BehaviorPrefix, i))
		if !ok || raw == "" {
			break
		}
		var b survey.Behavior
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return nil, fmt.Errorf("%s%d: %w", BehaviorPrefix, i, err)
		}
		if b.ID == 0 {
			b.ID = i
		}
		if _, dup := c.bByID[b.ID]; dup {
			return nil, fmt.Errorf("%s%d: duplicate behavior id %d", BehaviorPrefix, i, b.ID)
		}
		c.behaviors = append(c.behaviors, b)
		c.bByID[b.ID] = b
	}

	return c, nil
}

func (c *Catalog) Questions() []survey.Question {
	return append([]survey.Question(nil), c.questions...)
}

func (c *Catalog) Question(id int) (survey.Question, bool) {
	q, ok := c.qByID[id]
	return q, ok
}

func (c *Catalog) Behaviors() []survey.Behavior {
	return append([]survey.Behavior(nil), c.behaviors...)
}

func (c *Catalog) Behavior(id int) (survey.Behavior, bool) {
	b, ok := c.bByID[id]
	return b, ok
}

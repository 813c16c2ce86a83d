package survey

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"eatwise/pkg/logger"
)

type State string

const (
	StateLoading         State = "loading"
	StatePaging          State = "paging"
	StatePriority        State = "priority"
	StateSubmitting      State = "submitting"
	StateSuccess         State = "success"
	StateUnauthenticated State = "unauthenticated"
)

type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

type QuestionCatalog interface {
	Questions(ctx context.Context) ([]Question, error)
}

type BehaviorCatalog interface {
	Behaviors(ctx context.Context) ([]Behavior, error)
}

type Submitter interface {
	SubmitBehaviors(ctx context.Context, token string, items []BehaviorItem) error
	SubmitAnswers(ctx context.Context, token string, items []AnswerItem) error
}

// TokenSource yields the bearer token of the signed-in user.
type TokenSource interface {
	Token() (string, bool)
}

type Dependencies struct {
	Questions QuestionCatalog
	Behaviors BehaviorCatalog
	Submitter Submitter
	Tokens    TokenSource
}

// Controller drives one pass through the onboarding survey. It owns the page
// cursor, the answers, and the behavior selection; nothing outlives the flow.
type Controller struct {
	deps Dependencies
	log  *logger.Logger

	mu          sync.Mutex
	state       State
	questions   []Question
	byID        map[int]Question
	behaviors   []Behavior
	behaviorIDs map[int]struct{}
	pager       Pager
	answers     map[int]Answer
	selection   Selection
	page        int
	scroll      int
}

func NewController(deps Dependencies, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		deps:    deps,
		log:     log.With("component", "survey_flow"),
		state:   StateLoading,
		answers: make(map[int]Answer),
	}
}

// Load fetches both catalogs concurrently. Paging starts only after both
// arrive; a failure leaves the controller in StateLoading so Load can be retried.
// Load is only valid in StateLoading, so a loaded flow keeps its answers.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	err := c.loadable()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	var (
		questions []Question
		behaviors []Behavior
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		qs, err := c.deps.Questions.Questions(gctx)
		if err != nil {
			return fmt.Errorf("fetch questions: %w", err)
		}
		questions = qs
		return nil
	})
	g.Go(func() error {
		bs, err := c.deps.Behaviors.Behaviors(gctx)
		if err != nil {
			return fmt.Errorf("fetch behaviors: %w", err)
		}
		behaviors = bs
		return nil
	})
	if err := g.Wait(); err != nil {
		c.log.Warn("catalog load failed", "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// a concurrent Load may have committed while the catalogs were in flight
	if err := c.loadable(); err != nil {
		return err
	}

	c.questions = questions
	c.byID = make(map[int]Question, len(questions))
	for _, q := range questions {
		c.byID[q.ID] = q
	}
	c.behaviors = behaviors
	c.behaviorIDs = make(map[int]struct{}, len(behaviors))
	for _, b := range behaviors {
		c.behaviorIDs[b.ID] = struct{}{}
	}
	c.pager = NewPager(questions)
	c.answers = make(map[int]Answer)
	c.selection.Reset()
	c.page = 1
	c.scroll = 0
	c.state = StatePaging

	c.log.Info("survey loaded",
		"questions", len(questions),
		"behaviors", len(behaviors),
		"total_pages", c.pager.TotalPages())
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLoading {
		return 0
	}
	return c.pager.TotalPages()
}

// ScrollOffset is the list offset the view should show; page moves reset it.
func (c *Controller) ScrollOffset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scroll
}

// SetScrollOffset records the view's scroll position.
func (c *Controller) SetScrollOffset(offset int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scroll = offset
}

func (c *Controller) IsFinalPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != StateLoading && c.pager.IsFinal(c.page)
}

func (c *Controller) PageQuestions() []Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pager.Page(c.page)
}

func (c *Controller) Questions() []Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Question(nil), c.questions...)
}

func (c *Controller) Behaviors() []Behavior {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Behavior(nil), c.behaviors...)
}

func (c *Controller) Answer(questionID int) (Answer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.answers[questionID]
	return a, ok
}

func (c *Controller) Selected() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Selected()
}

func (c *Controller) HighPriority() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.HighPriority()
}

// SetAnswer stores an answer for a question. The shape must match the
// question type; partial answers are allowed and caught on page moves.
func (c *Controller) SetAnswer(questionID int, a Answer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, err := c.editableQuestion(questionID)
	if err != nil {
		return err
	}
	if a.IsZero() {
		delete(c.answers, questionID)
		return nil
	}
	if a.Kind() != KindFor(q.QuestionType) {
		return &ValidationError{Reason: ErrAnswerShape.Error(), QuestionIDs: []int{questionID}}
	}
	c.answers[questionID] = a
	return nil
}

// ToggleOption flips one option of a MULTI_SELECT_DROPDOWN answer.
func (c *Controller) ToggleOption(questionID int, option string) error {
	return c.update(questionID, TypeMultiSelect, func(a Answer) Answer {
		return a.WithOptionToggled(option)
	})
}

// ToggleCheckbox flips one checkbox of a DROPDOWN_CHECKBOX answer.
func (c *Controller) ToggleCheckbox(questionID int, option string) error {
	return c.update(questionID, TypeDropdownCheckbox, func(a Answer) Answer {
		return a.WithCheckboxToggled(option)
	})
}

// SelectOption sets the dropdown half of a DROPDOWN_TEXT or DROPDOWN_CHECKBOX
// answer, keeping whatever the other half holds.
func (c *Controller) SelectOption(questionID int, option string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, err := c.editableQuestion(questionID)
	if err != nil {
		return err
	}
	kind := KindFor(q.QuestionType)
	if kind != KindDropdownText && kind != KindDropdownCheckbox {
		return &ValidationError{Reason: ErrAnswerShape.Error(), QuestionIDs: []int{questionID}}
	}
	c.answers[questionID] = c.answers[questionID].WithSelectedOption(kind, option)
	return nil
}

func (c *Controller) update(questionID int, want QuestionType, fn func(Answer) Answer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, err := c.editableQuestion(questionID)
	if err != nil {
		return err
	}
	if q.QuestionType != want {
		return &ValidationError{Reason: ErrAnswerShape.Error(), QuestionIDs: []int{questionID}}
	}
	c.answers[questionID] = fn(c.answers[questionID])
	return nil
}

func (c *Controller) editableQuestion(questionID int) (Question, error) {
	if err := c.requireState(StatePaging); err != nil {
		return Question{}, err
	}
	q, ok := c.byID[questionID]
	if !ok {
		return Question{}, fmt.Errorf("question %d: %w", questionID, ErrUnknownQuestion)
	}
	return q, nil
}

// GoToPage moves one page in dir once every question on the current page is
// complete. The cursor is clamped to [1, TotalPages].
func (c *Controller) GoToPage(dir Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireState(StatePaging); err != nil {
		return err
	}
	if missing := Incomplete(c.pager.Page(c.page), c.answers); len(missing) > 0 {
		return &ValidationError{
			Reason:      "please answer all questions on this page before proceeding",
			QuestionIDs: missing,
		}
	}
	if c.pager.IsFinal(c.page) && dir == Next {
		if t, ok := c.pager.Terminal(); ok {
			if err := CheckTerminalLength(t, c.answers[t.ID]); err != nil {
				return err
			}
		}
	}

	next := c.page + int(dir)
	if next < 1 {
		next = 1
	}
	if total := c.pager.TotalPages(); next > total {
		next = total
	}
	c.page = next
	c.scroll = 0
	return nil
}

func (c *Controller) ToggleBehavior(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireState(StatePaging); err != nil {
		return err
	}
	if _, ok := c.behaviorIDs[id]; !ok {
		return fmt.Errorf("behavior %d: %w", id, ErrUnknownBehavior)
	}
	c.selection.Toggle(id)
	return nil
}

// ToggleHighPriority is only meaningful in the priority stage; anywhere else,
// or for ids outside the selection, or for a fourth pick, it does nothing.
func (c *Controller) ToggleHighPriority(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePriority {
		return
	}
	c.selection.ToggleHighPriority(id)
}

// LeavePriorityStage returns to paging so the user can change the selection.
func (c *Controller) LeavePriorityStage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StatePriority {
		c.state = StatePaging
	}
}

// Submit finishes the flow. From paging it validates every answer and the
// behavior count; more than MaxDirectBehaviors behaviors move the flow to
// StatePriority without any network call. From the priority stage it checks
// the high-priority count. Then the behavior list and the answer list are
// sent, in that order. The returned state is the state after the call.
func (c *Controller) Submit(ctx context.Context) (State, error) {
	c.mu.Lock()

	from := c.state
	switch from {
	case StatePaging:
		if err := c.validateForSubmit(); err != nil {
			c.mu.Unlock()
			return from, err
		}
		if c.selection.NeedsPriorityStage() {
			c.state = StatePriority
			c.log.Debug("priority stage entered", "selected", c.selection.Len())
			c.mu.Unlock()
			return StatePriority, nil
		}
	case StatePriority:
		if n := len(c.selection.HighPriority()); n < 1 || n > MaxHighPriority {
			c.mu.Unlock()
			return from, &ValidationError{Reason: fmt.Sprintf("please select between 1 and %d high-priority behaviors", MaxHighPriority)}
		}
	default:
		err := c.requireState(StatePaging)
		c.mu.Unlock()
		return from, err
	}

	token, ok := c.deps.Tokens.Token()
	if !ok || token == "" {
		c.expireSession()
		c.mu.Unlock()
		return StateUnauthenticated, &AuthError{}
	}

	behaviorList := c.selection.BehaviorList()
	answerList := c.answerList()
	c.state = StateSubmitting
	c.mu.Unlock()

	step, err := c.send(ctx, token, behaviorList, answerList)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			c.expireSession()
			c.log.Warn("submission rejected, session expired", "step", step)
			return StateUnauthenticated, &AuthError{Err: err}
		}
		c.state = from
		c.log.Warn("submission failed", "step", step, "error", err)
		return from, &SubmissionError{Step: step, Err: err}
	}

	c.state = StateSuccess
	c.answers = make(map[int]Answer)
	c.selection.Reset()
	c.log.Info("survey submitted", "behaviors", len(behaviorList), "answers", len(answerList))
	return StateSuccess, nil
}

func (c *Controller) send(ctx context.Context, token string, behaviors []BehaviorItem, answers []AnswerItem) (SubmitStep, error) {
	if err := c.deps.Submitter.SubmitBehaviors(ctx, token, behaviors); err != nil {
		return StepBehaviors, err
	}
	if err := c.deps.Submitter.SubmitAnswers(ctx, token, answers); err != nil {
		return StepAnswers, err
	}
	return "", nil
}

func (c *Controller) validateForSubmit() error {
	if c.selection.Len() == 0 {
		return &ValidationError{Reason: "please select at least one behavior"}
	}
	if t, ok := c.pager.Terminal(); ok {
		if err := CheckTerminalLength(t, c.answers[t.ID]); err != nil {
			return err
		}
	}
	if missing := Incomplete(c.questions, c.answers); len(missing) > 0 {
		return &ValidationError{
			Reason:      "please answer all questions before submitting",
			QuestionIDs: missing,
		}
	}
	return nil
}

// answerList is in catalog order.
func (c *Controller) answerList() []AnswerItem {
	items := make([]AnswerItem, 0, len(c.questions))
	for _, q := range c.questions {
		items = append(items, AnswerItem{QuestionID: q.ID, Answer: c.answers[q.ID]})
	}
	return items
}

// expireSession drops everything the user typed; nothing survives a re-login.
func (c *Controller) expireSession() {
	c.state = StateUnauthenticated
	c.answers = make(map[int]Answer)
	c.selection.Reset()
}

func (c *Controller) loadable() error {
	switch c.state {
	case StateLoading:
		return nil
	case StatePaging, StatePriority:
		return ErrAlreadyLoaded
	default:
		return c.requireState(StateLoading)
	}
}

func (c *Controller) requireState(want State) error {
	switch c.state {
	case want:
		return nil
	case StateLoading:
		return ErrNotLoaded
	case StateSubmitting:
		return ErrBusy
	case StateSuccess, StateUnauthenticated:
		return ErrFlowFinished
	default:
		return fmt.Errorf("survey flow is in %s state", c.state)
	}
}

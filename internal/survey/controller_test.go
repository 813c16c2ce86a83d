package survey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	questions []Question
	behaviors []Behavior
	qErr      error
	bErr      error
	qDelay    time.Duration
}

func (f *fakeCatalog) Questions(ctx context.Context) ([]Question, error) {
	if f.qDelay > 0 {
		time.Sleep(f.qDelay)
	}
	return f.questions, f.qErr
}

func (f *fakeCatalog) Behaviors(ctx context.Context) ([]Behavior, error) {
	return f.behaviors, f.bErr
}

type fakeSubmitter struct {
	mu          sync.Mutex
	calls       []string
	behaviors   []BehaviorItem
	answers     []AnswerItem
	tokens      []string
	behaviorErr error
	answerErr   error
}

func (f *fakeSubmitter) SubmitBehaviors(ctx context.Context, token string, items []BehaviorItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "behaviors")
	f.tokens = append(f.tokens, token)
	if f.behaviorErr != nil {
		return f.behaviorErr
	}
	f.behaviors = items
	return nil
}

func (f *fakeSubmitter) SubmitAnswers(ctx context.Context, token string, items []AnswerItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "answers")
	f.tokens = append(f.tokens, token)
	if f.answerErr != nil {
		return f.answerErr
	}
	f.answers = items
	return nil
}

type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

func behaviorsN(n int) []Behavior {
	out := make([]Behavior, n)
	for i := range out {
		out[i] = Behavior{ID: 10 + i, BehaviorTitle: fmt.Sprintf("behavior %d", 10+i)}
	}
	return out
}

// the end-to-end example: TEXT, RADIO, terminal TEXT
func exampleCatalog() *fakeCatalog {
	return &fakeCatalog{
		questions: []Question{
			{ID: 1, QuestionText: "Name", QuestionType: TypeText},
			{ID: 2, QuestionText: "Pick", QuestionType: TypeRadio, Options: []string{"A", "B"}},
			{ID: 3, QuestionText: "Tell us more", QuestionType: TypeText},
		},
		behaviors: behaviorsN(6),
	}
}

func newLoaded(t *testing.T, cat *fakeCatalog, sub *fakeSubmitter, token string) *Controller {
	t.Helper()
	c := NewController(Dependencies{Questions: cat, Behaviors: cat, Submitter: sub, Tokens: staticToken(token)}, nil)
	require.NoError(t, c.Load(context.Background()))
	return c
}

func answerExample(t *testing.T, c *Controller) string {
	t.Helper()
	long := strings.Repeat("x", 150)
	require.NoError(t, c.SetAnswer(1, Scalar("x")))
	require.NoError(t, c.SetAnswer(2, Scalar("A")))
	require.NoError(t, c.SetAnswer(3, Scalar(long)))
	return long
}

func TestControllerLoadWaitsForBothCatalogs(t *testing.T) {
	cat := exampleCatalog()
	cat.qDelay = 20 * time.Millisecond
	c := NewController(Dependencies{Questions: cat, Behaviors: cat, Submitter: &fakeSubmitter{}, Tokens: staticToken("t")}, nil)

	assert.Equal(t, StateLoading, c.State())
	assert.ErrorIs(t, c.GoToPage(Next), ErrNotLoaded)

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, StatePaging, c.State())
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, 3, c.TotalPages())
	assert.Len(t, c.Behaviors(), 6)
}

func TestControllerLoadFailureStaysLoading(t *testing.T) {
	cat := exampleCatalog()
	cat.bErr = errors.New("boom")
	c := NewController(Dependencies{Questions: cat, Behaviors: cat, Submitter: &fakeSubmitter{}, Tokens: staticToken("t")}, nil)

	assert.Error(t, c.Load(context.Background()))
	assert.Equal(t, StateLoading, c.State())
	assert.Equal(t, 0, c.TotalPages())
}

func TestControllerLoadRetryAfterFailure(t *testing.T) {
	cat := exampleCatalog()
	cat.qErr = errors.New("timeout")
	c := NewController(Dependencies{Questions: cat, Behaviors: cat, Submitter: &fakeSubmitter{}, Tokens: staticToken("t")}, nil)

	require.Error(t, c.Load(context.Background()))
	cat.qErr = nil
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, StatePaging, c.State())
}

func TestControllerLoadKeepsPagingProgress(t *testing.T) {
	c := newLoaded(t, exampleCatalog(), &fakeSubmitter{}, "tok")
	answerExample(t, c)
	require.NoError(t, c.ToggleBehavior(10))
	require.NoError(t, c.GoToPage(Next))

	assert.ErrorIs(t, c.Load(context.Background()), ErrAlreadyLoaded)
	assert.Equal(t, StatePaging, c.State())
	assert.Equal(t, 2, c.CurrentPage())
	a, ok := c.Answer(1)
	require.True(t, ok)
	assert.Equal(t, "x", a.Value())
	assert.Equal(t, []int{10}, c.Selected())
}

func TestControllerLoadInPriorityStage(t *testing.T) {
	c := newLoaded(t, exampleCatalog(), &fakeSubmitter{}, "tok")
	answerExample(t, c)
	for _, id := range []int{10, 11, 12, 13} {
		require.NoError(t, c.ToggleBehavior(id))
	}
	state, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatePriority, state)
	c.ToggleHighPriority(11)

	assert.ErrorIs(t, c.Load(context.Background()), ErrAlreadyLoaded)
	assert.Equal(t, StatePriority, c.State())
	assert.Equal(t, []int{10, 11, 12, 13}, c.Selected())
	assert.Equal(t, []int{11}, c.HighPriority())
}

func TestControllerLoadAfterSuccess(t *testing.T) {
	c := newLoaded(t, exampleCatalog(), &fakeSubmitter{}, "tok")
	answerExample(t, c)
	require.NoError(t, c.ToggleBehavior(10))
	state, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateSuccess, state)

	assert.ErrorIs(t, c.Load(context.Background()), ErrFlowFinished)
	assert.Equal(t, StateSuccess, c.State())
}

type blockingSubmitter struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSubmitter) SubmitBehaviors(ctx context.Context, token string, items []BehaviorItem) error {
	close(b.entered)
	<-b.release
	return nil
}

func (b *blockingSubmitter) SubmitAnswers(ctx context.Context, token string, items []AnswerItem) error {
	return nil
}

func TestControllerLoadDuringSubmission(t *testing.T) {
	sub := &blockingSubmitter{entered: make(chan struct{}), release: make(chan struct{})}
	c := NewController(Dependencies{Questions: exampleCatalog(), Behaviors: exampleCatalog(), Submitter: sub, Tokens: staticToken("tok")}, nil)
	require.NoError(t, c.Load(context.Background()))
	answerExample(t, c)
	require.NoError(t, c.ToggleBehavior(10))

	done := make(chan State, 1)
	go func() {
		state, _ := c.Submit(context.Background())
		done <- state
	}()
	<-sub.entered

	assert.ErrorIs(t, c.Load(context.Background()), ErrBusy)
	assert.Equal(t, StateSubmitting, c.State())

	close(sub.release)
	assert.Equal(t, StateSuccess, <-done)
}

func TestGoToPageBlocksOnIncompletePage(t *testing.T) {
	c := newLoaded(t, exampleCatalog(), &fakeSubmitter{}, "t")

	var verr *ValidationError
	require.ErrorAs(t, c.GoToPage(Next), &verr)
	assert.Equal(t, []int{1}, verr.QuestionIDs)
	assert.Equal(t, 1, c.CurrentPage())

	require.NoError(t, c.SetAnswer(1, Scalar("x")))
	c.SetScrollOffset(300)
	require.NoError(t, c.GoToPage(Next))
	assert.Equal(t, 2, c.CurrentPage())
	assert.Equal(t, 0, c.ScrollOffset())
	assert.Equal(t, []int{2}, ids(c.PageQuestions()))

	// the radio page is incomplete, so even going back is refused
	require.ErrorAs(t, c.GoToPage(Prev), &verr)
	assert.Equal(t, 2, c.CurrentPage())

	require.NoError(t, c.SetAnswer(2, Scalar("B")))
	require.NoError(t, c.GoToPage(Prev))
	assert.Equal(t, 1, c.CurrentPage())
	require.NoError(t, c.GoToPage(Prev))
	assert.Equal(t, 1, c.CurrentPage(), "clamped at the first page")
}

func TestGoToPageClampsAtFinalPage(t *testing.T) {
	c := newLoaded(t, exampleCatalog(), &fakeSubmitter{}, "t")
	answerExample(t, c)

	require.NoError(t, c.GoToPage(Next))
	require.NoError(t, c.GoToPage(Next))
	assert.True(t, c.IsFinalPage())
	require.NoError(t, c.GoToPage(Next))
	assert.Equal(t, 3, c.CurrentPage())

	require.NoError(t, c.SetAnswer(3, Scalar("short")))
	var verr *ValidationError
	assert.ErrorAs(t, c.GoToPage(Next), &verr)
}

func TestSetAnswerRejectsWrongShapeAndUnknownQuestion(t *testing.T) {
	c := newLoaded(t, exampleCatalog(), &fakeSubmitter{}, "t")

	var verr *ValidationError
	assert.ErrorAs(t, c.SetAnswer(2, Set("A")), &verr)
	assert.ErrorIs(t, c.SetAnswer(99, Scalar("x")), ErrUnknownQuestion)
	assert.ErrorAs(t, c.ToggleOption(1, "x"), &verr)
	assert.ErrorAs(t, c.SelectOption(1, "x"), &verr)

	require.NoError(t, c.SetAnswer(1, Scalar("x")))
	require.NoError(t, c.SetAnswer(1, Answer{}))
	_, ok := c.Answer(1)
	assert.False(t, ok)
}

func TestToggleHelpersBuildAnswers(t *testing.T) {
	cat := &fakeCatalog{
		questions: []Question{
			{ID: 1, QuestionType: TypeMultiSelect, Options: []string{"a", "b"}},
			{ID: 2, QuestionType: TypeDropdownCheckbox, Options: []string{"o"}, CheckboxOptions: []string{"c1", "c2"}},
			{ID: 3, QuestionType: TypeDropdownText, Options: []string{"o"}},
			{ID: 4, QuestionType: TypeText},
		},
		behaviors: behaviorsN(1),
	}
	c := newLoaded(t, cat, &fakeSubmitter{}, "t")

	require.NoError(t, c.ToggleOption(1, "a"))
	require.NoError(t, c.ToggleOption(1, "b"))
	require.NoError(t, c.ToggleOption(1, "a"))
	a, _ := c.Answer(1)
	assert.Equal(t, []string{"b"}, a.Values())

	require.NoError(t, c.ToggleCheckbox(2, "c1"))
	require.NoError(t, c.SelectOption(2, "o"))
	a, _ = c.Answer(2)
	assert.True(t, a.CompleteFor(TypeDropdownCheckbox))

	require.NoError(t, c.SelectOption(3, "o"))
	a, _ = c.Answer(3)
	assert.False(t, a.CompleteFor(TypeDropdownText))
	require.NoError(t, c.SetAnswer(3, DropdownText(a.SelectedOption(), "details")))

	require.NoError(t, c.GoToPage(Next))
	assert.Equal(t, 2, c.CurrentPage())
}

func TestSubmitEndToEndPayload(t *testing.T) {
	sub := &fakeSubmitter{}
	c := newLoaded(t, exampleCatalog(), sub, "tok")
	long := answerExample(t, c)
	require.NoError(t, c.ToggleBehavior(10))
	require.NoError(t, c.ToggleBehavior(11))

	state, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, state)
	assert.Equal(t, StateSuccess, c.State())

	assert.Equal(t, []string{"behaviors", "answers"}, sub.calls)
	assert.Equal(t, []string{"tok", "tok"}, sub.tokens)
	assert.Equal(t, []BehaviorItem{
		{BehaviorID: 10, FirstPriority: true, HighPriority: true},
		{BehaviorID: 11, FirstPriority: true, HighPriority: true},
	}, sub.behaviors)
	assert.Equal(t, []AnswerItem{
		{QuestionID: 1, Answer: Scalar("x")},
		{QuestionID: 2, Answer: Scalar("A")},
		{QuestionID: 3, Answer: Scalar(long)},
	}, sub.answers)

	// nothing is kept after success
	_, ok := c.Answer(1)
	assert.False(t, ok)
	assert.Empty(t, c.Selected())
	_, err = c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrFlowFinished)
}

func TestSubmitWithoutBehaviorsAlwaysFails(t *testing.T) {
	sub := &fakeSubmitter{}
	c := newLoaded(t, exampleCatalog(), sub, "tok")

	var verr *ValidationError
	_, err := c.Submit(context.Background())
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "at least one behavior")

	answerExample(t, c)
	_, err = c.Submit(context.Background())
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "at least one behavior")
	assert.Empty(t, sub.calls)
	assert.Equal(t, StatePaging, c.State())
}

func TestSubmitTerminalLengthBounds(t *testing.T) {
	for _, tc := range []struct {
		n  int
		ok bool
	}{{99, false}, {100, true}, {200, true}, {201, false}} {
		t.Run(fmt.Sprint(tc.n), func(t *testing.T) {
			sub := &fakeSubmitter{}
			c := newLoaded(t, exampleCatalog(), sub, "tok")
			answerExample(t, c)
			require.NoError(t, c.SetAnswer(3, Scalar(strings.Repeat("y", tc.n))))
			require.NoError(t, c.ToggleBehavior(10))

			_, err := c.Submit(context.Background())
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Empty(t, sub.calls)
		})
	}
}

func TestSubmitIncompleteAnswers(t *testing.T) {
	sub := &fakeSubmitter{}
	c := newLoaded(t, exampleCatalog(), sub, "tok")
	require.NoError(t, c.SetAnswer(3, Scalar(strings.Repeat("z", 120))))
	require.NoError(t, c.ToggleBehavior(10))

	var verr *ValidationError
	_, err := c.Submit(context.Background())
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []int{1, 2}, verr.QuestionIDs)
	assert.Empty(t, sub.calls)
}

func TestSubmitWithFourBehaviorsEntersPriorityStage(t *testing.T) {
	sub := &fakeSubmitter{}
	c := newLoaded(t, exampleCatalog(), sub, "tok")
	answerExample(t, c)
	for _, id := range []int{10, 11, 12, 13} {
		require.NoError(t, c.ToggleBehavior(id))
	}

	state, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatePriority, state)
	assert.Empty(t, sub.calls)

	// no high priority yet
	var verr *ValidationError
	_, err = c.Submit(context.Background())
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StatePriority, c.State())

	c.ToggleHighPriority(99)
	c.ToggleHighPriority(10)
	c.ToggleHighPriority(11)
	c.ToggleHighPriority(12)
	c.ToggleHighPriority(13)
	assert.Equal(t, []int{10, 11, 12}, c.HighPriority())

	// answers are frozen in the priority stage
	assert.Error(t, c.SetAnswer(1, Scalar("y")))

	state, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, state)
	assert.Equal(t, []BehaviorItem{
		{BehaviorID: 10, FirstPriority: true, HighPriority: true},
		{BehaviorID: 11, FirstPriority: true, HighPriority: true},
		{BehaviorID: 12, FirstPriority: true, HighPriority: true},
		{BehaviorID: 13, FirstPriority: true, HighPriority: false},
	}, sub.behaviors)
}

func TestThreeBehaviorsSubmitDirectly(t *testing.T) {
	sub := &fakeSubmitter{}
	c := newLoaded(t, exampleCatalog(), sub, "tok")
	answerExample(t, c)
	for _, id := range []int{10, 11, 12} {
		require.NoError(t, c.ToggleBehavior(id))
	}
	state, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, state)
	for _, it := range sub.behaviors {
		assert.True(t, it.HighPriority)
	}
}

func TestLeavePriorityStage(t *testing.T) {
	c := newLoaded(t, exampleCatalog(), &fakeSubmitter{}, "tok")
	answerExample(t, c)
	for _, id := range []int{10, 11, 12, 13} {
		require.NoError(t, c.ToggleBehavior(id))
	}
	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	c.LeavePriorityStage()
	assert.Equal(t, StatePaging, c.State())
	require.NoError(t, c.ToggleBehavior(13))
	state, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, state)
}

func TestSubmitWithoutTokenRedirects(t *testing.T) {
	sub := &fakeSubmitter{}
	c := newLoaded(t, exampleCatalog(), sub, "")
	answerExample(t, c)
	require.NoError(t, c.ToggleBehavior(10))

	state, err := c.Submit(context.Background())
	assert.Equal(t, StateUnauthenticated, state)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	var aerr *AuthError
	assert.ErrorAs(t, err, &aerr)
	assert.Empty(t, sub.calls)

	_, ok := c.Answer(1)
	assert.False(t, ok, "answers are discarded on auth failure")
}

func TestSubmitRejectedTokenRedirects(t *testing.T) {
	sub := &fakeSubmitter{behaviorErr: fmt.Errorf("401: %w", ErrUnauthenticated)}
	c := newLoaded(t, exampleCatalog(), sub, "stale")
	answerExample(t, c)
	require.NoError(t, c.ToggleBehavior(10))

	state, err := c.Submit(context.Background())
	assert.Equal(t, StateUnauthenticated, state)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSubmitFailureIsRetryable(t *testing.T) {
	sub := &fakeSubmitter{answerErr: errors.New("server down")}
	c := newLoaded(t, exampleCatalog(), sub, "tok")
	answerExample(t, c)
	require.NoError(t, c.ToggleBehavior(10))

	state, err := c.Submit(context.Background())
	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, StepAnswers, serr.Step)
	assert.Equal(t, StatePaging, state)
	assert.Equal(t, StatePaging, c.State())

	// behaviors already went through; a retry sends them again
	sub.answerErr = nil
	state, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, state)
	assert.Equal(t, []string{"behaviors", "answers", "behaviors", "answers"}, sub.calls)
}

func TestSubmitFailureInPriorityStageStaysThere(t *testing.T) {
	sub := &fakeSubmitter{behaviorErr: errors.New("timeout")}
	c := newLoaded(t, exampleCatalog(), sub, "tok")
	answerExample(t, c)
	for _, id := range []int{10, 11, 12, 13} {
		require.NoError(t, c.ToggleBehavior(id))
	}
	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	c.ToggleHighPriority(10)

	state, err := c.Submit(context.Background())
	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, StepBehaviors, serr.Step)
	assert.Equal(t, StatePriority, state)
	assert.Equal(t, []string{"behaviors"}, sub.calls)
}

func TestToggleBehaviorUnknownID(t *testing.T) {
	c := newLoaded(t, exampleCatalog(), &fakeSubmitter{}, "tok")
	assert.ErrorIs(t, c.ToggleBehavior(999), ErrUnknownBehavior)
	require.NoError(t, c.ToggleBehavior(10))
	require.NoError(t, c.ToggleBehavior(10))
	assert.Empty(t, c.Selected())
}

package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eatwise/internal/models/db_models"
	"eatwise/internal/survey"
	"eatwise/pkg/utils"
)

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*db_models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*db_models.Account)}
}

func (r *fakeAccountRepo) Insert(_ context.Context, a *db_models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now().Unix()
	r.accounts[a.ID.String()] = a
	return nil
}

func (r *fakeAccountRepo) FindById(_ context.Context, id string) (*db_models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[id], nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) UpdatePassword(_ context.Context, id string, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (r *fakeAccountRepo) UpdateNames(_ context.Context, id string, names map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := names["first_name"]; ok {
		a.FirstName = v
	}
	if v, ok := names["last_name"]; ok {
		a.LastName = v
	}
	return nil
}

type fakeAnswerRepo struct {
	rows    map[string]*db_models.QuestionAnswer
	upserts int
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{rows: make(map[string]*db_models.QuestionAnswer)}
}

func (r *fakeAnswerRepo) Upsert(_ context.Context, a *db_models.QuestionAnswer) error {
	r.upserts++
	r.rows[a.AccountID.String()] = a
	return nil
}

func (r *fakeAnswerRepo) FindByAccount(_ context.Context, id string) (*db_models.QuestionAnswer, error) {
	return r.rows[id], nil
}

func (r *fakeAnswerRepo) ExistsForAccount(_ context.Context, id string) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

type fakeBehaviorRepo struct {
	rows map[string][]db_models.UserBehavior
}

func newFakeBehaviorRepo() *fakeBehaviorRepo {
	return &fakeBehaviorRepo{rows: make(map[string][]db_models.UserBehavior)}
}

func (r *fakeBehaviorRepo) ReplaceForAccount(_ context.Context, id uuid.UUID, rows []db_models.UserBehavior) error {
	for i := range rows {
		rows[i].AccountID = id
		rows[i].Position = i
	}
	r.rows[id.String()] = append([]db_models.UserBehavior(nil), rows...)
	return nil
}

func (r *fakeBehaviorRepo) ListByAccount(_ context.Context, id string) ([]db_models.UserBehavior, error) {
	return append([]db_models.UserBehavior(nil), r.rows[id]...), nil
}

type fakeTipsRepo struct {
	byDay map[string]*db_models.UserTip
}

func newFakeTipsRepo() *fakeTipsRepo {
	return &fakeTipsRepo{byDay: make(map[string]*db_models.UserTip)}
}

func (r *fakeTipsRepo) Upsert(_ context.Context, t *db_models.UserTip) error {
	r.byDay[t.AccountID.String()+"/"+t.Day] = t
	return nil
}

func (r *fakeTipsRepo) FindLatest(_ context.Context, id string) (*db_models.UserTip, error) {
	var latest *db_models.UserTip
	for _, t := range r.byDay {
		if t.AccountID.String() == id && (latest == nil || t.Day > latest.Day) {
			latest = t
		}
	}
	return latest, nil
}

type fakeMail struct {
	to, otp string
	err     error
}

func (m *fakeMail) SendOTP(to, otp string, _ time.Duration) error {
	m.to, m.otp = to, otp
	return m.err
}

type fakeGoalRepo struct {
	mu    sync.Mutex
	byDay map[string]*db_models.UserGoal
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{byDay: make(map[string]*db_models.UserGoal)}
}

func (r *fakeGoalRepo) Upsert(_ context.Context, g *db_models.UserGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g.UpdatedAt = time.Now().Unix()
	r.byDay[g.AccountID.String()+"/"+g.Day] = g
	return nil
}

func (r *fakeGoalRepo) FindForDay(_ context.Context, id, day string) (*db_models.UserGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byDay[id+"/"+day], nil
}

type fakeFoodUpdateRepo struct {
	rows []*db_models.FoodUpdate
	err  error
}

func (r *fakeFoodUpdateRepo) Insert(_ context.Context, u *db_models.FoodUpdate) error {
	if r.err != nil {
		return r.err
	}
	u.ID = uuid.New()
	if u.CreatedAt == 0 {
		u.CreatedAt = time.Now().Unix()
	}
	r.rows = append(r.rows, u)
	return nil
}

func (r *fakeFoodUpdateRepo) ListByAccount(_ context.Context, id string) ([]db_models.FoodUpdate, error) {
	var out []db_models.FoodUpdate
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].AccountID.String() == id {
			out = append(out, *r.rows[i])
		}
	}
	return out, r.err
}

func (r *fakeFoodUpdateRepo) FindById(_ context.Context, id string) (*db_models.FoodUpdate, error) {
	for _, u := range r.rows {
		if u.ID.String() == id {
			return u, r.err
		}
	}
	return nil, r.err
}

type fakeGenerator struct {
	text   string
	err    error
	prompt utils.TipsPrompt
	asked  string
}

func (g *fakeGenerator) GenerateTips(_ context.Context, p utils.TipsPrompt) (string, error) {
	g.prompt = p
	return g.text, g.err
}

func (g *fakeGenerator) Chat(_ context.Context, prompt string) (string, error) {
	g.asked = prompt
	return g.text, g.err
}

func (g *fakeGenerator) Close() error { return nil }

type staticCatalog struct {
	questions []survey.Question
	behaviors []survey.Behavior
}

func (c staticCatalog) Questions() []survey.Question { return c.questions }

func (c staticCatalog) Question(id int) (survey.Question, bool) {
	for _, q := range c.questions {
		if q.ID == id {
			return q, true
		}
	}
	return survey.Question{}, false
}

func (c staticCatalog) Behaviors() []survey.Behavior { return c.behaviors }

func (c staticCatalog) Behavior(id int) (survey.Behavior, bool) {
	for _, b := range c.behaviors {
		if b.ID == id {
			return b, true
		}
	}
	return survey.Behavior{}, false
}

func testCatalog() staticCatalog {
	return staticCatalog{
		questions: []survey.Question{
			{ID: 1, QuestionText: "Age", QuestionType: survey.TypeNumber, Range: &survey.Range{Min: 10, Max: 100}},
			{ID: 2, QuestionText: "Diet", QuestionType: survey.TypeRadio, Options: []string{"Vegan", "Omnivore"}},
			{ID: 3, QuestionText: "Allergies", QuestionType: survey.TypeDropdownCheckbox, Options: []string{"Yes", "No"}, CheckboxOptions: []string{"Peanuts", "Soy"}},
			{ID: 4, QuestionText: "Goals", QuestionType: survey.TypeText},
			{ID: 5, QuestionText: "Fast food meals per week", QuestionType: survey.TypeSlider, Range: &survey.Range{Min: 0, Max: 14}},
		},
		behaviors: []survey.Behavior{
			{ID: 1, BehaviorTitle: "Late night snacking"},
			{ID: 2, BehaviorTitle: "Skipping breakfast"},
			{ID: 3, BehaviorTitle: "Sugary drinks"},
			{ID: 4, BehaviorTitle: "Eating fast"},
		},
	}
}

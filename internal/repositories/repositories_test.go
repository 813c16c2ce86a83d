package repositories

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"eatwise/internal/infra"
	"eatwise/internal/models/db_models"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	dbOnce sync.Once
	testDB *gorm.DB
	dbErr  error
)

func openDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}
		testDB, dbErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if dbErr == nil {
			dbErr = infra.Migrate(testDB)
		}
	})
	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return testDB
}

// tx gives each test a transaction that is rolled back afterwards.
func tx(tb testing.TB) *gorm.DB {
	tb.Helper()
	t := openDB(tb).Begin()
	if t.Error != nil {
		tb.Fatalf("begin tx: %v", t.Error)
	}
	tb.Cleanup(func() { _ = t.Rollback().Error })
	return t
}

func seedAccount(t *testing.T, db *gorm.DB) *db_models.Account {
	t.Helper()
	acc := &db_models.Account{
		FirstName:    "Lan",
		LastName:     "Nguyen",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         db_models.RoleUser,
	}
	require.NoError(t, NewAccountRepository(db).Insert(context.Background(), acc))
	return acc
}

func TestAccountRepository(t *testing.T) {
	db := tx(t)
	ctx := context.Background()
	repo := NewAccountRepository(db)
	acc := seedAccount(t, db)

	found, err := repo.FindByEmail(ctx, acc.Email)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, acc.ID, found.ID)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.UpdatePassword(ctx, acc.ID.String(), "new-hash"))
	found, err = repo.FindById(ctx, acc.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.PasswordHash)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, uuid.NewString(), "x"), gorm.ErrRecordNotFound)

	require.NoError(t, repo.UpdateNames(ctx, acc.ID.String(), map[string]string{"last_name": "Tran"}))
	found, err = repo.FindById(ctx, acc.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Lan", found.FirstName)
	assert.Equal(t, "Tran", found.LastName)

	assert.Error(t, repo.UpdateNames(ctx, acc.ID.String(), map[string]string{"role": "admin"}))
	assert.ErrorIs(t, repo.UpdateNames(ctx, uuid.NewString(), map[string]string{"first_name": "X"}), gorm.ErrRecordNotFound)
}

func TestAnswerRepositoryUpsert(t *testing.T) {
	db := tx(t)
	ctx := context.Background()
	repo := NewAnswerRepository(db)
	acc := seedAccount(t, db)

	ok, err := repo.ExistsForAccount(ctx, acc.ID.String())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Upsert(ctx, &db_models.QuestionAnswer{AccountID: acc.ID, QuestionData: datatypes.JSON(`[{"question_id":1,"answer":"a"}]`)}))
	require.NoError(t, repo.Upsert(ctx, &db_models.QuestionAnswer{AccountID: acc.ID, QuestionData: datatypes.JSON(`[{"question_id":1,"answer":"b"}]`)}))

	var count int64
	require.NoError(t, db.Model(&db_models.QuestionAnswer{}).Where("account_id = ?", acc.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.FindByAccount(ctx, acc.ID.String())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"question_id":1,"answer":"b"}]`, string(got.QuestionData))
}

func TestBehaviorRepositoryReplace(t *testing.T) {
	db := tx(t)
	ctx := context.Background()
	repo := NewBehaviorRepository(db)
	acc := seedAccount(t, db)

	require.NoError(t, repo.ReplaceForAccount(ctx, acc.ID, []db_models.UserBehavior{
		{BehaviorID: 1, FirstPriority: true, HighPriority: true},
		{BehaviorID: 2, FirstPriority: true, HighPriority: true},
	}))
	require.NoError(t, repo.ReplaceForAccount(ctx, acc.ID, []db_models.UserBehavior{
		{BehaviorID: 7, FirstPriority: true, HighPriority: false},
		{BehaviorID: 3, FirstPriority: true, HighPriority: true},
	}))

	rows, err := repo.ListByAccount(ctx, acc.ID.String())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 7, rows[0].BehaviorID)
	assert.Equal(t, 3, rows[1].BehaviorID)
}

func TestTipsRepositoryOnePerDay(t *testing.T) {
	db := tx(t)
	ctx := context.Background()
	repo := NewTipsRepository(db)
	acc := seedAccount(t, db)

	require.NoError(t, repo.Upsert(ctx, &db_models.UserTip{AccountID: acc.ID, Day: "2025-03-13", TipsText: "old"}))
	require.NoError(t, repo.Upsert(ctx, &db_models.UserTip{AccountID: acc.ID, Day: "2025-03-14", TipsText: "first"}))
	require.NoError(t, repo.Upsert(ctx, &db_models.UserTip{AccountID: acc.ID, Day: "2025-03-14", TipsText: "second"}))

	latest, err := repo.FindLatest(ctx, acc.ID.String())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "2025-03-14", latest.Day)
	assert.Equal(t, "second", latest.TipsText)
}

func TestFoodUpdateRepository(t *testing.T) {
	db := tx(t)
	ctx := context.Background()
	repo := NewFoodUpdateRepository(db)
	acc := seedAccount(t, db)
	other := seedAccount(t, db)

	older := &db_models.FoodUpdate{AccountID: acc.ID, Description: "porridge"}
	older.CreatedAt = 1_700_000_000
	newer := &db_models.FoodUpdate{AccountID: acc.ID, Description: "salad"}
	newer.CreatedAt = 1_700_000_600
	require.NoError(t, repo.Insert(ctx, older))
	require.NoError(t, repo.Insert(ctx, newer))
	require.NoError(t, repo.Insert(ctx, &db_models.FoodUpdate{AccountID: other.ID, Description: "pizza"}))

	rows, err := repo.ListByAccount(ctx, acc.ID.String())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "salad", rows[0].Description)
	assert.Equal(t, "porridge", rows[1].Description)

	found, err := repo.FindById(ctx, older.ID.String())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, acc.ID, found.AccountID)

	missing, err := repo.FindById(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGoalRepositoryOnePerDay(t *testing.T) {
	db := tx(t)
	ctx := context.Background()
	repo := NewGoalRepository(db)
	acc := seedAccount(t, db)

	require.NoError(t, repo.Upsert(ctx, &db_models.UserGoal{AccountID: acc.ID, Day: "2025-03-14", GoalText: "first"}))
	require.NoError(t, repo.Upsert(ctx, &db_models.UserGoal{AccountID: acc.ID, Day: "2025-03-14", GoalText: "second"}))

	goal, err := repo.FindForDay(ctx, acc.ID.String(), "2025-03-14")
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, "second", goal.GoalText)

	goal, err = repo.FindForDay(ctx, acc.ID.String(), "2025-03-15")
	require.NoError(t, err)
	assert.Nil(t, goal)
}

func TestDashboardRepositoryCounts(t *testing.T) {
	db := tx(t)
	ctx := context.Background()
	repo := NewDashboardRepository(db)

	before, err := repo.CountTotalAccounts(ctx)
	require.NoError(t, err)
	withBefore, err := repo.CountAccountsWithBehaviors(ctx)
	require.NoError(t, err)

	behaviors := NewBehaviorRepository(db)
	for i := 0; i < 2; i++ {
		acc := seedAccount(t, db)
		require.NoError(t, behaviors.ReplaceForAccount(ctx, acc.ID, []db_models.UserBehavior{
			{BehaviorID: 424242, BehaviorTitle: "Grazing", FirstPriority: true, HighPriority: i == 0},
			{BehaviorID: 424243, BehaviorTitle: "Soda", FirstPriority: true},
		}))
	}

	after, err := repo.CountTotalAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+2, after)
	withAfter, err := repo.CountAccountsWithBehaviors(ctx)
	require.NoError(t, err)
	assert.Equal(t, withBefore+2, withAfter)

	rows, err := repo.TopBehaviors(ctx, 1000)
	require.NoError(t, err)
	var grazing *BehaviorCountRow
	for i := range rows {
		if rows[i].BehaviorID == 424242 {
			grazing = &rows[i]
		}
	}
	require.NotNil(t, grazing)
	assert.Equal(t, int64(2), grazing.Selected)
	assert.Equal(t, int64(1), grazing.HighPriority)
	assert.Equal(t, "Grazing", grazing.BehaviorTitle)
}

package gormstore

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domain "user-contact-service/internal/domain/user"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func setupSeededRepo(t *testing.T) (*UserRepo, *gorm.DB) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	require.NoError(t, Seed(context.Background(), db, logger))
	return NewUserRepo(db, logger), db
}

func ids(users []domain.User) []int64 {
	out := make([]int64, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func TestSeed_Idempotent(t *testing.T) {
	repo, db := setupSeededRepo(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, zaptest.NewLogger(t)))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(13), n)
}

func TestUserRepo_Get(t *testing.T) {
	repo, _ := setupSeededRepo(t)
	ctx := context.Background()

	laura, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, laura)
	assert.Equal(t, "Laura", laura.GivenNames)
	assert.Equal(t, "Bailey", laura.LastName)
	assert.Nil(t, laura.ContactDetail)

	john, err := repo.Get(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, john.ContactDetail)
	assert.Equal(t, "john.smith@example.com", john.ContactDetail.EmailAddress)
	assert.Equal(t, "0411112222", john.ContactDetail.MobileNumber)

	missing, err := repo.Get(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_Find(t *testing.T) {
	repo, _ := setupSeededRepo(t)

	tests := []struct {
		name       string
		givenNames string
		lastName   string
		expectIDs  []int64
	}{
		{name: "last name only", lastName: "Smith", expectIDs: []int64{10, 11}},
		{name: "given names only", givenNames: "Lau", expectIDs: []int64{1}},
		{name: "both filters are combined", givenNames: "Ja", lastName: "Smith", expectIDs: []int64{11}},
		{name: "substring in the middle", lastName: "ing", expectIDs: []int64{2}},
		{name: "case sensitive", lastName: "smith", expectIDs: []int64{}},
		{name: "apostrophe", lastName: "O'Brian", expectIDs: []int64{6}},
		{name: "no match", givenNames: "Zed", expectIDs: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.Find(context.Background(), tt.givenNames, tt.lastName)
			require.NoError(t, err)
			assert.Equal(t, tt.expectIDs, ids(users))
		})
	}
}

func TestUserRepo_Find_JoinsContactDetail(t *testing.T) {
	repo, _ := setupSeededRepo(t)

	users, err := repo.Find(context.Background(), "", "Smith")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "jane.smith@example.com", users[1].ContactDetail.EmailAddress)
	assert.Equal(t, "0422223333", users[1].ContactDetail.MobileNumber)
}

func TestUserRepo_ListPage(t *testing.T) {
	repo, _ := setupSeededRepo(t)
	ctx := context.Background()

	first, err := repo.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(first))

	second, err := repo.ListPage(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12, 13}, ids(second))

	beyond, err := repo.ListPage(ctx, 3, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)

	again, err := repo.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestUserRepo_Add(t *testing.T) {
	repo, _ := setupSeededRepo(t)
	ctx := context.Background()

	in := &domain.User{
		GivenNames:    "Ada",
		LastName:      "Lovelace",
		ContactDetail: &domain.ContactDetail{EmailAddress: "ada@example.com", MobileNumber: "0400000000"},
	}

	first, err := repo.Add(ctx, in)
	require.NoError(t, err)
	assert.Greater(t, first.ID, int64(13))

	second, err := repo.Add(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	stored, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ContactDetail)
	assert.Equal(t, "ada@example.com", stored.ContactDetail.EmailAddress)
	assert.Equal(t, "0400000000", stored.ContactDetail.MobileNumber)
}

func TestUserRepo_Add_Nil(t *testing.T) {
	repo, _ := setupSeededRepo(t)

	_, err := repo.Add(context.Background(), nil)
	assert.Error(t, err)
}

func TestUserRepo_Update_ReplacesContactDetail(t *testing.T) {
	repo, _ := setupSeededRepo(t)
	ctx := context.Background()

	updated, err := repo.Update(ctx, &domain.User{
		ID:            10,
		GivenNames:    "Johnny",
		LastName:      "Smith",
		ContactDetail: &domain.ContactDetail{EmailAddress: "johnny@example.com", MobileNumber: "0499999999"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Johnny", updated.GivenNames)

	stored, err := repo.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Johnny", stored.GivenNames)
	assert.Equal(t, "johnny@example.com", stored.ContactDetail.EmailAddress)
	assert.Equal(t, "0499999999", stored.ContactDetail.MobileNumber)
}

func TestUserRepo_Update_CreatesMissingContactDetail(t *testing.T) {
	repo, db := setupSeededRepo(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, &domain.User{
		ID:            1,
		GivenNames:    "Laura",
		LastName:      "Bailey",
		ContactDetail: &domain.ContactDetail{EmailAddress: "laura@example.com", MobileNumber: "0433334444"},
	})
	require.NoError(t, err)

	stored, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, stored.ContactDetail)
	assert.Equal(t, "laura@example.com", stored.ContactDetail.EmailAddress)

	var contacts int64
	require.NoError(t, db.Model(&ContactDetailSchema{}).Count(&contacts).Error)
	assert.Equal(t, int64(3), contacts)
}

func TestUserRepo_Update_Missing(t *testing.T) {
	repo, _ := setupSeededRepo(t)

	updated, err := repo.Update(context.Background(), &domain.User{ID: 9999, GivenNames: "a", LastName: "b"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUserRepo_Delete(t *testing.T) {
	repo, db := setupSeededRepo(t)
	ctx := context.Background()

	removed, err := repo.Delete(ctx, 11)
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, "Jane", removed.GivenNames)
	require.NotNil(t, removed.ContactDetail)
	assert.Equal(t, "jane.smith@example.com", removed.ContactDetail.EmailAddress)

	gone, err := repo.Get(ctx, 11)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var contacts int64
	require.NoError(t, db.Model(&ContactDetailSchema{}).Where("user_id = ?", 11).Count(&contacts).Error)
	assert.Zero(t, contacts)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	again, err := repo.Delete(ctx, 11)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestUserRepo_CancelledContext(t *testing.T) {
	repo, _ := setupSeededRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Add(ctx, &domain.User{GivenNames: "a", LastName: "b"})
	require.Error(t, err)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(13), n)
}

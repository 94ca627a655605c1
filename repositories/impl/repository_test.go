package impl_test

import (
	"BabyTracker/config"
	"BabyTracker/models"
	"BabyTracker/repositories"
	"BabyTracker/repositories/impl"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(context.Background(), db))
	return db
}

// seedFamily creates user 1 as parent of a family with one child.
func seedFamily(t *testing.T, db *gorm.DB) (*models.Family, *models.Child) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, impl.NewUserRepository(db).Create(ctx, &models.User{Email: "ana@example.com", PasswordHash: "x", FirstName: "Ana"}))

	family := &models.Family{Name: "Smiths", InviteCode: "ABCD2345"}
	owner := &models.UserFamily{UserID: 1, Role: models.RoleParent, IsPrimary: true, JoinedAt: time.Now()}
	require.NoError(t, impl.NewFamilyRepository(db).Create(ctx, family, owner))

	child := &models.Child{FamilyID: family.ID, FirstName: "Mia", BirthDate: time.Now().AddDate(0, -3, 0), Status: models.ChildStatusActive}
	require.NoError(t, impl.NewChildRepository(db).Create(ctx, child))
	return family, child
}

func TestTrackableRepository_SoftDelete(t *testing.T) {
	db := openTestDB(t)
	_, child := seedFamily(t, db)
	repo := impl.NewTrackableRepository[models.Diaper](db)
	ctx := context.Background()

	now := time.Now().UTC()
	kept := &models.Diaper{Trackable: models.Trackable{ChildID: child.ID, CreatedByUserID: 1, OccurredAt: now}, Type: models.DiaperWet}
	gone := &models.Diaper{Trackable: models.Trackable{ChildID: child.ID, CreatedByUserID: 1, OccurredAt: now.Add(-time.Hour)}, Type: models.DiaperDirty}
	require.NoError(t, repo.Create(ctx, kept))
	require.NoError(t, repo.Create(ctx, gone))

	require.NoError(t, repo.Delete(ctx, gone))

	items, err := repo.FindByChild(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ID)

	_, err = repo.FindByID(ctx, gone.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	deleted, err := repo.FindByIDUnscoped(ctx, gone.ID)
	require.NoError(t, err)
	assert.True(t, deleted.DeletedAt.Valid)

	n, err := repo.CountByChildSince(ctx, child.ID, now.Add(-2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTrackableRepository_FindByChildSinceOrdersNewestFirst(t *testing.T) {
	db := openTestDB(t)
	_, child := seedFamily(t, db)
	repo := impl.NewTrackableRepository[models.Feed](db)
	ctx := context.Background()

	now := time.Now().UTC()
	for _, ago := range []time.Duration{3 * time.Hour, time.Hour, 48 * time.Hour} {
		require.NoError(t, repo.Create(ctx, &models.Feed{
			Trackable: models.Trackable{ChildID: child.ID, CreatedByUserID: 1, OccurredAt: now.Add(-ago)},
			Method:    models.FeedMethodSolid,
		}))
	}

	items, err := repo.FindByChildSince(ctx, child.ID, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].OccurredAt.After(items[1].OccurredAt))
}

func TestFamilyRepository_ActiveMembership(t *testing.T) {
	db := openTestDB(t)
	family, _ := seedFamily(t, db)
	repo := impl.NewFamilyRepository(db)
	ctx := context.Background()

	m, err := repo.FindActiveMembership(ctx, 1, family.ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.True(t, m.IsPrimary)

	require.NoError(t, repo.MarkLeft(ctx, m, time.Now()))

	m, err = repo.FindActiveMembership(ctx, 1, family.ID)
	require.NoError(t, err)
	assert.Nil(t, m)

	row, err := repo.FindMembership(ctx, 1, family.ID)
	require.NoError(t, err)
	assert.NotNil(t, row.LeftAt)
	assert.False(t, row.IsPrimary)

	families, err := repo.FindByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, families)

	parents, err := repo.CountActiveByRole(ctx, family.ID, models.RoleParent)
	require.NoError(t, err)
	assert.Zero(t, parents)
}

func TestChildRepository_Grants(t *testing.T) {
	db := openTestDB(t)
	_, child := seedFamily(t, db)
	repo := impl.NewChildRepository(db)
	ctx := context.Background()

	grant, err := repo.FindGrant(ctx, 2, child.ID)
	require.NoError(t, err)
	assert.Nil(t, grant)

	require.NoError(t, repo.SaveGrant(ctx, &models.UserChild{UserID: 2, ChildID: child.ID, Permission: models.PermissionWrite}))
	grant, err = repo.FindGrant(ctx, 2, child.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionWrite, grant.Permission)

	require.NoError(t, repo.DeleteGrant(ctx, 2, child.ID))
	grant, err = repo.FindGrant(ctx, 2, child.ID)
	require.NoError(t, err)
	assert.Nil(t, grant)
}

func TestMilestoneRepository_SeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := impl.NewMilestoneRepository(db)
	ctx := context.Background()

	// openTestDB already seeded once.
	require.NoError(t, repo.Seed(ctx, models.DefaultMilestones))

	all, err := repo.FindAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(models.DefaultMilestones))

	motor, err := repo.FindAll(ctx, models.MilestoneMotor)
	require.NoError(t, err)
	for _, m := range motor {
		assert.Equal(t, models.MilestoneMotor, m.Category)
	}
	assert.NotEmpty(t, motor)
}

func TestEventRepository_FilterAndHardDelete(t *testing.T) {
	db := openTestDB(t)
	_, child := seedFamily(t, db)
	repo := impl.NewEventRepository(db)
	ctx := context.Background()

	note := &models.Event{ChildID: child.ID, CreatedByUserID: 1, Type: models.EventNote, OccurredAt: time.Now()}
	milestone := &models.Event{ChildID: child.ID, CreatedByUserID: 1, Type: models.EventMilestone, OccurredAt: time.Now()}
	require.NoError(t, repo.Create(ctx, note))
	require.NoError(t, repo.Create(ctx, milestone))

	notes, err := repo.FindByChild(ctx, child.ID, models.EventNote)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, note.ID, notes[0].ID)

	require.NoError(t, repo.HardDelete(ctx, milestone))
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Event{}).Where("id = ?", milestone.ID).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, repo.Delete(ctx, note))
	require.NoError(t, db.Unscoped().Model(&models.Event{}).Where("id = ?", note.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	db := openTestDB(t)
	seedFamily(t, db)
	repo := impl.NewNotificationRepository(db)
	ctx := context.Background()

	for _, msg := range []string{"a", "b"} {
		require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 1, Type: models.NotificationInfo, Message: msg}))
	}
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 2, Type: models.NotificationInfo, Message: "other"}))

	unread, err := repo.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	updated, err := repo.MarkAllRead(ctx, 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	items, err := repo.FindByUser(ctx, 1, true, 10)
	require.NoError(t, err)
	assert.Empty(t, items)

	unread, err = repo.CountUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestMilestoneRepository_UpsertOverwritesByTitle(t *testing.T) {
	db := openTestDB(t)
	repo := impl.NewMilestoneRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, []models.Milestone{
		{Category: models.MilestoneMotor, Title: "Crawls", Description: "Commando crawl counts", ExpectedAgeMonths: 8, MinAgeMonths: 6, MaxAgeMonths: 12},
		{Category: models.MilestoneSocial, Title: "Plays peekaboo", ExpectedAgeMonths: 9, MinAgeMonths: 7, MaxAgeMonths: 12},
	}))

	all, err := repo.FindAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(models.DefaultMilestones)+1)

	var crawls models.Milestone
	require.NoError(t, db.Where("title = ?", "Crawls").First(&crawls).Error)
	assert.Equal(t, "Commando crawl counts", crawls.Description)
	assert.Equal(t, 12, crawls.MaxAgeMonths)
}

package services

import (
	"BabyTracker/config"
	"BabyTracker/events"
	"BabyTracker/models"
	"BabyTracker/repositories/impl"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type eventFixture struct {
	svc     *EventService
	db      *gorm.DB
	child   *models.Child
	emitter *recordingEmitter
}

// newEventFixture runs against sqlite: user 1 is a parent and user 2 a viewer
// of one family with a four month old child.
func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, config.Migrate(context.Background(), db))

	ctx := context.Background()
	families := impl.NewFamilyRepository(db)
	family := &models.Family{Name: "Smiths", InviteCode: "ABCD2345"}
	require.NoError(t, families.Create(ctx, family, &models.UserFamily{UserID: 1, Role: models.RoleParent, JoinedAt: testNow}))
	require.NoError(t, families.SaveMembership(ctx, &models.UserFamily{UserID: 2, FamilyID: family.ID, Role: models.RoleViewer, JoinedAt: testNow}))

	children := impl.NewChildRepository(db)
	child := &models.Child{FamilyID: family.ID, FirstName: "Mia", BirthDate: testNow.AddDate(0, 0, -125), Status: models.ChildStatusActive}
	require.NoError(t, children.Create(ctx, child))

	f := &eventFixture{db: db, child: child, emitter: &recordingEmitter{}}
	f.svc = NewEventService(impl.NewEventRepository(db), impl.NewMilestoneRepository(db), NewAccessService(families, children), f.emitter)
	f.svc.now = fixedClock
	return f
}

func (f *eventFixture) milestone(t *testing.T, title string) *models.Milestone {
	t.Helper()
	var m models.Milestone
	require.NoError(t, f.db.Where("title = ?", title).First(&m).Error)
	return &m
}

func TestCreateEvent_DefaultsOccurredAt(t *testing.T) {
	f := newEventFixture(t)

	event, err := f.svc.CreateEvent(context.Background(), 1, models.CreateEventRequest{
		ChildID: f.child.ID,
		Type:    models.EventMedication,
		Title:   "Vitamin D",
	})

	require.NoError(t, err)
	assert.True(t, testNow.Equal(event.OccurredAt))
	assert.Equal(t, []string{events.EventCreated}, f.emitter.names())
	assert.Equal(t, f.child.FamilyID, f.emitter.last().payload.(events.EventPayload).FamilyID)
}

func TestCreateEvent_ViewerDenied(t *testing.T) {
	f := newEventFixture(t)

	_, err := f.svc.CreateEvent(context.Background(), 2, models.CreateEventRequest{ChildID: f.child.ID, Type: models.EventNote})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, f.emitter.names())
}

func TestAchieveMilestone_RejectsDuplicate(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	rolls := f.milestone(t, "Rolls over")

	event, err := f.svc.AchieveMilestone(ctx, 1, f.child.ID, models.AchieveMilestoneRequest{MilestoneID: rolls.ID, Notes: "on the play mat"})
	require.NoError(t, err)
	assert.Equal(t, models.EventMilestone, event.Type)
	assert.Equal(t, "Rolls over", event.Title)
	assert.Equal(t, []string{events.EventMilestoneCreated}, f.emitter.names())

	_, err = f.svc.AchieveMilestone(ctx, 1, f.child.ID, models.AchieveMilestoneRequest{MilestoneID: rolls.ID})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.EqualError(t, err, "Milestone already achieved")

	achieved, err := f.svc.AchievedMilestones(ctx, 2, f.child.ID)
	require.NoError(t, err)
	require.Len(t, achieved, 1)
	assert.Equal(t, "on the play mat", achieved[0].Notes)
	require.NotNil(t, achieved[0].Milestone)
	assert.Equal(t, rolls.ID, achieved[0].Milestone.ID)
}

func TestAchieveMilestone_UnknownMilestone(t *testing.T) {
	f := newEventFixture(t)

	_, err := f.svc.AchieveMilestone(context.Background(), 1, f.child.ID, models.AchieveMilestoneRequest{MilestoneID: 9999})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveMilestone_AllowsReAchieving(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	rolls := f.milestone(t, "Rolls over")

	event, err := f.svc.AchieveMilestone(ctx, 1, f.child.ID, models.AchieveMilestoneRequest{MilestoneID: rolls.ID})
	require.NoError(t, err)
	require.NoError(t, f.svc.RemoveMilestone(ctx, 1, event.ID))
	assert.Equal(t, events.EventMilestoneDeleted, f.emitter.last().name)

	_, err = f.svc.AchieveMilestone(ctx, 1, f.child.ID, models.AchieveMilestoneRequest{MilestoneID: rolls.ID})
	assert.NoError(t, err)
}

func TestRemoveMilestone_RejectsOrdinaryEvent(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	note, err := f.svc.CreateEvent(ctx, 1, models.CreateEventRequest{ChildID: f.child.ID, Type: models.EventNote})
	require.NoError(t, err)

	err = f.svc.RemoveMilestone(ctx, 1, note.ID)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEvent_SoftDeletes(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	note, err := f.svc.CreateEvent(ctx, 1, models.CreateEventRequest{ChildID: f.child.ID, Type: models.EventNote})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteEvent(ctx, 1, note.ID))

	_, err = f.svc.GetEvent(ctx, 1, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	var count int64
	require.NoError(t, f.db.Unscoped().Model(&models.Event{}).Where("id = ?", note.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSuggestedMilestones_MatchChildAge(t *testing.T) {
	f := newEventFixture(t)

	suggested, err := f.svc.SuggestedMilestones(context.Background(), 1, f.child.ID)

	require.NoError(t, err)
	require.NotEmpty(t, suggested)
	for _, m := range suggested {
		assert.True(t, m.FitsAge(4), m.Title)
	}
}

func TestUpdateEvent_PartialPatch(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	occurred := testNow.Add(-2 * time.Hour)
	event, err := f.svc.CreateEvent(ctx, 1, models.CreateEventRequest{
		ChildID: f.child.ID, Type: models.EventAppointment, Title: "Checkup", OccurredAt: &occurred,
	})
	require.NoError(t, err)

	title := "6 month checkup"
	updated, err := f.svc.UpdateEvent(ctx, 1, event.ID, models.UpdateEventRequest{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.True(t, occurred.Equal(updated.OccurredAt))
}

func TestUpdateEvent_MilestoneDataIsFixed(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	rolls := f.milestone(t, "Rolls over")
	event, err := f.svc.AchieveMilestone(ctx, 1, f.child.ID, models.AchieveMilestoneRequest{MilestoneID: rolls.ID})
	require.NoError(t, err)

	_, err = f.svc.UpdateEvent(ctx, 1, event.ID, models.UpdateEventRequest{Data: datatypes.JSON(`{"milestoneId":0}`)})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.EqualError(t, err, "Milestone data cannot be changed")

	when := testNow.Add(-time.Hour)
	_, err = f.svc.UpdateEvent(ctx, 1, event.ID, models.UpdateEventRequest{OccurredAt: &when})
	require.NoError(t, err)

	achieved, err := f.svc.AchievedMilestones(ctx, 1, f.child.ID)
	require.NoError(t, err)
	require.Len(t, achieved, 1)
	require.NotNil(t, achieved[0].Milestone)
	assert.Equal(t, rolls.ID, achieved[0].Milestone.ID)

	_, err = f.svc.AchieveMilestone(ctx, 1, f.child.ID, models.AchieveMilestoneRequest{MilestoneID: rolls.ID})
	assert.EqualError(t, err, "Milestone already achieved")
}

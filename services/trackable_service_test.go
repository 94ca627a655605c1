package services

import (
	"BabyTracker/events"
	"BabyTracker/models"
	"BabyTracker/repositories"
	"BabyTracker/repositories/mocks"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type feedFixture struct {
	svc      *FeedService
	repo     *mocks.TrackableRepository[models.Feed]
	families *mocks.FamilyRepository
	children *mocks.ChildRepository
	emitter  *recordingEmitter
}

// newFeedFixture makes user 10 a member of family 1 with role; child 3
// belongs to family 1.
func newFeedFixture(role string) *feedFixture {
	f := &feedFixture{
		repo:     new(mocks.TrackableRepository[models.Feed]),
		families: new(mocks.FamilyRepository),
		children: new(mocks.ChildRepository),
		emitter:  &recordingEmitter{},
	}
	f.children.On("FindByID", mock.Anything, uint(3)).Return(&models.Child{ID: 3, FamilyID: 1}, nil).Maybe()
	f.children.On("FindGrant", mock.Anything, uint(10), uint(3)).Return(nil, nil).Maybe()
	f.families.On("FindActiveMembership", mock.Anything, uint(10), uint(1)).
		Return(&models.UserFamily{UserID: 10, FamilyID: 1, Role: role}, nil).Maybe()

	f.svc = NewFeedService(f.repo, NewAccessService(f.families, f.children), f.emitter)
	f.svc.now = fixedClock
	return f
}

func storedFeed() *models.Feed {
	amount := 120.0
	return &models.Feed{
		Trackable: models.Trackable{ID: 5, ChildID: 3, CreatedByUserID: 10, OccurredAt: testNow.Add(-time.Hour), Notes: "morning"},
		Method:    models.FeedMethodBottle,
		AmountML:  &amount,
	}
}

func TestTrackableCreate_PersistsAndEmitsOnce(t *testing.T) {
	f := newFeedFixture(models.RoleCaregiver)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Feed")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Feed).ID = 5 }).
		Return(nil)

	amount := 90.0
	feed, err := f.svc.Create(context.Background(), 10, &models.CreateFeedRequest{
		TrackableInput: models.TrackableInput{ChildID: 3, Notes: "night"},
		Method:         models.FeedMethodBottle,
		AmountML:       &amount,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(10), feed.CreatedByUserID)
	assert.Equal(t, testNow, feed.OccurredAt)
	assert.Equal(t, "night", feed.Notes)
	assert.Equal(t, 90.0, *feed.AmountML)

	require.Equal(t, []string{events.TrackableCreated}, f.emitter.names())
	payload := f.emitter.last().payload.(events.TrackablePayload)
	assert.Equal(t, models.KindFeed, payload.Kind)
	assert.Equal(t, uint(1), payload.FamilyID)
	assert.Equal(t, uint(10), payload.UserID)
	assert.Same(t, feed, payload.Trackable)
}

func TestTrackableCreate_NoEventWhenPersistFails(t *testing.T) {
	f := newFeedFixture(models.RoleParent)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := f.svc.Create(context.Background(), 10, &models.CreateFeedRequest{
		TrackableInput: models.TrackableInput{ChildID: 3},
		Method:         models.FeedMethodSolid,
	})

	assert.EqualError(t, err, "db down")
	assert.Empty(t, f.emitter.names())
}

func TestTrackableCreate_ViewerIsDenied(t *testing.T) {
	f := newFeedFixture(models.RoleViewer)

	_, err := f.svc.Create(context.Background(), 10, &models.CreateFeedRequest{
		TrackableInput: models.TrackableInput{ChildID: 3},
		Method:         models.FeedMethodBottle,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.emitter.names())
}

func TestTrackableCreate_RejectsSideOnBottleFeed(t *testing.T) {
	f := newFeedFixture(models.RoleParent)

	_, err := f.svc.Create(context.Background(), 10, &models.CreateFeedRequest{
		TrackableInput: models.TrackableInput{ChildID: 3},
		Method:         models.FeedMethodBottle,
		Side:           "left",
	})

	assert.ErrorIs(t, err, ErrBadRequest)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTrackableFindOne_RoundTrip(t *testing.T) {
	f := newFeedFixture(models.RoleViewer)
	f.repo.On("FindByID", mock.Anything, uint(5)).Return(storedFeed(), nil)

	feed, err := f.svc.FindOne(context.Background(), 10, 5)

	require.NoError(t, err)
	assert.Equal(t, models.FeedMethodBottle, feed.Method)
	assert.Equal(t, 120.0, *feed.AmountML)
	assert.Equal(t, "morning", feed.Notes)
}

func TestTrackableFindOne_NotFound(t *testing.T) {
	f := newFeedFixture(models.RoleParent)
	f.repo.On("FindByID", mock.Anything, uint(6)).Return(nil, repositories.ErrNotFound)

	_, err := f.svc.FindOne(context.Background(), 10, 6)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Feed not found")
}

func TestTrackableUpdate_LeavesOmittedFieldsUntouched(t *testing.T) {
	f := newFeedFixture(models.RoleParent)
	stored := storedFeed()
	occurred := stored.OccurredAt
	f.repo.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)
	f.repo.On("Save", mock.Anything, stored).Return(nil)

	notes := "spat up a little"
	updated, err := f.svc.Update(context.Background(), 10, 5, &models.UpdateFeedRequest{
		TrackablePatch: models.TrackablePatch{Notes: &notes},
	})

	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, 120.0, *updated.AmountML)
	assert.Equal(t, models.FeedMethodBottle, updated.Method)
	assert.Equal(t, occurred, updated.OccurredAt)
	assert.Equal(t, []string{events.TrackableUpdated}, f.emitter.names())
}

func TestTrackableRemove_EmitsDeletedPayload(t *testing.T) {
	f := newFeedFixture(models.RoleCaregiver)
	stored := storedFeed()
	f.repo.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)
	f.repo.On("Delete", mock.Anything, stored).Return(nil)

	require.NoError(t, f.svc.Remove(context.Background(), 10, 5))

	payload := f.emitter.last().payload.(events.TrackableDeletedPayload)
	assert.Equal(t, events.TrackableDeletedPayload{
		Kind:        models.KindFeed,
		TrackableID: 5,
		ChildID:     3,
		UserID:      10,
		FamilyID:    1,
	}, payload)
}

func TestTrackableRemove_FailedDeleteDoesNotEmit(t *testing.T) {
	f := newFeedFixture(models.RoleCaregiver)
	stored := storedFeed()
	f.repo.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)
	f.repo.On("Delete", mock.Anything, stored).Return(errors.New("locked"))

	assert.Error(t, f.svc.Remove(context.Background(), 10, 5))
	assert.Empty(t, f.emitter.names())
}

func TestFeedStatistics_SingleFeed(t *testing.T) {
	f := newFeedFixture(models.RoleViewer)
	f.repo.On("FindByChildSince", mock.Anything, uint(3), testNow.Add(-week)).
		Return([]models.Feed{*storedFeed()}, nil)

	stats, err := f.svc.GetStatistics(context.Background(), 10, 3)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Last24Hours.Count)
	assert.Equal(t, 120.0, stats.Last24Hours.TotalVolume)
	assert.Equal(t, 120.0, stats.Last24Hours.AverageVolume)
	assert.Equal(t, 1, stats.Last7Days.Count)
	assert.Equal(t, 1, stats.Last24Hours.ByMethod[models.FeedMethodBottle])
	require.NotNil(t, stats.LastFeedAt)
	assert.Equal(t, testNow.Add(-time.Hour), *stats.LastFeedAt)
}

package services

import (
	"BabyTracker/events"
	"BabyTracker/models"
	"BabyTracker/repositories/mocks"
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	kind  string
	count int64
	since time.Time
}

func (c *fakeCounter) Kind() string { return c.kind }

func (c *fakeCounter) CountSince(_ context.Context, _ uint, since time.Time) (int64, error) {
	c.since = since
	return c.count, nil
}

func newChildFixture(role string, counters ...TrackableCounter) (*ChildService, *mocks.ChildRepository, *recordingEmitter) {
	families := new(mocks.FamilyRepository)
	children := new(mocks.ChildRepository)
	families.On("FamilyExists", mock.Anything, uint(1)).Return(true, nil).Maybe()
	families.On("FindActiveMembership", mock.Anything, uint(10), uint(1)).
		Return(&models.UserFamily{UserID: 10, FamilyID: 1, Role: role}, nil).Maybe()

	emitter := &recordingEmitter{}
	svc := NewChildService(children, NewAccessService(families, children), nil, emitter, counters...)
	svc.now = fixedClock
	return svc, children, emitter
}

func TestCreateChild(t *testing.T) {
	svc, children, emitter := newChildFixture(models.RoleParent)
	children.On("Create", mock.Anything, mock.AnythingOfType("*models.Child")).Return(nil)

	child, err := svc.CreateChild(context.Background(), 10, 1, models.CreateChildRequest{
		FirstName: "Mia",
		BirthDate: &models.DateOnly{Time: testNow.AddDate(0, -2, 0)},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), child.FamilyID)
	assert.Equal(t, models.ChildStatusActive, child.Status)
	assert.Equal(t, []string{events.ChildCreated}, emitter.names())
}

func TestCreateChild_Rules(t *testing.T) {
	t.Run("caregiver cannot add children", func(t *testing.T) {
		svc, children, _ := newChildFixture(models.RoleCaregiver)

		_, err := svc.CreateChild(context.Background(), 10, 1, models.CreateChildRequest{
			FirstName: "Mia", BirthDate: &models.DateOnly{Time: testNow.AddDate(0, -2, 0)},
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
		children.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("birth date in the future", func(t *testing.T) {
		svc, _, _ := newChildFixture(models.RoleParent)

		_, err := svc.CreateChild(context.Background(), 10, 1, models.CreateChildRequest{
			FirstName: "Mia", BirthDate: &models.DateOnly{Time: testNow.Add(48 * time.Hour)},
		})

		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("birth date missing or empty", func(t *testing.T) {
		svc, children, _ := newChildFixture(models.RoleParent)

		for _, date := range []*models.DateOnly{nil, {}} {
			_, err := svc.CreateChild(context.Background(), 10, 1, models.CreateChildRequest{FirstName: "Mia", BirthDate: date})
			assert.ErrorIs(t, err, ErrBadRequest)
			assert.EqualError(t, err, "birthDate is required")
		}
		children.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCreateChildRequest_BirthDateIsRequired(t *testing.T) {
	var req models.CreateChildRequest
	require.NoError(t, json.Unmarshal([]byte(`{"firstName":"Mia"}`), &req))
	assert.Error(t, binding.Validator.ValidateStruct(&req))

	require.NoError(t, json.Unmarshal([]byte(`{"firstName":"Mia","birthDate":"2024-05-01"}`), &req))
	assert.NoError(t, binding.Validator.ValidateStruct(&req))
	assert.Equal(t, 2024, req.BirthDate.Year())
}

func TestUpdateChild_LegacyIsActiveFlag(t *testing.T) {
	svc, children, _ := newChildFixture(models.RoleCaregiver)
	stored := &models.Child{ID: 3, FamilyID: 1, FirstName: "Mia", BirthDate: testNow.AddDate(-1, 0, 0), Status: models.ChildStatusActive}
	children.On("FindByID", mock.Anything, uint(3)).Return(stored, nil)
	children.On("Save", mock.Anything, stored).Return(nil)

	inactive := false
	child, err := svc.UpdateChild(context.Background(), 10, 3, models.UpdateChildRequest{IsActive: &inactive})

	require.NoError(t, err)
	assert.Equal(t, models.ChildStatusInactive, child.Status)
	assert.False(t, child.IsActive())
}

func TestGrantPermission_RequiresFamilyMember(t *testing.T) {
	svc, children, _ := newChildFixture(models.RoleParent)
	children.On("FindByID", mock.Anything, uint(3)).Return(&models.Child{ID: 3, FamilyID: 1}, nil)
	svc.Access.Memberships.(*mocks.FamilyRepository).
		On("FindActiveMembership", mock.Anything, uint(20), uint(1)).Return(nil, nil)

	_, err := svc.GrantPermission(context.Background(), 10, 3, models.GrantPermissionRequest{UserID: 20, Permission: models.PermissionWrite})

	assert.ErrorIs(t, err, ErrBadRequest)
	children.AssertNotCalled(t, "SaveGrant", mock.Anything, mock.Anything)
}

func TestChildStatistics_CountsTodayPerKind(t *testing.T) {
	feeds := &fakeCounter{kind: models.KindFeed, count: 4}
	diapers := &fakeCounter{kind: models.KindDiaper, count: 6}
	svc, children, _ := newChildFixture(models.RoleViewer, feeds, diapers)
	children.On("FindByID", mock.Anything, uint(3)).
		Return(&models.Child{ID: 3, FamilyID: 1, BirthDate: testNow.AddDate(0, 0, -400)}, nil)

	stats, err := svc.GetStatistics(context.Background(), 10, 3)

	require.NoError(t, err)
	assert.Equal(t, 400, stats.AgeInDays)
	assert.Equal(t, 13, stats.AgeInMonths)
	assert.Equal(t, "1 year 1 month", stats.AgeDisplay)
	assert.Equal(t, map[string]int{models.KindFeed: 4, models.KindDiaper: 6}, stats.Today)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), feeds.since)
}

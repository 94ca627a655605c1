package services

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"BabyTracker/repositories/mocks"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAccessFixture() (*AccessService, *mocks.FamilyRepository, *mocks.ChildRepository) {
	families := new(mocks.FamilyRepository)
	children := new(mocks.ChildRepository)
	children.On("FindByID", mock.Anything, uint(3)).Return(&models.Child{ID: 3, FamilyID: 1}, nil).Maybe()
	children.On("FindByID", mock.Anything, uint(99)).Return(nil, repositories.ErrNotFound).Maybe()
	families.On("FamilyExists", mock.Anything, uint(1)).Return(true, nil).Maybe()
	families.On("FamilyExists", mock.Anything, uint(2)).Return(false, nil).Maybe()
	return NewAccessService(families, children), families, children
}

func TestAccess_FormerMemberIsDeniedEverywhere(t *testing.T) {
	access, families, _ := newAccessFixture()
	// A member who left has no active row.
	families.On("FindActiveMembership", mock.Anything, uint(10), uint(1)).Return(nil, nil)
	ctx := context.Background()

	_, err := access.RequireFamilyMember(ctx, 10, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = access.ResolveChildAccess(ctx, 10, 3)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = access.RequireChildWrite(ctx, 10, 3)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = access.RequireChildManager(ctx, 10, 3)
	assert.ErrorIs(t, err, ErrAccessDenied)

	role, err := access.ResolveFamilyRole(ctx, 10, 1)
	require.NoError(t, err)
	assert.Nil(t, role)
}

func TestAccess_MissingTargets(t *testing.T) {
	access, _, _ := newAccessFixture()

	_, err := access.RequireFamilyMember(context.Background(), 10, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = access.ResolveChildAccess(context.Background(), 10, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccess_RoleRestrictions(t *testing.T) {
	access, families, _ := newAccessFixture()
	families.On("FindActiveMembership", mock.Anything, uint(10), uint(1)).
		Return(&models.UserFamily{UserID: 10, FamilyID: 1, Role: models.RoleCaregiver}, nil)

	_, err := access.RequireFamilyMember(context.Background(), 10, 1, models.ManagerRoles...)
	assert.ErrorIs(t, err, ErrAccessDenied)

	m, err := access.RequireFamilyMember(context.Background(), 10, 1, models.WriterRoles...)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCaregiver, m.Role)

	child, err := access.RequireChildWrite(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), child.ID)

	_, err = access.RequireChildManager(context.Background(), 10, 3)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAccess_ViewerWriteNeedsGrant(t *testing.T) {
	tests := []struct {
		name    string
		grant   *models.UserChild
		wantErr error
	}{
		{name: "no grant", grant: nil, wantErr: ErrAccessDenied},
		{name: "read grant", grant: &models.UserChild{Permission: models.PermissionRead}, wantErr: ErrAccessDenied},
		{name: "write grant", grant: &models.UserChild{Permission: models.PermissionWrite}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, families, children := newAccessFixture()
			families.On("FindActiveMembership", mock.Anything, uint(10), uint(1)).
				Return(&models.UserFamily{UserID: 10, FamilyID: 1, Role: models.RoleViewer}, nil)
			children.On("FindGrant", mock.Anything, uint(10), uint(3)).Return(tt.grant, nil)

			_, err := access.RequireChildWrite(context.Background(), 10, 3)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

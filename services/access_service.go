package services

import (
	"BabyTracker/interfaces"
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
	"errors"
)

// AccessService answers "may this user touch this family or child". Nothing is
// cached; every call reads the current membership.
type AccessService struct {
	Memberships interfaces.MembershipLookup
	ChildRepo   repositories.ChildRepository
}

func NewAccessService(memberships interfaces.MembershipLookup, childRepo repositories.ChildRepository) *AccessService {
	return &AccessService{Memberships: memberships, ChildRepo: childRepo}
}

// ResolveFamilyRole returns the active membership, or nil when there is none.
func (s *AccessService) ResolveFamilyRole(ctx context.Context, userID, familyID uint) (*models.UserFamily, error) {
	return s.Memberships.FindActiveMembership(ctx, userID, familyID)
}

// RequireFamilyMember fails with NotFound for an unknown family and
// AccessDenied when the user is not an active member holding one of roles.
func (s *AccessService) RequireFamilyMember(ctx context.Context, userID, familyID uint, roles ...string) (*models.UserFamily, error) {
	exists, err := s.Memberships.FamilyExists(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NotFound("Family not found")
	}
	membership, err := s.ResolveFamilyRole(ctx, userID, familyID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, AccessDenied("You are not a member of this family")
	}
	if len(roles) > 0 && !membership.HasRole(roles...) {
		return nil, AccessDenied("Your role does not allow this action")
	}
	return membership, nil
}

// ResolveChildAccess loads the child and checks the user is an active member
// of the child's family.
func (s *AccessService) ResolveChildAccess(ctx context.Context, userID, childID uint) (*models.Child, error) {
	child, _, err := s.childAccess(ctx, userID, childID)
	return child, err
}

// RequireChildWrite allows writer roles, or any member holding a direct
// write grant on the child.
func (s *AccessService) RequireChildWrite(ctx context.Context, userID, childID uint) (*models.Child, error) {
	child, membership, err := s.childAccess(ctx, userID, childID)
	if err != nil {
		return nil, err
	}
	if membership.HasRole(models.WriterRoles...) {
		return child, nil
	}
	grant, err := s.ChildRepo.FindGrant(ctx, userID, childID)
	if err != nil {
		return nil, err
	}
	if grant != nil && grant.Permission == models.PermissionWrite {
		return child, nil
	}
	return nil, AccessDenied("You do not have write access to this child")
}

// RequireChildManager allows admins and parents of the child's family.
func (s *AccessService) RequireChildManager(ctx context.Context, userID, childID uint) (*models.Child, error) {
	child, membership, err := s.childAccess(ctx, userID, childID)
	if err != nil {
		return nil, err
	}
	if !membership.HasRole(models.ManagerRoles...) {
		return nil, AccessDenied("Only parents and admins can manage this child")
	}
	return child, nil
}

func (s *AccessService) childAccess(ctx context.Context, userID, childID uint) (*models.Child, *models.UserFamily, error) {
	child, err := s.ChildRepo.FindByID(ctx, childID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, NotFound("Child not found")
	}
	if err != nil {
		return nil, nil, err
	}
	membership, err := s.ResolveFamilyRole(ctx, userID, child.FamilyID)
	if err != nil {
		return nil, nil, err
	}
	if membership == nil {
		return nil, nil, AccessDenied("You do not have access to this child")
	}
	return child, membership, nil
}

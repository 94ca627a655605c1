package services

import (
	"BabyTracker/events"
	"BabyTracker/interfaces"
	"BabyTracker/models"
	"BabyTracker/repositories"
	"BabyTracker/utils"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	inviteCodeLength   = 8
	inviteCodeAttempts = 10
)

type FamilyService struct {
	FamilyRepo     repositories.FamilyRepository
	UserRepo       repositories.UserRepository
	InvitationRepo repositories.InvitationRepository
	Access         *AccessService
	Notifier       interfaces.Notifier
	Mailer         interfaces.InvitationMailer
	Emitter        Emitter

	logger *slog.Logger
	now    func() time.Time
}

func NewFamilyService(
	familyRepo repositories.FamilyRepository,
	userRepo repositories.UserRepository,
	invitationRepo repositories.InvitationRepository,
	access *AccessService,
	notifier interfaces.Notifier,
	mailer interfaces.InvitationMailer,
	emitter Emitter,
	logger *slog.Logger,
) *FamilyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FamilyService{
		FamilyRepo:     familyRepo,
		UserRepo:       userRepo,
		InvitationRepo: invitationRepo,
		Access:         access,
		Notifier:       notifier,
		Mailer:         mailer,
		Emitter:        emitter,
		logger:         logger,
		now:            time.Now,
	}
}

// CreateFamily makes the caller a parent. The family becomes primary when the
// caller has no other active membership.
func (s *FamilyService) CreateFamily(ctx context.Context, userID uint, req models.CreateFamilyRequest) (*models.Family, error) {
	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.FamilyRepo.ActiveMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}

	family := &models.Family{Name: req.Name, InviteCode: code, Settings: req.Settings}
	owner := &models.UserFamily{
		UserID:    userID,
		Role:      models.RoleParent,
		IsPrimary: len(existing) == 0,
		JoinedAt:  s.now(),
	}
	if err := s.FamilyRepo.Create(ctx, family, owner); err != nil {
		return nil, err
	}
	family.Members = []models.UserFamily{*owner}
	return family, nil
}

func (s *FamilyService) ListFamilies(ctx context.Context, userID uint) ([]models.Family, error) {
	return s.FamilyRepo.FindByUser(ctx, userID)
}

// GetFamily returns the family with its active members.
func (s *FamilyService) GetFamily(ctx context.Context, userID, familyID uint) (*models.Family, error) {
	if _, err := s.Access.RequireFamilyMember(ctx, userID, familyID); err != nil {
		return nil, err
	}
	family, err := s.findFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	members, err := s.FamilyRepo.ActiveMembers(ctx, familyID)
	if err != nil {
		return nil, err
	}
	family.Members = members
	return family, nil
}

func (s *FamilyService) UpdateFamily(ctx context.Context, userID, familyID uint, req models.UpdateFamilyRequest) (*models.Family, error) {
	if _, err := s.Access.RequireFamilyMember(ctx, userID, familyID, models.ManagerRoles...); err != nil {
		return nil, err
	}
	family, err := s.findFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		family.Name = *req.Name
	}
	if req.Settings != nil {
		family.Settings = req.Settings
	}
	if err := s.FamilyRepo.Save(ctx, family); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.FamilyUpdated, events.FamilyPayload{Family: family, UserID: userID})
	return family, nil
}

func (s *FamilyService) RegenerateInviteCode(ctx context.Context, userID, familyID uint) (*models.Family, error) {
	if _, err := s.Access.RequireFamilyMember(ctx, userID, familyID, models.ManagerRoles...); err != nil {
		return nil, err
	}
	family, err := s.findFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return nil, err
	}
	family.InviteCode = code
	if err := s.FamilyRepo.Save(ctx, family); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.FamilyUpdated, events.FamilyPayload{Family: family, UserID: userID})
	return family, nil
}

// InviteMember records an invitation and queues the email. When the invitee
// already has an account they also get an in-app notification.
func (s *FamilyService) InviteMember(ctx context.Context, userID, familyID uint, req models.InviteMemberRequest) (*models.Invitation, error) {
	if _, err := s.Access.RequireFamilyMember(ctx, userID, familyID, models.ManagerRoles...); err != nil {
		return nil, err
	}
	family, err := s.findFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := req.Role
	if role == "" {
		role = models.RoleCaregiver
	}
	if !models.IsValidRole(role) {
		return nil, BadRequest("Invalid role " + role)
	}
	now := s.now()

	invitee, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if invitee != nil {
		member, err := s.FamilyRepo.FindActiveMembership(ctx, invitee.ID, familyID)
		if err != nil {
			return nil, err
		}
		if member != nil {
			return nil, BadRequest("User is already a member of this family")
		}
	}

	pending, err := s.InvitationRepo.FindPending(ctx, familyID, email, now)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, BadRequest("Invitation already sent")
	}

	token, err := utils.RandomHex(32)
	if err != nil {
		return nil, err
	}
	invitation := &models.Invitation{
		FamilyID:        familyID,
		Email:           email,
		Role:            role,
		Token:           token,
		InvitedByUserID: userID,
		ExpiresAt:       now.Add(models.InvitationTTL),
	}
	if err := s.InvitationRepo.Create(ctx, invitation); err != nil {
		return nil, err
	}
	invitation.Family = family

	if err := s.Mailer.SendInvitation(ctx, invitation.ID); err != nil {
		s.logger.Error("queue invitation email failed", "invitation_id", invitation.ID, "error", err)
	}
	if invitee != nil {
		note := &models.Notification{
			UserID:  invitee.ID,
			Type:    models.NotificationInvitation,
			Title:   "Family invitation",
			Message: fmt.Sprintf("You have been invited to join %s as %s.", family.Name, role),
		}
		if err := s.Notifier.Create(ctx, note); err != nil {
			s.logger.Error("invitation notification failed", "invitation_id", invitation.ID, "error", err)
		}
	}
	return invitation, nil
}

// AcceptInvitation joins the caller with the invited role. The invitation must
// be addressed to the caller's email.
func (s *FamilyService) AcceptInvitation(ctx context.Context, userID uint, token string) (*models.UserFamily, error) {
	invitation, err := s.InvitationRepo.FindByToken(ctx, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("Invitation not found")
	}
	if err != nil {
		return nil, err
	}
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	switch {
	case !strings.EqualFold(user.Email, invitation.Email):
		return nil, AccessDenied("This invitation was sent to a different email")
	case invitation.Accepted:
		return nil, BadRequest("Invitation already accepted")
	case !invitation.IsPending(now):
		return nil, BadRequest("Invitation has expired")
	}

	membership, err := s.join(ctx, userID, invitation.FamilyID, invitation.Role)
	if err != nil {
		return nil, err
	}
	invitation.Accept(now)
	if err := s.InvitationRepo.Save(ctx, invitation); err != nil {
		return nil, err
	}
	return membership, nil
}

// JoinByCode joins the family owning code as a caregiver.
func (s *FamilyService) JoinByCode(ctx context.Context, userID uint, code string) (*models.UserFamily, error) {
	family, err := s.FamilyRepo.FindByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("Invalid invite code")
	}
	if err != nil {
		return nil, err
	}
	return s.join(ctx, userID, family.ID, models.RoleCaregiver)
}

// join creates the membership or re-activates a row left earlier.
func (s *FamilyService) join(ctx context.Context, userID, familyID uint, role string) (*models.UserFamily, error) {
	membership, err := s.FamilyRepo.FindMembership(ctx, userID, familyID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		membership = &models.UserFamily{UserID: userID, FamilyID: familyID}
	case err != nil:
		return nil, err
	case membership.IsActive():
		return nil, BadRequest("You are already a member of this family")
	}

	others, err := s.FamilyRepo.ActiveMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	membership.Role = role
	membership.JoinedAt = s.now()
	membership.LeftAt = nil
	membership.IsPrimary = len(others) == 0
	if err := s.FamilyRepo.SaveMembership(ctx, membership); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.FamilyMemberJoined, events.MemberPayload{FamilyID: familyID, Membership: membership, UserID: userID})
	return membership, nil
}

func (s *FamilyService) UpdateMemberRole(ctx context.Context, userID, familyID, memberUserID uint, req models.UpdateMemberRequest) (*models.UserFamily, error) {
	if !models.IsValidRole(req.Role) {
		return nil, BadRequest("Invalid role " + req.Role)
	}
	if _, err := s.Access.RequireFamilyMember(ctx, userID, familyID, models.ManagerRoles...); err != nil {
		return nil, err
	}
	member, err := s.activeMember(ctx, memberUserID, familyID)
	if err != nil {
		return nil, err
	}

	if member.Role == models.RoleParent && req.Role != models.RoleParent {
		if err := s.ensureAnotherParent(ctx, familyID, "Cannot demote the last parent of the family"); err != nil {
			return nil, err
		}
	}
	member.Role = req.Role
	if err := s.FamilyRepo.SaveMembership(ctx, member); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.FamilyMemberUpdated, events.MemberPayload{FamilyID: familyID, Membership: member, UserID: userID})
	return member, nil
}

func (s *FamilyService) RemoveMember(ctx context.Context, userID, familyID, memberUserID uint) error {
	if _, err := s.Access.RequireFamilyMember(ctx, userID, familyID, models.ManagerRoles...); err != nil {
		return err
	}
	member, err := s.activeMember(ctx, memberUserID, familyID)
	if err != nil {
		return err
	}
	if member.Role == models.RoleParent {
		if err := s.ensureAnotherParent(ctx, familyID, "Cannot remove the last parent of the family"); err != nil {
			return err
		}
	}
	if err := s.FamilyRepo.MarkLeft(ctx, member, s.now()); err != nil {
		return err
	}

	s.Emitter.Emit(events.FamilyMemberRemoved, events.MemberPayload{FamilyID: familyID, Membership: member, UserID: userID})
	return nil
}

func (s *FamilyService) LeaveFamily(ctx context.Context, userID, familyID uint) error {
	member, err := s.Access.RequireFamilyMember(ctx, userID, familyID)
	if err != nil {
		return err
	}
	if member.Role == models.RoleParent {
		if err := s.ensureAnotherParent(ctx, familyID, "The only parent cannot leave the family"); err != nil {
			return err
		}
	}
	if err := s.FamilyRepo.MarkLeft(ctx, member, s.now()); err != nil {
		return err
	}

	s.Emitter.Emit(events.FamilyMemberLeft, events.MemberPayload{FamilyID: familyID, Membership: member, UserID: userID})
	return nil
}

func (s *FamilyService) SetPrimaryFamily(ctx context.Context, userID, familyID uint) (*models.UserFamily, error) {
	member, err := s.Access.RequireFamilyMember(ctx, userID, familyID)
	if err != nil {
		return nil, err
	}
	if member.IsPrimary {
		return member, nil
	}
	if err := s.FamilyRepo.ClearPrimary(ctx, userID); err != nil {
		return nil, err
	}
	member.IsPrimary = true
	if err := s.FamilyRepo.SaveMembership(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// ensureAnotherParent fails unless the family keeps an active parent after
// the current one stops being one.
func (s *FamilyService) ensureAnotherParent(ctx context.Context, familyID uint, msg string) error {
	parents, err := s.FamilyRepo.CountActiveByRole(ctx, familyID, models.RoleParent)
	if err != nil {
		return err
	}
	if parents <= 1 {
		return BadRequest(msg)
	}
	return nil
}

func (s *FamilyService) activeMember(ctx context.Context, userID, familyID uint) (*models.UserFamily, error) {
	member, err := s.FamilyRepo.FindActiveMembership(ctx, userID, familyID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, NotFound("Member not found")
	}
	return member, nil
}

func (s *FamilyService) findFamily(ctx context.Context, familyID uint) (*models.Family, error) {
	family, err := s.FamilyRepo.FindByID(ctx, familyID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("Family not found")
	}
	return family, err
}

func (s *FamilyService) uniqueInviteCode(ctx context.Context) (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := utils.InviteCode(inviteCodeLength)
		if err != nil {
			return "", err
		}
		exists, err := s.FamilyRepo.InviteCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique invite code")
}

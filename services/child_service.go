package services

import (
	"BabyTracker/events"
	"BabyTracker/models"
	"BabyTracker/repositories"
	"BabyTracker/storage"
	"context"
	"fmt"
	"mime/multipart"
	"time"
)

// TrackableCounter reports how many rows of one kind a child has since a point in time.
type TrackableCounter interface {
	Kind() string
	CountSince(ctx context.Context, childID uint, since time.Time) (int64, error)
}

type ChildService struct {
	ChildRepo repositories.ChildRepository
	Access    *AccessService
	Media     *MediaService
	Emitter   Emitter
	Counters  []TrackableCounter

	now func() time.Time
}

func NewChildService(childRepo repositories.ChildRepository, access *AccessService, media *MediaService, emitter Emitter, counters ...TrackableCounter) *ChildService {
	return &ChildService{
		ChildRepo: childRepo,
		Access:    access,
		Media:     media,
		Emitter:   emitter,
		Counters:  counters,
		now:       time.Now,
	}
}

func (s *ChildService) CreateChild(ctx context.Context, userID, familyID uint, req models.CreateChildRequest) (*models.Child, error) {
	if _, err := s.Access.RequireFamilyMember(ctx, userID, familyID, models.ManagerRoles...); err != nil {
		return nil, err
	}
	if req.BirthDate.Missing() {
		return nil, BadRequest("birthDate is required")
	}
	if req.BirthDate.After(s.now()) {
		return nil, BadRequest("birthDate cannot be in the future")
	}

	child := &models.Child{
		FamilyID:      familyID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		BirthDate:     req.BirthDate.Time,
		Gender:        req.Gender,
		BirthWeightKg: req.BirthWeightKg,
		BirthHeightCm: req.BirthHeightCm,
		Notes:         req.Notes,
		Status:        models.ChildStatusActive,
	}
	if err := s.ChildRepo.Create(ctx, child); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.ChildCreated, events.ChildPayload{Child: child, UserID: userID})
	return child, nil
}

func (s *ChildService) ListFamilyChildren(ctx context.Context, userID, familyID uint) ([]models.Child, error) {
	if _, err := s.Access.RequireFamilyMember(ctx, userID, familyID); err != nil {
		return nil, err
	}
	return s.ChildRepo.FindByFamily(ctx, familyID)
}

func (s *ChildService) GetChild(ctx context.Context, userID, childID uint) (*models.Child, error) {
	return s.Access.ResolveChildAccess(ctx, userID, childID)
}

func (s *ChildService) UpdateChild(ctx context.Context, userID, childID uint, req models.UpdateChildRequest) (*models.Child, error) {
	child, err := s.Access.RequireChildWrite(ctx, userID, childID)
	if err != nil {
		return nil, err
	}

	if req.BirthDate != nil && req.BirthDate.Missing() {
		return nil, BadRequest("birthDate cannot be empty")
	}
	req.Apply(child)
	if child.BirthDate.After(s.now()) {
		return nil, BadRequest("birthDate cannot be in the future")
	}
	if err := s.ChildRepo.Save(ctx, child); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.ChildUpdated, events.ChildPayload{Child: child, UserID: userID})
	return child, nil
}

func (s *ChildService) UploadAvatar(ctx context.Context, userID, childID uint, file *multipart.FileHeader) (*models.Child, error) {
	child, err := s.Access.RequireChildWrite(ctx, userID, childID)
	if err != nil {
		return nil, err
	}

	attachment, err := s.Media.Upload(ctx, storage.PurposeAvatars, file)
	if err != nil {
		return nil, err
	}
	child.Avatar = attachment.URL
	if err := s.ChildRepo.Save(ctx, child); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.ChildUpdated, events.ChildPayload{Child: child, UserID: userID})
	return child, nil
}

// GrantPermission gives a family member a direct read or write grant on the child.
func (s *ChildService) GrantPermission(ctx context.Context, userID, childID uint, req models.GrantPermissionRequest) (*models.UserChild, error) {
	child, err := s.Access.RequireChildManager(ctx, userID, childID)
	if err != nil {
		return nil, err
	}
	member, err := s.Access.ResolveFamilyRole(ctx, req.UserID, child.FamilyID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, BadRequest("User is not a member of this family")
	}

	grant, err := s.ChildRepo.FindGrant(ctx, req.UserID, childID)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		grant = &models.UserChild{UserID: req.UserID, ChildID: childID}
	}
	grant.Permission = req.Permission
	if err := s.ChildRepo.SaveGrant(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

func (s *ChildService) RevokePermission(ctx context.Context, userID, childID, targetUserID uint) error {
	if _, err := s.Access.RequireChildManager(ctx, userID, childID); err != nil {
		return err
	}
	return s.ChildRepo.DeleteGrant(ctx, targetUserID, childID)
}

func (s *ChildService) GetStatistics(ctx context.Context, userID, childID uint) (*models.ChildStatistics, error) {
	child, err := s.Access.ResolveChildAccess(ctx, userID, childID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	days := AgeInDays(child.BirthDate, now)
	stats := &models.ChildStatistics{
		ChildID:     child.ID,
		AgeInDays:   days,
		AgeInMonths: days / 30,
		AgeDisplay:  FormatAge(days),
		Today:       make(map[string]int, len(s.Counters)),
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, counter := range s.Counters {
		n, err := counter.CountSince(ctx, child.ID, midnight)
		if err != nil {
			return nil, err
		}
		stats.Today[counter.Kind()] = int(n)
	}
	return stats, nil
}

func AgeInDays(birth, now time.Time) int {
	if now.Before(birth) {
		return 0
	}
	return int(now.Sub(birth) / (24 * time.Hour))
}

// FormatAge renders an age in days using 365-day years and 30-day months.
func FormatAge(days int) string {
	years := days / 365
	months := (days % 365) / 30
	rest := (days % 365) % 30

	switch {
	case years > 0 && months > 0:
		return plural(years, "year") + " " + plural(months, "month")
	case years > 0:
		return plural(years, "year")
	case months > 0 && rest > 0:
		return plural(months, "month") + " " + plural(rest, "day")
	case months > 0:
		return plural(months, "month")
	default:
		return plural(rest, "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

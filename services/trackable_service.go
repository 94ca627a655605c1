package services

import (
	"BabyTracker/events"
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
	"errors"
	"strings"
	"time"
)

// TrackableService is the access-check, persist, emit pipeline shared by the
// six trackable kinds.
type TrackableService[T any, PT models.TrackableModel[T]] struct {
	Repo    repositories.TrackableRepository[T]
	Access  *AccessService
	Emitter Emitter

	now func() time.Time
}

func NewTrackableService[T any, PT models.TrackableModel[T]](repo repositories.TrackableRepository[T], access *AccessService, emitter Emitter) *TrackableService[T, PT] {
	return &TrackableService[T, PT]{Repo: repo, Access: access, Emitter: emitter, now: time.Now}
}

func (s *TrackableService[T, PT]) Kind() string {
	return PT(new(T)).Kind()
}

func (s *TrackableService[T, PT]) Create(ctx context.Context, userID uint, req models.TrackableCreate[T]) (*T, error) {
	child, err := s.Access.RequireChildWrite(ctx, userID, req.Child())
	if err != nil {
		return nil, err
	}

	item := req.ToModel()
	base := PT(item).Base()
	base.ChildID = child.ID
	base.CreatedByUserID = userID
	if base.OccurredAt.IsZero() {
		base.OccurredAt = s.now()
	}
	if err := validateModel(PT(item)); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.TrackableCreated, events.TrackablePayload{
		Kind:      s.Kind(),
		Trackable: item,
		UserID:    userID,
		FamilyID:  child.FamilyID,
	})
	return item, nil
}

func (s *TrackableService[T, PT]) FindAll(ctx context.Context, userID, childID uint) ([]T, error) {
	if _, err := s.Access.ResolveChildAccess(ctx, userID, childID); err != nil {
		return nil, err
	}
	return s.Repo.FindByChild(ctx, childID)
}

func (s *TrackableService[T, PT]) FindOne(ctx context.Context, userID, id uint) (*T, error) {
	item, _, err := s.load(ctx, userID, id, false)
	return item, err
}

func (s *TrackableService[T, PT]) Update(ctx context.Context, userID, id uint, req models.TrackableUpdate[T]) (*T, error) {
	item, child, err := s.load(ctx, userID, id, true)
	if err != nil {
		return nil, err
	}

	req.Apply(item)
	if err := validateModel(PT(item)); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.TrackableUpdated, events.TrackablePayload{
		Kind:      s.Kind(),
		Trackable: item,
		UserID:    userID,
		FamilyID:  child.FamilyID,
	})
	return item, nil
}

func (s *TrackableService[T, PT]) Remove(ctx context.Context, userID, id uint) error {
	item, child, err := s.load(ctx, userID, id, true)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, item); err != nil {
		return err
	}

	s.Emitter.Emit(events.TrackableDeleted, events.TrackableDeletedPayload{
		Kind:        s.Kind(),
		TrackableID: id,
		ChildID:     child.ID,
		UserID:      userID,
		FamilyID:    child.FamilyID,
	})
	return nil
}

// Recent returns rows that occurred at or after since, newest first.
func (s *TrackableService[T, PT]) Recent(ctx context.Context, userID, childID uint, since time.Time) ([]T, error) {
	if _, err := s.Access.ResolveChildAccess(ctx, userID, childID); err != nil {
		return nil, err
	}
	return s.Repo.FindByChildSince(ctx, childID, since)
}

// CountSince skips the access check; callers have already resolved the child.
func (s *TrackableService[T, PT]) CountSince(ctx context.Context, childID uint, since time.Time) (int64, error) {
	return s.Repo.CountByChildSince(ctx, childID, since)
}

func (s *TrackableService[T, PT]) load(ctx context.Context, userID, id uint, write bool) (*T, *models.Child, error) {
	item, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, NotFound(kindTitle(s.Kind()) + " not found")
	}
	if err != nil {
		return nil, nil, err
	}

	childID := PT(item).Base().ChildID
	var child *models.Child
	if write {
		child, err = s.Access.RequireChildWrite(ctx, userID, childID)
	} else {
		child, err = s.Access.ResolveChildAccess(ctx, userID, childID)
	}
	if err != nil {
		return nil, nil, err
	}
	return item, child, nil
}

func validateModel(m any) error {
	if v, ok := m.(models.Validator); ok {
		if err := v.Validate(); err != nil {
			return BadRequest(err.Error())
		}
	}
	return nil
}

func kindTitle(kind string) string {
	if kind == "" {
		return kind
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}

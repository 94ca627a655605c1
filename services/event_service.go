package services

import (
	"BabyTracker/events"
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

type EventService struct {
	EventRepo     repositories.EventRepository
	MilestoneRepo repositories.MilestoneRepository
	Access        *AccessService
	Emitter       Emitter

	now func() time.Time
}

func NewEventService(eventRepo repositories.EventRepository, milestoneRepo repositories.MilestoneRepository, access *AccessService, emitter Emitter) *EventService {
	return &EventService{
		EventRepo:     eventRepo,
		MilestoneRepo: milestoneRepo,
		Access:        access,
		Emitter:       emitter,
		now:           time.Now,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, userID uint, req models.CreateEventRequest) (*models.Event, error) {
	child, err := s.Access.RequireChildWrite(ctx, userID, req.ChildID)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		ChildID:         child.ID,
		CreatedByUserID: userID,
		Type:            req.Type,
		Title:           req.Title,
		Data:            req.Data,
		OccurredAt:      s.now(),
	}
	if req.OccurredAt != nil {
		event.OccurredAt = *req.OccurredAt
	}
	if err := s.EventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.EventCreated, events.EventPayload{Event: event, UserID: userID, FamilyID: child.FamilyID})
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, userID, childID uint, eventType string) ([]models.Event, error) {
	if _, err := s.Access.ResolveChildAccess(ctx, userID, childID); err != nil {
		return nil, err
	}
	return s.EventRepo.FindByChild(ctx, childID, eventType)
}

func (s *EventService) GetEvent(ctx context.Context, userID, id uint) (*models.Event, error) {
	event, _, err := s.load(ctx, userID, id, false)
	return event, err
}

func (s *EventService) UpdateEvent(ctx context.Context, userID, id uint, req models.UpdateEventRequest) (*models.Event, error) {
	event, child, err := s.load(ctx, userID, id, true)
	if err != nil {
		return nil, err
	}
	// data links a milestone entry to its reference row
	if event.Type == models.EventMilestone && req.Data != nil {
		return nil, BadRequest("Milestone data cannot be changed")
	}
	req.Apply(event)
	if err := s.EventRepo.Save(ctx, event); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.EventUpdated, events.EventPayload{Event: event, UserID: userID, FamilyID: child.FamilyID})
	return event, nil
}

// DeleteEvent soft-deletes a log entry. Milestone entries are removed for good.
func (s *EventService) DeleteEvent(ctx context.Context, userID, id uint) error {
	event, child, err := s.load(ctx, userID, id, true)
	if err != nil {
		return err
	}
	if event.Type == models.EventMilestone {
		return s.removeMilestone(ctx, userID, event, child)
	}
	if err := s.EventRepo.Delete(ctx, event); err != nil {
		return err
	}

	s.Emitter.Emit(events.EventDeleted, events.EventDeletedPayload{
		EventID:  event.ID,
		ChildID:  child.ID,
		Type:     event.Type,
		UserID:   userID,
		FamilyID: child.FamilyID,
	})
	return nil
}

func (s *EventService) ListMilestones(ctx context.Context, category string) ([]models.Milestone, error) {
	return s.MilestoneRepo.FindAll(ctx, category)
}

// SuggestedMilestones returns reference milestones whose age range covers
// the child's current age in months.
func (s *EventService) SuggestedMilestones(ctx context.Context, userID, childID uint) ([]models.Milestone, error) {
	child, err := s.Access.ResolveChildAccess(ctx, userID, childID)
	if err != nil {
		return nil, err
	}
	all, err := s.MilestoneRepo.FindAll(ctx, "")
	if err != nil {
		return nil, err
	}

	months := AgeInDays(child.BirthDate, s.now()) / 30
	suggested := make([]models.Milestone, 0, len(all))
	for i := range all {
		if all[i].FitsAge(months) {
			suggested = append(suggested, all[i])
		}
	}
	return suggested, nil
}

func (s *EventService) AchieveMilestone(ctx context.Context, userID, childID uint, req models.AchieveMilestoneRequest) (*models.Event, error) {
	child, err := s.Access.RequireChildWrite(ctx, userID, childID)
	if err != nil {
		return nil, err
	}
	milestone, err := s.MilestoneRepo.FindByID(ctx, req.MilestoneID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("Milestone not found")
	}
	if err != nil {
		return nil, err
	}

	achieved, err := s.EventRepo.FindByChild(ctx, childID, models.EventMilestone)
	if err != nil {
		return nil, err
	}
	for i := range achieved {
		if milestoneData(&achieved[i]).MilestoneID == milestone.ID {
			return nil, BadRequest("Milestone already achieved")
		}
	}

	data, err := json.Marshal(models.MilestoneData{
		MilestoneID: milestone.ID,
		Category:    milestone.Category,
		Title:       milestone.Title,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}
	event := &models.Event{
		ChildID:         child.ID,
		CreatedByUserID: userID,
		Type:            models.EventMilestone,
		Title:           milestone.Title,
		Data:            datatypes.JSON(data),
		OccurredAt:      s.now(),
	}
	if req.AchievedAt != nil {
		event.OccurredAt = *req.AchievedAt
	}
	if err := s.EventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.Emitter.Emit(events.EventMilestoneCreated, events.EventPayload{
		Event:     event,
		Milestone: milestone,
		UserID:    userID,
		FamilyID:  child.FamilyID,
	})
	return event, nil
}

func (s *EventService) AchievedMilestones(ctx context.Context, userID, childID uint) ([]models.AchievedMilestone, error) {
	if _, err := s.Access.ResolveChildAccess(ctx, userID, childID); err != nil {
		return nil, err
	}
	entries, err := s.EventRepo.FindByChild(ctx, childID, models.EventMilestone)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(entries))
	for i := range entries {
		ids = append(ids, milestoneData(&entries[i]).MilestoneID)
	}
	refs, err := s.MilestoneRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Milestone, len(refs))
	for i := range refs {
		byID[refs[i].ID] = &refs[i]
	}

	out := make([]models.AchievedMilestone, 0, len(entries))
	for i := range entries {
		data := milestoneData(&entries[i])
		out = append(out, models.AchievedMilestone{
			EventID:    entries[i].ID,
			AchievedAt: entries[i].OccurredAt,
			Notes:      data.Notes,
			Milestone:  byID[data.MilestoneID],
		})
	}
	return out, nil
}

func (s *EventService) RemoveMilestone(ctx context.Context, userID, eventID uint) error {
	event, child, err := s.load(ctx, userID, eventID, true)
	if err != nil {
		return err
	}
	if event.Type != models.EventMilestone {
		return NotFound("Milestone not found")
	}
	return s.removeMilestone(ctx, userID, event, child)
}

func (s *EventService) removeMilestone(ctx context.Context, userID uint, event *models.Event, child *models.Child) error {
	if err := s.EventRepo.HardDelete(ctx, event); err != nil {
		return err
	}
	s.Emitter.Emit(events.EventMilestoneDeleted, events.EventDeletedPayload{
		EventID:  event.ID,
		ChildID:  child.ID,
		Type:     event.Type,
		UserID:   userID,
		FamilyID: child.FamilyID,
	})
	return nil
}

func (s *EventService) load(ctx context.Context, userID, id uint, write bool) (*models.Event, *models.Child, error) {
	event, err := s.EventRepo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, NotFound("Event not found")
	}
	if err != nil {
		return nil, nil, err
	}

	var child *models.Child
	if write {
		child, err = s.Access.RequireChildWrite(ctx, userID, event.ChildID)
	} else {
		child, err = s.Access.ResolveChildAccess(ctx, userID, event.ChildID)
	}
	if err != nil {
		return nil, nil, err
	}
	return event, child, nil
}

// milestoneData ignores malformed payloads; they never match a milestone.
func milestoneData(e *models.Event) models.MilestoneData {
	var data models.MilestoneData
	if len(e.Data) > 0 {
		_ = json.Unmarshal(e.Data, &data)
	}
	return data
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/repository"
)

// EventService handles meetup events and attendance.
type EventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// Create creates a new event owned by the user.
func (s *EventService) Create(ctx context.Context, user *model.User, req *model.CreateEventRequest) (*model.Event, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	event := &model.Event{
		ID:           uuid.NewString(),
		OwnerID:      user.ID,
		Username:     user.Username,
		Title:        req.Title,
		Description:  req.Description,
		EventDate:    req.EventDate,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		LocationName: req.LocationName,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// List returns all events ordered by event date, with the viewer's
// attendance flag attached.
func (s *EventService) List(ctx context.Context, viewer *model.User) ([]model.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(events) > 0 {
		ids := make([]string, len(events))
		for i, e := range events {
			ids[i] = e.ID
		}
		attending, err := s.repo.CheckAttendance(ctx, viewer.ID, ids)
		if err != nil {
			return nil, err
		}
		for i := range events {
			events[i].Attending = attending[events[i].ID]
		}
	}

	return events, nil
}

// Search finds events matching the query in title, description or
// location name.
func (s *EventService) Search(ctx context.Context, query string) ([]model.Event, error) {
	return s.repo.Search(ctx, query, model.EventSearchLimit)
}

// ToggleAttendance flips the viewer's attendance on an event and
// returns the new state.
func (s *EventService) ToggleAttendance(ctx context.Context, eventID string, viewer *model.User) (*model.AttendResult, error) {
	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	attending, err := s.repo.HasAttendee(ctx, eventID, viewer.ID)
	if err != nil {
		return nil, err
	}

	if attending {
		err = s.repo.RemoveAttendee(ctx, eventID, viewer.ID)
	} else {
		err = s.repo.AddAttendee(ctx, eventID, viewer.ID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &model.AttendResult{Attendees: count, Attending: !attending}, nil
}

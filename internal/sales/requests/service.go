package requests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/handydesk/handydesk/internal/notes"
	"github.com/handydesk/handydesk/internal/shared"
)

type Service struct {
	repo   Repository
	syncer *notes.Syncer
	clock  func() time.Time
	newID  func() string
}

func NewService(repo Repository, syncer *notes.Syncer) *Service {
	return &Service{
		repo:   repo,
		syncer: syncer,
		clock:  func() time.Time { return time.Now().UTC() },
		newID:  func() string { return shared.NewID(shared.PrefixRequest) },
	}
}

// Create stores a new request. Internal notes are kept on the request as a one-note
// ledger and, once the request is stored, mirrored to the client's ledger with medium
// importance.
func (s *Service) Create(ctx context.Context, req CreateRequestRequest) (*Request, error) {
	times, err := NewTimeSlots(req.PreferredTimes...)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	ledger := notes.Encode(nil)
	note, hasNote := s.syncer.Ledger().Format(req.InternalNotes, notes.ImportanceMedium)
	if hasNote {
		ledger = notes.Encode([]notes.Note{note})
	}

	now := s.clock()
	request := Request{
		ID:                 s.newID(),
		ClientID:           strings.TrimSpace(req.ClientID),
		Title:              strings.TrimSpace(req.Title),
		Details:            strings.TrimSpace(req.Details),
		PreferredDates:     req.PreferredDates,
		PreferredTimes:     times,
		RequiresAssessment: req.RequiresAssessment,
		InternalNotes:      ledger,
		Status:             StatusNew,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if hasNote {
		if _, err := s.syncer.SyncNote(ctx, request.ClientID, note); err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
	}
	return &request, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequestRequest) (*Request, error) {
	updated, err := s.repo.Update(ctx, id, func(r *Request) error {
		if req.Status != nil {
			if !CanTransition(r.Status, *req.Status) {
				return fmt.Errorf("%w: %s -> %s", shared.ErrInvalidTransition, r.Status, *req.Status)
			}
			r.Status = *req.Status
		}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return fmt.Errorf("%w: title cannot be blank", shared.ErrValidation)
			}
			r.Title = title
		}
		if req.Details != nil {
			r.Details = strings.TrimSpace(*req.Details)
		}
		if req.PreferredDates != nil {
			r.PreferredDates = *req.PreferredDates
		}
		if req.PreferredTimes != nil {
			times, err := NewTimeSlots(*req.PreferredTimes...)
			if err != nil {
				return err
			}
			r.PreferredTimes = times
		}
		if req.RequiresAssessment != nil {
			r.RequiresAssessment = *req.RequiresAssessment
		}
		r.UpdatedAt = s.touch(r.CreatedAt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	return updated, nil
}

// AddNote mirrors a note to the client's ledger and, only when that succeeded, appends
// the same note to the request. A request whose client no longer exists is left untouched
// and the returned note is nil.
func (s *Service) AddNote(ctx context.Context, id, content string, importance notes.Importance) (*notes.Note, error) {
	request, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	note, err := s.syncer.SyncToCustomer(ctx, request.ClientID, content, importance)
	if err != nil || note == nil {
		return nil, err
	}
	_, err = s.repo.Update(ctx, id, func(r *Request) error {
		r.InternalNotes = notes.Append(r.InternalNotes, *note)
		r.UpdatedAt = s.touch(r.CreatedAt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("append request note: %w", err)
	}
	return note, nil
}

// Notes returns the request's internal ledger.
func (s *Service) Notes(ctx context.Context, id string) ([]notes.Note, error) {
	request, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return notes.Parse(request.InternalNotes), nil
}

func (s *Service) touch(createdAt time.Time) time.Time {
	now := s.clock()
	if now.Before(createdAt) {
		return createdAt
	}
	return now
}

func (s *Service) Get(ctx context.Context, id string) (*Request, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListRequestsRequest) ([]Request, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Request, 0, len(all))
	for _, r := range all {
		if req.Status != nil && r.Status != *req.Status {
			continue
		}
		if req.ClientID != "" && r.ClientID != req.ClientID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return nil
}

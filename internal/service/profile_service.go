package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nestgirl/internal/cycle"
	"nestgirl/internal/feed"
	"nestgirl/internal/model"
	"nestgirl/internal/repository"
)

var ErrProfileNotFound = errors.New("profile not found")

// WellnessSummary is the dashboard health card: either the cycle block or
// the pregnancy block is populated, depending on the profile status.
type WellnessSummary struct {
	CycleDay      *int `json:"cycle_day,omitempty"`
	CycleLength   *int `json:"cycle_length,omitempty"`
	DaysUntilNext *int `json:"days_until_next,omitempty"`

	PregnancyWeek     *int     `json:"pregnancy_week,omitempty"`
	PregnancyProgress *float64 `json:"pregnancy_progress,omitempty"`
}

// ProfileService covers the owner-side profile operations.
type ProfileService interface {
	Get(ctx context.Context, phone string) (*model.Profile, error)
	// All lists every registered profile, for the admin console.
	All(ctx context.Context) ([]model.Profile, error)
	Update(ctx context.Context, phone string, req model.UpdateProfileRequest) (*model.Profile, error)
	// RecordPeriodStart marks today as the first day of a new cycle.
	RecordPeriodStart(ctx context.Context, phone string, today time.Time) error
	// Wellness derives the health card numbers for today. Pure
	// re-evaluation on every call; nothing is cached.
	Wellness(ctx context.Context, profile *model.Profile, today time.Time) WellnessSummary
}

type profileService struct {
	users repository.UserRepository
	hub   *feed.Hub
}

// NewProfileService creates a new ProfileService
func NewProfileService(users repository.UserRepository, hub *feed.Hub) ProfileService {
	return &profileService{users: users, hub: hub}
}

func (s *profileService) Get(ctx context.Context, phone string) (*model.Profile, error) {
	profile, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *profileService) All(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (s *profileService) Update(ctx context.Context, phone string, req model.UpdateProfileRequest) (*model.Profile, error) {
	profile, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile for update: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.DOB != nil {
		profile.DOB = req.DOB
	}
	if req.HeightCM != nil {
		profile.HeightCM = req.HeightCM
	}
	if req.WeightKG != nil {
		profile.WeightKG = req.WeightKG
	}
	if req.Status != nil {
		profile.Status = *req.Status
	}
	if req.MaternalStatus != nil {
		profile.MaternalStatus = req.MaternalStatus
	}
	if req.PeriodStartDate != nil {
		profile.PeriodStartDate = req.PeriodStartDate
	}
	if req.CycleLength != nil {
		profile.CycleLength = req.CycleLength
	}
	if req.IsCycleRegular != nil {
		profile.IsCycleRegular = req.IsCycleRegular
	}
	if req.PregnancyStartDate != nil {
		profile.PregnancyStartDate = req.PregnancyStartDate
	}

	if err := s.users.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.hub.Notify(feed.CollectionUsers)
	return profile, nil
}

func (s *profileService) RecordPeriodStart(ctx context.Context, phone string, today time.Time) error {
	if err := s.users.SetPeriodStartDate(ctx, phone, today.Format("2006-01-02")); err != nil {
		return fmt.Errorf("failed to record period start: %w", err)
	}
	s.hub.Notify(feed.CollectionUsers)
	return nil
}

func (s *profileService) Wellness(_ context.Context, profile *model.Profile, today time.Time) WellnessSummary {
	var summary WellnessSummary

	if profile.Status == model.StatusPregnant && profile.PregnancyStartDate != nil {
		week := cycle.PregnancyWeek(*profile.PregnancyStartDate, today)
		progress := cycle.PregnancyProgress(*profile.PregnancyStartDate, today)
		summary.PregnancyWeek = &week
		summary.PregnancyProgress = &progress
		return summary
	}

	if profile.PeriodStartDate != nil {
		length := cycle.DefaultCycleLength
		if profile.CycleLength != nil {
			length = *profile.CycleLength
		}
		day := cycle.Day(*profile.PeriodStartDate, length, today)
		remaining := cycle.DaysUntilNext(*profile.PeriodStartDate, length, today)
		summary.CycleDay = &day
		summary.CycleLength = &length
		summary.DaysUntilNext = &remaining
	}
	return summary
}

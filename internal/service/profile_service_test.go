package service

import (
	"context"
	"testing"
	"time"

	"nestgirl/internal/feed"
	"nestgirl/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture() (ProfileService, *memUserRepo) {
	users := newMemUserRepo()
	return NewProfileService(users, feed.NewHub()), users
}

func TestProfileService_WellnessCycleCard(t *testing.T) {
	svc, _ := newProfileFixture()

	today := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -10)
	length := 28
	p := &model.Profile{
		Phone:           "0791234567",
		Name:            "Lina",
		Status:          model.StatusMarried,
		PeriodStartDate: &start,
		CycleLength:     &length,
	}

	summary := svc.Wellness(context.Background(), p, today)
	require.NotNil(t, summary.CycleDay)
	assert.Equal(t, 11, *summary.CycleDay)
	assert.Equal(t, 28, *summary.CycleLength)
	assert.Equal(t, 18, *summary.DaysUntilNext)
	assert.Nil(t, summary.PregnancyWeek)
}

func TestProfileService_WellnessPregnancyCard(t *testing.T) {
	svc, _ := newProfileFixture()

	today := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -15)
	p := &model.Profile{
		Phone:              "0791234567",
		Name:               "Lina",
		Status:             model.StatusPregnant,
		PregnancyStartDate: &start,
	}

	summary := svc.Wellness(context.Background(), p, today)
	require.NotNil(t, summary.PregnancyWeek)
	assert.Equal(t, 3, *summary.PregnancyWeek)
	assert.InDelta(t, 3.0/40, *summary.PregnancyProgress, 1e-9)
	assert.Nil(t, summary.CycleDay)
}

func TestProfileService_WellnessNoDatesRecorded(t *testing.T) {
	svc, _ := newProfileFixture()

	p := &model.Profile{Phone: "0791234567", Name: "Lina", Status: model.StatusSingle}
	summary := svc.Wellness(context.Background(), p, time.Now())
	assert.Nil(t, summary.CycleDay)
	assert.Nil(t, summary.PregnancyWeek)
}

func TestProfileService_UpdateAppliesPartialFields(t *testing.T) {
	svc, users := newProfileFixture()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.Profile{
		Phone: "0791234567", Name: "Lina", Status: model.StatusMarried,
	}))

	status := model.StatusPregnant
	start := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, "0791234567", model.UpdateProfileRequest{
		Status:             &status,
		PregnancyStartDate: &start,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPregnant, updated.Status)
	require.NotNil(t, updated.PregnancyStartDate)
	assert.Equal(t, "Lina", updated.Name) // untouched field survives
}

func TestProfileService_UpdateMissingProfile(t *testing.T) {
	svc, _ := newProfileFixture()
	name := "x"
	_, err := svc.Update(context.Background(), "missing", model.UpdateProfileRequest{Name: &name})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"nestgirl/internal/model"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

var userCols = []string{
	"phone", "name", "password_hash", "dob", "height_cm", "weight_kg", "status", "maternal_status",
	"period_start_date", "cycle_length", "is_cycle_regular", "pregnancy_start_date", "is_admin", "created_at",
}

func TestUserRepository_FindByPhone(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	created := time.Now()
	cycleLength := 28
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("0791234567").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(
			"0791234567", "Lina", "hash", nil, nil, nil, model.StatusMarried, nil,
			nil, &cycleLength, nil, nil, false, created,
		))

	p, err := repo.FindByPhone(context.Background(), "0791234567")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Lina", p.Name)
	assert.Equal(t, model.StatusMarried, p.Status)
	require.NotNil(t, p.CycleLength)
	assert.Equal(t, 28, *p.CycleLength)
	assert.Nil(t, p.PregnancyStartDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByPhone_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("0799999999").
		WillReturnRows(pgxmock.NewRows(userCols))

	p, err := repo.FindByPhone(context.Background(), "0799999999")
	assert.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	p := &model.Profile{
		Phone:  "0791234567",
		Name:   "Lina",
		Status: model.StatusSingle,
	}
	p.PasswordHash = "hash"

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(p.Phone, p.Name, p.PasswordHash, p.DOB, p.HeightCM, p.WeightKG, p.Status, p.MaternalStatus,
			p.PeriodStartDate, p.CycleLength, p.IsCycleRegular, p.PregnancyStartDate, p.IsAdmin).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	err := repo.Create(context.Background(), p)
	assert.NoError(t, err)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetPeriodStartDate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET period_start_date`)).
		WithArgs("2025-03-10", "0791234567").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SetPeriodStartDate(context.Background(), "0791234567", "2025-03-10")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetPeriodStartDate_Missing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET period_start_date`)).
		WithArgs("2025-03-10", "0799999999").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetPeriodStartDate(context.Background(), "0799999999", "2025-03-10")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"nestgirl/internal/model"

	"github.com/jackc/pgx/v5"
)

const profileColumns = `phone, name, password_hash, dob, height_cm, weight_kg, status, maternal_status,
            period_start_date, cycle_length, is_cycle_regular, pregnancy_start_date, is_admin, created_at`

// UserRepository defines operations for profile records. Profiles are never
// deleted by the application, so there is no Delete.
type UserRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	FindByPhone(ctx context.Context, phone string) (*model.Profile, error)
	FindAll(ctx context.Context) ([]model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
	SetPeriodStartDate(ctx context.Context, phone string, date string) error
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new profile. The phone is the primary key, so inserting
// an already-registered phone fails with a unique violation.
func (r *userRepository) Create(ctx context.Context, p *model.Profile) error {
	sql := `INSERT INTO users (phone, name, password_hash, dob, height_cm, weight_kg, status, maternal_status,
                period_start_date, cycle_length, is_cycle_regular, pregnancy_start_date, is_admin)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING created_at`
	err := r.db.QueryRow(ctx, sql,
		p.Phone, p.Name, p.PasswordHash, p.DOB, p.HeightCM, p.WeightKG, p.Status, p.MaternalStatus,
		p.PeriodStartDate, p.CycleLength, p.IsCycleRegular, p.PregnancyStartDate, p.IsAdmin,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByPhone retrieves a profile by phone number. Not found returns
// (nil, nil); the service layer decides what that means.
func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.Profile, error) {
	p := &model.Profile{}
	sql := `SELECT ` + profileColumns + ` FROM users WHERE phone = $1`
	err := r.db.QueryRow(ctx, sql, phone).Scan(
		&p.Phone, &p.Name, &p.PasswordHash, &p.DOB, &p.HeightCM, &p.WeightKG, &p.Status, &p.MaternalStatus,
		&p.PeriodStartDate, &p.CycleLength, &p.IsCycleRegular, &p.PregnancyStartDate, &p.IsAdmin, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by phone: %w", err)
	}
	return p, nil
}

// FindAll retrieves every profile, newest first. Used by the admin console.
func (r *userRepository) FindAll(ctx context.Context) ([]model.Profile, error) {
	sql := `SELECT ` + profileColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(
			&p.Phone, &p.Name, &p.PasswordHash, &p.DOB, &p.HeightCM, &p.WeightKG, &p.Status, &p.MaternalStatus,
			&p.PeriodStartDate, &p.CycleLength, &p.IsCycleRegular, &p.PregnancyStartDate, &p.IsAdmin, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return profiles, nil
}

// Update overwrites the mutable profile fields for p.Phone.
func (r *userRepository) Update(ctx context.Context, p *model.Profile) error {
	sql := `UPDATE users
            SET name = $1, dob = $2, height_cm = $3, weight_kg = $4, status = $5, maternal_status = $6,
                period_start_date = $7, cycle_length = $8, is_cycle_regular = $9, pregnancy_start_date = $10
            WHERE phone = $11`
	tag, err := r.db.Exec(ctx, sql,
		p.Name, p.DOB, p.HeightCM, p.WeightKG, p.Status, p.MaternalStatus,
		p.PeriodStartDate, p.CycleLength, p.IsCycleRegular, p.PregnancyStartDate, p.Phone,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for update")
	}
	return nil
}

// SetPeriodStartDate records a new period start date ("YYYY-MM-DD") for the
// user; the caller refreshes its cached profile afterwards.
func (r *userRepository) SetPeriodStartDate(ctx context.Context, phone string, date string) error {
	sql := `UPDATE users SET period_start_date = $1 WHERE phone = $2`
	tag, err := r.db.Exec(ctx, sql, date, phone)
	if err != nil {
		return fmt.Errorf("failed to set period start date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for period start update")
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// StaffFilter captures staff pool query parameters.
type StaffFilter struct {
	Availability *domain.StaffAvailability
	RoleCategory *string
	Limit        int
}

// StaffRepository encapsulates staff profile persistence. Profiles are
// read-only to the engine except for the aggregate performance counters.
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.StaffProfile, error)
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffProfile, error)
	UpdateCounters(ctx context.Context, staffID string, completedShifts int, onTimeRate float64, recentAssignments int) error
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, name, role_category, location, skills, rating, availability,
        completed_shifts, on_time_rate, recent_assignments, created_at, updated_at`

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffProfile, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_profiles WHERE id=$1`
	profile, err := scanStaff(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffProfile, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Availability != nil {
		args = append(args, *filter.Availability)
		clauses = append(clauses, fmt.Sprintf("availability=$%d", len(args)))
	}
	if filter.RoleCategory != nil {
		args = append(args, *filter.RoleCategory)
		clauses = append(clauses, fmt.Sprintf("role_category=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`SELECT %s FROM staff_profiles WHERE %s ORDER BY id LIMIT %d`,
		staffColumns, strings.Join(clauses, " AND "), limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffProfile
	for rows.Next() {
		profile, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *profile)
	}
	return result, rows.Err()
}

func (r *staffRepository) UpdateCounters(ctx context.Context, staffID string, completedShifts int, onTimeRate float64, recentAssignments int) error {
	const query = `
        UPDATE staff_profiles
        SET completed_shifts=$2, on_time_rate=$3, recent_assignments=$4, updated_at=NOW()
        WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, staffID, completedShifts, onTimeRate, recentAssignments)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanStaff(row pgx.Row) (*domain.StaffProfile, error) {
	var profile domain.StaffProfile
	var skillsJSON []byte
	if err := row.Scan(
		&profile.ID,
		&profile.Name,
		&profile.RoleCategory,
		&profile.Location,
		&skillsJSON,
		&profile.Rating,
		&profile.Availability,
		&profile.CompletedShifts,
		&profile.OnTimeRate,
		&profile.RecentAssignments,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &profile.Skills); err != nil {
			return nil, fmt.Errorf("unmarshal skills: %w", err)
		}
	}
	return &profile, nil
}

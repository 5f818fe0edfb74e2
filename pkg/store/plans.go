package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/limaJavier/degreeplan/pkg/model"
	"github.com/samber/lo"
)

var ErrPlanNotFound = errors.New("plan not found")

type planRow struct {
	Id        string    `db:"id"`
	Major     string    `db:"major"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	Payload   string    `db:"payload"`
}

// planPayload is the stored body of a plan
type planPayload struct {
	Semesters []model.SemesterRecord `json:"semesters"`
	Warnings  []model.Warning        `json:"warnings"`
	Stats     model.Stats            `json:"stats"`
}

// StoredPlan is a saved planning result. Semesters are kept in their serialized form
type StoredPlan struct {
	Id        uuid.UUID
	Major     string
	Status    model.Status
	CreatedAt time.Time
	Semesters []model.SemesterRecord
	Warnings  []model.Warning
	Stats     model.Stats
}

// SavePlan stores the result under a fresh identifier
func (store *SQLite) SavePlan(ctx context.Context, result model.Result) (uuid.UUID, error) {
	payload, err := json.Marshal(planPayload{
		Semesters: lo.Map(result.Semesters, func(semester model.SemesterSchedule, _ int) model.SemesterRecord { return semester.Record() }),
		Warnings:  result.Warnings,
		Stats:     result.Stats,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("cannot encode plan: %w", err)
	}

	id := uuid.New()
	row := planRow{
		Id:        id.String(),
		Major:     result.Major,
		Status:    string(result.Status),
		CreatedAt: time.Now().UTC(),
		Payload:   string(payload),
	}
	if err := store.dbmap.WithContext(ctx).Insert(&row); err != nil {
		return uuid.Nil, fmt.Errorf("cannot save plan: %w", err)
	}
	return id, nil
}

func (store *SQLite) LoadPlan(ctx context.Context, id uuid.UUID) (StoredPlan, error) {
	var row planRow
	err := store.dbmap.WithContext(ctx).SelectOne(&row, "SELECT * FROM plans WHERE id = ?", id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return StoredPlan{}, fmt.Errorf("%w: %v", ErrPlanNotFound, id)
	} else if err != nil {
		return StoredPlan{}, fmt.Errorf("cannot load plan %v: %w", id, err)
	}
	return row.plan()
}

// ListPlans returns the saved plans of a major, newest first. An empty major lists every plan
func (store *SQLite) ListPlans(ctx context.Context, major string) ([]StoredPlan, error) {
	var rows []planRow
	_, err := store.dbmap.WithContext(ctx).Select(&rows, "SELECT * FROM plans WHERE ? = '' OR major = ? ORDER BY created_at DESC", major, major)
	if err != nil {
		return nil, fmt.Errorf("cannot list plans: %w", err)
	}

	plans := make([]StoredPlan, 0, len(rows))
	for _, row := range rows {
		plan, err := row.plan()
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (row planRow) plan() (StoredPlan, error) {
	id, err := uuid.Parse(row.Id)
	if err != nil {
		return StoredPlan{}, fmt.Errorf("stored plan has an invalid id %q: %w", row.Id, err)
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
		return StoredPlan{}, fmt.Errorf("cannot decode plan %v: %w", id, err)
	}

	return StoredPlan{
		Id:        id,
		Major:     row.Major,
		Status:    model.Status(row.Status),
		CreatedAt: row.CreatedAt,
		Semesters: payload.Semesters,
		Warnings:  payload.Warnings,
		Stats:     payload.Stats,
	}, nil
}

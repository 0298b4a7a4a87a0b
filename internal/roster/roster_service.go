package roster

import (
	"context"
	"database/sql"
	"errors"
	"time"

	rostererrors "staffops/internal/roster/errors"
	"staffops/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=roster_service.go -destination=mock/roster_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, req GenerateRosterRequest) (GenerateRosterResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]RosterResponse, error)
	GetByID(ctx context.Context, id string) (RosterResponse, error)
	Update(ctx context.Context, id string, req UpdateRosterRequest) (RosterResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger *zap.Logger) Service {
	return &service{db: db, repo: repo, logger: logger}
}

// Generate expands the request into one entry per employee per calendar day
// and inserts the whole batch in a single transaction. An empty employee set
// is a no-op, not an error.
func (s *service) Generate(ctx context.Context, req GenerateRosterRequest) (GenerateRosterResponse, error) {
	if len(req.ProfileIDs) == 0 {
		return GenerateRosterResponse{Generated: 0, Entries: []RosterResponse{}}, nil
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return GenerateRosterResponse{}, rostererrors.ErrInvalidDateFormat
	}
	endDate := startDate
	if req.EndDate != "" {
		endDate, err = time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return GenerateRosterResponse{}, rostererrors.ErrInvalidDateFormat
		}
	}
	if endDate.Before(startDate) {
		return GenerateRosterResponse{}, rostererrors.ErrInvalidDateRange
	}

	hours, err := shiftHours(req.StartTime, req.EndTime)
	if err != nil {
		return GenerateRosterResponse{}, err
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return GenerateRosterResponse{}, apperror.InvalidField("client_id")
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return GenerateRosterResponse{}, apperror.InvalidField("project_id")
	}

	expected := req.ExpectedProfiles
	if expected == 0 {
		expected = len(req.ProfileIDs)
	}

	days := expandDates(startDate, endDate)
	entries := make([]RosterEntry, 0, len(req.ProfileIDs)*len(days))
	for _, pid := range req.ProfileIDs {
		profileID, err := uuid.Parse(pid)
		if err != nil {
			return GenerateRosterResponse{}, apperror.InvalidField("profile_ids")
		}
		for _, day := range days {
			entries = append(entries, RosterEntry{
				ID:               uuid.New(),
				ProfileID:        profileID,
				ClientID:         clientID,
				ProjectID:        projectID,
				Date:             day,
				StartTime:        req.StartTime,
				EndTime:          req.EndTime,
				TotalHours:       hours,
				Status:           StatusPending,
				Name:             req.Name,
				ExpectedProfiles: expected,
				PerHourRate:      req.PerHourRate,
				Notes:            req.Notes,
				IsLocked:         false,
				IsEditable:       true,
			})
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GenerateRosterResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.BulkCreate(ctx, entries); err != nil {
		return GenerateRosterResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return GenerateRosterResponse{}, err
	}

	s.logger.Info("roster generated",
		zap.Int("entries", len(entries)),
		zap.Int("profiles", len(req.ProfileIDs)),
		zap.Int("days", len(days)),
	)

	resp := make([]RosterResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return GenerateRosterResponse{Generated: len(entries), Entries: resp}, nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]RosterResponse, error) {
	entries, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]RosterResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (RosterResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RosterResponse{}, mapStoreError(err)
	}
	return mapToResponse(*e), nil
}

// Update refuses locked entries before touching the store: once working hours
// derived from an entry are approved the schedule is immutable.
func (s *service) Update(ctx context.Context, id string, req UpdateRosterRequest) (RosterResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RosterResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return RosterResponse{}, mapStoreError(err)
	}
	if e.IsLocked || !e.IsEditable {
		return RosterResponse{}, rostererrors.ErrRosterLocked
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return RosterResponse{}, rostererrors.ErrInvalidDateFormat
	}
	hours, err := shiftHours(req.StartTime, req.EndTime)
	if err != nil {
		return RosterResponse{}, err
	}

	e.Date = date
	e.StartTime = req.StartTime
	e.EndTime = req.EndTime
	e.TotalHours = hours
	e.Status = req.Status
	e.Name = req.Name
	e.PerHourRate = req.PerHourRate
	e.Notes = req.Notes

	if err := qtx.Update(ctx, e); err != nil {
		return RosterResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RosterResponse{}, err
	}

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}
	if e.IsLocked || !e.IsEditable {
		return rostererrors.ErrRosterLocked
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rostererrors.ErrRosterNotFound
	}
	return err
}

func mapToResponse(e RosterEntry) RosterResponse {
	resp := RosterResponse{
		ID:               e.ID.String(),
		ProfileID:        e.ProfileID.String(),
		ClientID:         e.ClientID.String(),
		ProjectID:        e.ProjectID.String(),
		Date:             e.Date.Format(dateLayout),
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		TotalHours:       e.TotalHours,
		Status:           e.Status,
		Name:             e.Name,
		ExpectedProfiles: e.ExpectedProfiles,
		PerHourRate:      e.PerHourRate,
		Notes:            e.Notes,
		IsLocked:         e.IsLocked,
		IsEditable:       e.IsEditable,
	}
	if e.EndDate != nil {
		s := e.EndDate.Format(dateLayout)
		resp.EndDate = &s
	}
	if e.Profile != nil {
		resp.ProfileName = e.Profile.FullName
	}
	return resp
}

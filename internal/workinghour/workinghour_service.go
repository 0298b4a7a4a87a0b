package workinghour

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"staffops/internal/shared/apperror"
	workinghourerrors "staffops/internal/workinghour/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// Hours beyond this per day accrue at the overtime rate.
	standardDailyHours = 8.0
	overtimeMultiplier = 1.5
)

//go:generate mockgen -source=workinghour_service.go -destination=mock/workinghour_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateWorkingHourRequest) (WorkingHourResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]WorkingHourResponse, error)
	GetByID(ctx context.Context, id string) (WorkingHourResponse, error)
	Update(ctx context.Context, id string, req UpdateWorkingHourRequest) (WorkingHourResponse, error)
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string, req ReviewRequest) (WorkingHourResponse, error)
	Reject(ctx context.Context, id string, req ReviewRequest) (WorkingHourResponse, error)
	Summarize(ctx context.Context, from, to time.Time, profileID string) (SummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger *zap.Logger) Service {
	return &service{db: db, repo: repo, logger: logger}
}

func (s *service) Create(ctx context.Context, req CreateWorkingHourRequest) (WorkingHourResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return WorkingHourResponse{}, workinghourerrors.ErrInvalidDateFormat
	}

	total, err := hoursBetween(req.StartTime, req.EndTime)
	if err != nil {
		return WorkingHourResponse{}, err
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return WorkingHourResponse{}, apperror.InvalidField("profile_id")
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return WorkingHourResponse{}, apperror.InvalidField("client_id")
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return WorkingHourResponse{}, apperror.InvalidField("project_id")
	}

	rate, err := s.resolveRate(ctx, req.HourlyRate, req.ProfileID)
	if err != nil {
		return WorkingHourResponse{}, mapStoreError(err)
	}

	actual := total
	if req.ActualHours != nil {
		actual = *req.ActualHours
	}

	wh := &WorkingHour{
		ID:         uuid.New(),
		ProfileID:  profileID,
		ClientID:   clientID,
		ProjectID:  projectID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		TotalHours: total,
		HourlyRate: rate,
		Status:     StatusPending,
		Notes:      req.Notes,
		IsEditable: true,
	}
	if req.RosterEntryID != nil {
		reID, err := uuid.Parse(*req.RosterEntryID)
		if err != nil {
			return WorkingHourResponse{}, apperror.InvalidField("roster_entry_id")
		}
		wh.RosterEntryID = &reID
	}
	applyHours(wh, actual)

	if err := s.repo.Create(ctx, wh); err != nil {
		return WorkingHourResponse{}, mapStoreError(err)
	}
	return mapToResponse(*wh), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]WorkingHourResponse, error) {
	hours, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]WorkingHourResponse, len(hours))
	for i, wh := range hours {
		resp[i] = mapToResponse(wh)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkingHourResponse, error) {
	wh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WorkingHourResponse{}, mapStoreError(err)
	}
	return mapToResponse(*wh), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateWorkingHourRequest) (WorkingHourResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkingHourResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	wh, err := qtx.FindByID(ctx, id)
	if err != nil {
		return WorkingHourResponse{}, mapStoreError(err)
	}
	if wh.IsLocked || !wh.IsEditable {
		return WorkingHourResponse{}, workinghourerrors.ErrWorkingHourLocked
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return WorkingHourResponse{}, workinghourerrors.ErrInvalidDateFormat
	}
	total, err := hoursBetween(req.StartTime, req.EndTime)
	if err != nil {
		return WorkingHourResponse{}, err
	}

	wh.Date = date
	wh.StartTime = req.StartTime
	wh.EndTime = req.EndTime
	wh.TotalHours = total
	if req.HourlyRate != nil {
		wh.HourlyRate = *req.HourlyRate
	}
	wh.Notes = req.Notes

	actual := total
	if req.ActualHours != nil {
		actual = *req.ActualHours
	}
	applyHours(wh, actual)

	if err := qtx.Update(ctx, wh); err != nil {
		return WorkingHourResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return WorkingHourResponse{}, err
	}

	return mapToResponse(*wh), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	wh, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}
	if wh.IsLocked || !wh.IsEditable {
		return workinghourerrors.ErrWorkingHourLocked
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Approve moves a pending entry to approved and freezes both the entry and
// the roster entry it came from. Approving twice is rejected, so the freeze
// happens exactly once.
func (s *service) Approve(ctx context.Context, id string, req ReviewRequest) (WorkingHourResponse, error) {
	return s.review(ctx, id, StatusApproved, req)
}

func (s *service) Reject(ctx context.Context, id string, req ReviewRequest) (WorkingHourResponse, error) {
	return s.review(ctx, id, StatusRejected, req)
}

func (s *service) review(ctx context.Context, id, status string, req ReviewRequest) (WorkingHourResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkingHourResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	wh, err := qtx.FindByID(ctx, id)
	if err != nil {
		return WorkingHourResponse{}, mapStoreError(err)
	}
	if wh.Status != StatusPending {
		return WorkingHourResponse{}, workinghourerrors.ErrNotPending
	}

	wh.Status = status
	if req.Notes != nil {
		wh.Notes = req.Notes
	}
	if status == StatusApproved {
		wh.IsLocked = true
		wh.IsEditable = false
	}

	if err := qtx.Update(ctx, wh); err != nil {
		return WorkingHourResponse{}, err
	}
	if status == StatusApproved && wh.RosterEntryID != nil {
		if err := qtx.LockRosterEntry(ctx, wh.RosterEntryID.String()); err != nil {
			return WorkingHourResponse{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return WorkingHourResponse{}, err
	}

	s.logger.Info("working hour reviewed",
		zap.String("id", wh.ID.String()),
		zap.String("status", status),
	)
	return mapToResponse(*wh), nil
}

// Summarize rolls entries up per employee. Rejected entries are skipped;
// zero-hour entries count toward the entry total but not the rate mean.
func (s *service) Summarize(ctx context.Context, from, to time.Time, profileID string) (SummaryResponse, error) {
	hours, err := s.repo.FindAll(ctx, ListFilter{
		ProfileID: profileID,
		DateFrom:  &from,
		DateTo:    &to,
	})
	if err != nil {
		return SummaryResponse{}, err
	}

	type acc struct {
		summary   ProfileSummary
		rateSum   float64
		rateCount int
	}
	byProfile := map[string]*acc{}
	for _, wh := range hours {
		if wh.Status == StatusRejected {
			continue
		}
		key := wh.ProfileID.String()
		a, ok := byProfile[key]
		if !ok {
			a = &acc{summary: ProfileSummary{ProfileID: key}}
			if wh.Profile != nil {
				a.summary.ProfileName = wh.Profile.FullName
			}
			byProfile[key] = a
		}
		a.summary.Entries++
		a.summary.TotalHours += wh.ActualHours
		a.summary.OvertimeHours += wh.OvertimeHours
		a.summary.TotalPayable += wh.PayableAmount
		if wh.ActualHours > 0 {
			a.rateSum += wh.HourlyRate
			a.rateCount++
		}
	}

	profiles := make([]ProfileSummary, 0, len(byProfile))
	for _, a := range byProfile {
		a.summary.RegularHours = a.summary.TotalHours - a.summary.OvertimeHours
		if a.rateCount > 0 {
			a.summary.AvgHourlyRate = a.rateSum / float64(a.rateCount)
		}
		profiles = append(profiles, a.summary)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ProfileID < profiles[j].ProfileID
	})

	return SummaryResponse{
		DateFrom: from.Format(dateLayout),
		DateTo:   to.Format(dateLayout),
		Profiles: profiles,
	}, nil
}

func (s *service) resolveRate(ctx context.Context, override *float64, profileID string) (float64, error) {
	if override != nil {
		return *override, nil
	}
	return s.repo.FindProfileRate(ctx, profileID)
}

// applyHours sets the derived pay fields from the actual hours worked.
func applyHours(wh *WorkingHour, actual float64) {
	wh.ActualHours = actual
	overtime := actual - standardDailyHours
	if overtime < 0 {
		overtime = 0
	}
	wh.OvertimeHours = overtime
	regular := actual - overtime
	wh.PayableAmount = regular*wh.HourlyRate + overtime*wh.HourlyRate*overtimeMultiplier
}

func hoursBetween(startTime, endTime string) (float64, error) {
	start, err := time.Parse(timeLayout, startTime)
	if err != nil {
		return 0, apperror.InvalidField("start_time")
	}
	end, err := time.Parse(timeLayout, endTime)
	if err != nil {
		return 0, apperror.InvalidField("end_time")
	}
	hours := end.Sub(start).Hours()
	if hours < 0 {
		return 0, nil
	}
	return hours, nil
}

func mapStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workinghourerrors.ErrWorkingHourNotFound
	}
	return err
}

func mapToResponse(wh WorkingHour) WorkingHourResponse {
	resp := WorkingHourResponse{
		ID:            wh.ID.String(),
		ProfileID:     wh.ProfileID.String(),
		ClientID:      wh.ClientID.String(),
		ProjectID:     wh.ProjectID.String(),
		Date:          wh.Date.Format(dateLayout),
		StartTime:     wh.StartTime,
		EndTime:       wh.EndTime,
		TotalHours:    wh.TotalHours,
		ActualHours:   wh.ActualHours,
		OvertimeHours: wh.OvertimeHours,
		HourlyRate:    wh.HourlyRate,
		PayableAmount: wh.PayableAmount,
		Status:        wh.Status,
		Notes:         wh.Notes,
		IsLocked:      wh.IsLocked,
		IsEditable:    wh.IsEditable,
	}
	if wh.RosterEntryID != nil {
		id := wh.RosterEntryID.String()
		resp.RosterEntryID = &id
	}
	if wh.Profile != nil {
		resp.ProfileName = wh.Profile.FullName
	}
	return resp
}

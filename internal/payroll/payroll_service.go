package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"staffops/internal/messaging/kafka"
	"staffops/internal/notification"
	payrollerrors "staffops/internal/payroll/errors"
	"staffops/internal/shared/apperror"
	"staffops/internal/workinghour"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error

	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)
	Commit(ctx context.Context, actorID string, req CommitRequest) (CommitResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	hours    workinghour.Repository
	outbox   kafka.OutboxRepository
	notifier notification.Service
	policy   DeductionPolicy
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	hours workinghour.Repository,
	outbox kafka.OutboxRepository,
	notifier notification.Service,
	policy DeductionPolicy,
	logger *zap.Logger,
) Service {
	return &service{
		db:       db,
		repo:     repo,
		hours:    hours,
		outbox:   outbox,
		notifier: notifier,
		policy:   policy,
		logger:   logger,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error) {
	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return PayrollResponse{}, apperror.InvalidField("profile_id")
	}
	start, end, err := parsePeriod(req.PayPeriodStart, req.PayPeriodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, req.ProfileID, start, end, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	if overlap {
		return PayrollResponse{}, payrollerrors.ErrOverlappingPeriod
	}

	p := &Payroll{
		ID:              uuid.New(),
		ProfileID:       profileID,
		PayPeriodStart:  start,
		PayPeriodEnd:    end,
		TotalHours:      req.TotalHours,
		OvertimeHours:   req.OvertimeHours,
		HourlyRate:      req.HourlyRate,
		Bonus:           req.Bonus,
		Tax:             req.Tax,
		Superannuation:  req.Superannuation,
		OtherDeductions: req.OtherDeductions,
		Deductions:      req.Deductions,
		Status:          StatusPending,
	}
	if req.BankAccountID != nil {
		accountID, err := uuid.Parse(*req.BankAccountID)
		if err != nil {
			return PayrollResponse{}, apperror.InvalidField("bank_account_id")
		}
		p.BankAccountID = &accountID
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		p.CreatedBy = &actor
	}
	recompute(p)

	if err := qtx.Create(ctx, p); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*p, 0), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapToResponse(p, 0)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapStoreError(err)
	}
	links, err := s.repo.FindLinks(ctx, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p, len(links)), nil
}

// Update re-derives gross, deductions and net from the edited fields, so the
// stored row can never hold a net that disagrees with its gross.
func (s *service) Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error) {
	start, end, err := parsePeriod(req.PayPeriodStart, req.PayPeriodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapStoreError(err)
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, p.ProfileID.String(), start, end, &id)
	if err != nil {
		return PayrollResponse{}, err
	}
	if overlap {
		return PayrollResponse{}, payrollerrors.ErrOverlappingPeriod
	}

	p.PayPeriodStart = start
	p.PayPeriodEnd = end
	p.TotalHours = req.TotalHours
	p.OvertimeHours = req.OvertimeHours
	p.HourlyRate = req.HourlyRate
	p.Bonus = req.Bonus
	p.Tax = req.Tax
	p.Superannuation = req.Superannuation
	p.OtherDeductions = req.OtherDeductions
	p.Deductions = req.Deductions
	p.Status = req.Status
	if req.BankAccountID != nil {
		accountID, err := uuid.Parse(*req.BankAccountID)
		if err != nil {
			return PayrollResponse{}, apperror.InvalidField("bank_account_id")
		}
		p.BankAccountID = &accountID
	}
	if req.PaidAt != nil && *req.PaidAt != "" {
		paidAt, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			return PayrollResponse{}, apperror.InvalidField("paid_at")
		}
		p.PaidAt = &paidAt
	}
	if p.Status == StatusPaid && p.PaidAt == nil {
		now := time.Now().UTC()
		p.PaidAt = &now
	}
	if req.GrossPay != nil {
		recomputeWithGross(p, *req.GrossPay)
	} else {
		recompute(p)
	}

	if err := qtx.Update(ctx, p); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*p, 0), nil
}

// Delete removes a pending payroll together with its links, releasing the
// consumed hours back to the eligible pool.
func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}
	if p.Status != StatusPending {
		return payrollerrors.ErrNotPending
	}

	if err := qtx.DeleteLinks(ctx, id); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriod
	}
	return start, end, nil
}

func mapStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}
	return err
}

func mapToResponse(p Payroll, linkedHours int) PayrollResponse {
	resp := PayrollResponse{
		ID:              p.ID.String(),
		ProfileID:       p.ProfileID.String(),
		PayPeriodStart:  p.PayPeriodStart.Format(dateLayout),
		PayPeriodEnd:    p.PayPeriodEnd.Format(dateLayout),
		TotalHours:      p.TotalHours,
		OvertimeHours:   p.OvertimeHours,
		HourlyRate:      p.HourlyRate,
		GrossPay:        p.GrossPay,
		OvertimePay:     p.OvertimePay,
		Bonus:           p.Bonus,
		Tax:             p.Tax,
		Superannuation:  p.Superannuation,
		OtherDeductions: p.OtherDeductions,
		Deductions:      p.Deductions,
		NetPay:          p.NetPay,
		Status:          p.Status,
		LinkedHours:     linkedHours,
	}
	if p.Profile != nil {
		resp.ProfileName = p.Profile.FullName
	}
	if p.BankAccountID != nil {
		v := p.BankAccountID.String()
		resp.BankAccountID = &v
	}
	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

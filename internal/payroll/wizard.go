package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"staffops/internal/events"
	"staffops/internal/messaging/kafka"
	"staffops/internal/notification"
	payrollerrors "staffops/internal/payroll/errors"
	"staffops/internal/shared/apperror"
	"staffops/internal/shared/contextutil"
	"staffops/internal/workinghour"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Preview runs the first two wizard stages: the overlap gate, then the
// in-memory pay computation. Nothing is written. Any selected employee whose
// period collides with an existing payroll blocks the whole preview, since
// the overlap check is the mechanism preventing double payment. Employees
// with zero eligible hours are dropped from the preview rather than shown as
// zero-dollar rows.
func (s *service) Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error) {
	start, end, err := parsePeriod(req.PayPeriodStart, req.PayPeriodEnd)
	if err != nil {
		return PreviewResponse{}, err
	}

	for _, profileID := range req.ProfileIDs {
		overlap, err := s.repo.HasOverlappingPeriod(ctx, profileID, start, end, nil)
		if err != nil {
			return PreviewResponse{}, err
		}
		if overlap {
			return PreviewResponse{}, payrollerrors.ErrOverlappingPeriod
		}
	}

	rows := make([]PreviewRow, 0, len(req.ProfileIDs))
	for _, profileID := range req.ProfileIDs {
		eligible, err := s.hours.FindEligible(ctx, profileID, start, end)
		if err != nil {
			return PreviewResponse{}, err
		}
		if len(eligible) == 0 {
			continue
		}
		row := s.buildRow(profileID, eligible)
		if row.TotalHours == 0 {
			// all-zero-hour records price to nothing; a $0 payroll would
			// still claim the period and block a real one later
			continue
		}
		rows = append(rows, row)
	}

	return PreviewResponse{
		PayPeriodStart: req.PayPeriodStart,
		PayPeriodEnd:   req.PayPeriodEnd,
		Rows:           rows,
	}, nil
}

// Commit is the third wizard stage. Each employee's payroll row, link rows
// and outbox event commit in one transaction; there is no cross-employee
// rollback, so a mid-batch failure leaves earlier payrolls standing and is
// reported in that employee's result.
func (s *service) Commit(ctx context.Context, actorID string, req CommitRequest) (CommitResponse, error) {
	start, end, err := parsePeriod(req.PayPeriodStart, req.PayPeriodEnd)
	if err != nil {
		return CommitResponse{}, err
	}

	var bankAccountID *uuid.UUID
	if req.BankAccountID != nil {
		accountID, err := uuid.Parse(*req.BankAccountID)
		if err != nil {
			return CommitResponse{}, apperror.InvalidField("bank_account_id")
		}
		bankAccountID = &accountID
	}
	var createdBy *uuid.UUID
	if actor, err := uuid.Parse(actorID); err == nil {
		createdBy = &actor
	}

	resp := CommitResponse{
		PayPeriodStart: req.PayPeriodStart,
		PayPeriodEnd:   req.PayPeriodEnd,
		Results:        make([]CommitResult, 0, len(req.ProfileIDs)),
	}

	for _, profileID := range req.ProfileIDs {
		result := s.commitOne(ctx, profileID, start, end, bankAccountID, createdBy)
		if result.Status == CommitCreated {
			resp.Created++
		}
		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

func (s *service) commitOne(
	ctx context.Context,
	profileID string,
	start, end time.Time,
	bankAccountID, createdBy *uuid.UUID,
) CommitResult {
	result := CommitResult{ProfileID: profileID, Status: CommitFailed}

	profileUUID, err := uuid.Parse(profileID)
	if err != nil {
		return failed(result, "invalid profile id")
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, profileID, start, end, nil)
	if err != nil {
		return failed(result, err.Error())
	}
	if overlap {
		return failed(result, "a payroll already covers part of this period")
	}

	eligible, err := s.hours.FindEligible(ctx, profileID, start, end)
	if err != nil {
		return failed(result, err.Error())
	}
	if len(eligible) == 0 {
		result.Status = CommitSkipped
		reason := "no eligible working hours"
		result.Reason = &reason
		return result
	}

	row := s.buildRow(profileID, eligible)
	if row.TotalHours == 0 {
		result.Status = CommitSkipped
		reason := "eligible hours total zero"
		result.Reason = &reason
		return result
	}

	p := &Payroll{
		ID:             uuid.New(),
		ProfileID:      profileUUID,
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		TotalHours:     row.TotalHours,
		OvertimeHours:  row.OvertimeHours,
		HourlyRate:     row.AvgHourlyRate,
		GrossPay:       row.GrossPay,
		OvertimePay:    row.OvertimePay,
		Deductions:     row.Deductions,
		NetPay:         row.NetPay,
		Status:         StatusPending,
		BankAccountID:  bankAccountID,
		CreatedBy:      createdBy,
	}

	links := make([]PayrollWorkingHourLink, len(eligible))
	for i, wh := range eligible {
		links[i] = PayrollWorkingHourLink{
			ID:            uuid.New(),
			PayrollID:     p.ID,
			WorkingHourID: wh.ID,
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return failed(result, err.Error())
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, p); err != nil {
		return failed(result, err.Error())
	}
	if err := qtx.CreateLinks(ctx, links); err != nil {
		return failed(result, err.Error())
	}
	if err := s.stageCreatedEvent(ctx, tx, p); err != nil {
		return failed(result, err.Error())
	}
	if err := tx.Commit(); err != nil {
		return failed(result, err.Error())
	}

	s.notifyCreated(ctx, p, len(links))

	s.logger.Info("payroll committed",
		zap.String("payroll_id", p.ID.String()),
		zap.String("profile_id", profileID),
		zap.Int("linked_hours", len(links)),
		zap.Float64("net_pay", p.NetPay),
	)

	payrollID := p.ID.String()
	result.Status = CommitCreated
	result.PayrollID = &payrollID
	result.LinkedHours = len(links)
	return result
}

// buildRow aggregates one employee's eligible hours and prices them. The
// average rate is a simple mean across the records, not hour-weighted.
func (s *service) buildRow(profileID string, eligible []workinghour.WorkingHour) PreviewRow {
	row := PreviewRow{
		ProfileID:      profileID,
		WorkingHourIDs: make([]string, len(eligible)),
	}

	var rateSum float64
	for i, wh := range eligible {
		row.WorkingHourIDs[i] = wh.ID.String()
		row.TotalHours += wh.ActualHours
		row.OvertimeHours += wh.OvertimeHours
		rateSum += wh.HourlyRate
		if row.ProfileName == "" && wh.Profile != nil {
			row.ProfileName = wh.Profile.FullName
		}
	}
	row.RegularHours = row.TotalHours - row.OvertimeHours
	row.AvgHourlyRate = rateSum / float64(len(eligible))

	pay := computePay(row.RegularHours, row.OvertimeHours, row.AvgHourlyRate, s.policy)
	row.RegularPay = pay.RegularPay
	row.OvertimePay = pay.OvertimePay
	row.GrossPay = pay.GrossPay
	row.Deductions = pay.Deductions
	row.NetPay = pay.NetPay
	return row
}

// stageCreatedEvent writes the lifecycle event into the outbox inside the
// payroll's own transaction, so either both land or neither does.
func (s *service) stageCreatedEvent(ctx context.Context, tx *sql.Tx, p *Payroll) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.PayrollCreatedEvent{
		EventType:      "payroll.created",
		PayrollID:      p.ID.String(),
		ProfileID:      p.ProfileID.String(),
		PayPeriodStart: p.PayPeriodStart.Format(dateLayout),
		PayPeriodEnd:   p.PayPeriodEnd.Format(dateLayout),
		NetPay:         p.NetPay,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Stage(ctx, kafka.OutboxMessage{
		ID:          uuid.New().String(),
		RequestID:   contextutil.GetRequestID(ctx),
		Aggregate:   "payroll",
		AggregateID: p.ID.String(),
		EventType:   "payroll.created",
		Topic:       events.PayrollCreatedTopic,
		Payload:     payload,
		Status:      kafka.OutboxStatusPending,
		NextRetryAt: time.Now().UTC(),
	})
}

func (s *service) notifyCreated(ctx context.Context, p *Payroll, linkedHours int) {
	if s.notifier == nil {
		return
	}

	relatedID := p.ID.String()
	_, err := s.notifier.Create(ctx, notification.CreateNotificationRequest{
		RecipientProfileID: p.ProfileID.String(),
		Title:              "Payroll generated",
		Message: fmt.Sprintf(
			"A payroll for %s to %s was generated covering %d working hour entries. Net pay: %.2f.",
			p.PayPeriodStart.Format(dateLayout), p.PayPeriodEnd.Format(dateLayout), linkedHours, p.NetPay,
		),
		Type:       notification.TypeSuccess,
		ActionType: ptr("payroll_created"),
		RelatedID:  &relatedID,
	})
	if err != nil {
		s.logger.Warn("payroll notification failed",
			zap.String("payroll_id", p.ID.String()),
			zap.Error(err),
		)
	}
}

func failed(result CommitResult, reason string) CommitResult {
	result.Status = CommitFailed
	result.Reason = &reason
	return result
}

func ptr(v string) *string { return &v }

package payroll

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"staffops/internal/messaging/kafka"
	"staffops/internal/notification"
	payrollerrors "staffops/internal/payroll/errors"
	"staffops/internal/workinghour"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRepo struct {
	withTxFn      func(tx *sql.Tx) Repository
	createFn      func(ctx context.Context, p *Payroll) error
	findAllFn     func(ctx context.Context, filter ListFilter) ([]Payroll, error)
	findByIDFn    func(ctx context.Context, id string) (*Payroll, error)
	updateFn      func(ctx context.Context, p *Payroll) error
	deleteFn      func(ctx context.Context, id string) error
	hasOverlapFn  func(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error)
	createLinksFn func(ctx context.Context, links []PayrollWorkingHourLink) error
	findLinksFn   func(ctx context.Context, payrollID string) ([]PayrollWorkingHourLink, error)
	deleteLinksFn func(ctx context.Context, payrollID string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, p *Payroll) error {
	return f.createFn(ctx, p)
}
func (f *fakeRepo) FindAll(ctx context.Context, filter ListFilter) ([]Payroll, error) {
	return f.findAllFn(ctx, filter)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Payroll, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, p *Payroll) error { return f.updateFn(ctx, p) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error  { return f.deleteFn(ctx, id) }
func (f *fakeRepo) HasOverlappingPeriod(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
	return f.hasOverlapFn(ctx, profileID, start, end, excludeID)
}
func (f *fakeRepo) CreateLinks(ctx context.Context, links []PayrollWorkingHourLink) error {
	return f.createLinksFn(ctx, links)
}
func (f *fakeRepo) FindLinks(ctx context.Context, payrollID string) ([]PayrollWorkingHourLink, error) {
	return f.findLinksFn(ctx, payrollID)
}
func (f *fakeRepo) DeleteLinks(ctx context.Context, payrollID string) error {
	return f.deleteLinksFn(ctx, payrollID)
}

type fakeHours struct {
	findEligibleFn func(ctx context.Context, profileID string, from, to time.Time) ([]workinghour.WorkingHour, error)
}

func (f *fakeHours) WithTx(tx *sql.Tx) workinghour.Repository { return f }
func (f *fakeHours) Create(ctx context.Context, wh *workinghour.WorkingHour) error {
	return errors.New("not implemented")
}
func (f *fakeHours) FindAll(ctx context.Context, filter workinghour.ListFilter) ([]workinghour.WorkingHour, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeHours) FindByID(ctx context.Context, id string) (*workinghour.WorkingHour, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeHours) Update(ctx context.Context, wh *workinghour.WorkingHour) error {
	return errors.New("not implemented")
}
func (f *fakeHours) Delete(ctx context.Context, id string) error { return errors.New("not implemented") }
func (f *fakeHours) FindEligible(ctx context.Context, profileID string, from, to time.Time) ([]workinghour.WorkingHour, error) {
	return f.findEligibleFn(ctx, profileID, from, to)
}
func (f *fakeHours) LockRosterEntry(ctx context.Context, rosterEntryID string) error {
	return errors.New("not implemented")
}
func (f *fakeHours) FindProfileRate(ctx context.Context, profileID string) (float64, error) {
	return 0, errors.New("not implemented")
}

type fakeOutbox struct {
	staged []kafka.OutboxMessage
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Stage(ctx context.Context, msg kafka.OutboxMessage) error {
	f.staged = append(f.staged, msg)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxMessage, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeNotifier struct {
	created []notification.CreateNotificationRequest
	err     error
}

func (f *fakeNotifier) Create(ctx context.Context, req notification.CreateNotificationRequest) (notification.NotificationResponse, error) {
	if f.err != nil {
		return notification.NotificationResponse{}, f.err
	}
	f.created = append(f.created, req)
	return notification.NotificationResponse{}, nil
}
func (f *fakeNotifier) ListForRecipient(ctx context.Context, profileID string, unreadOnly bool) ([]notification.NotificationResponse, error) {
	return nil, nil
}
func (f *fakeNotifier) MarkRead(ctx context.Context, id string) error { return nil }
func (f *fakeNotifier) MarkAllRead(ctx context.Context, profileID string) (int64, error) {
	return 0, nil
}

func approvedHour(profileID uuid.UUID, date string, hours, rate float64) workinghour.WorkingHour {
	d, _ := time.Parse("2006-01-02", date)
	return workinghour.WorkingHour{
		ID:          uuid.New(),
		ProfileID:   profileID,
		Date:        d,
		ActualHours: hours,
		HourlyRate:  rate,
		Status:      workinghour.StatusApproved,
		Profile:     &workinghour.ProfileRef{FullName: "Test Employee"},
	}
}

func newWizardService(t *testing.T, db *sql.DB, repo Repository, hours workinghour.Repository, outbox kafka.OutboxRepository, notifier notification.Service) Service {
	t.Helper()
	return NewService(db, repo, hours, outbox, notifier, DefaultDeductionPolicy(), zap.NewNop())
}

func TestWizard_PreviewThenCommit_EndToEnd(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employee := uuid.New()
	hours := []workinghour.WorkingHour{
		approvedHour(employee, "2024-01-01", 8, 20),
		approvedHour(employee, "2024-01-02", 8, 20),
	}

	var createdPayroll *Payroll
	var createdLinks []PayrollWorkingHourLink
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.hasOverlapFn = func(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
		return false, nil
	}
	repo.createFn = func(ctx context.Context, p *Payroll) error { createdPayroll = p; return nil }
	repo.createLinksFn = func(ctx context.Context, links []PayrollWorkingHourLink) error {
		createdLinks = links
		return nil
	}

	hoursRepo := &fakeHours{}
	consumed := false
	hoursRepo.findEligibleFn = func(ctx context.Context, profileID string, from, to time.Time) ([]workinghour.WorkingHour, error) {
		if consumed {
			return nil, nil
		}
		return hours, nil
	}

	outbox := &fakeOutbox{}
	notifier := &fakeNotifier{}
	svc := newWizardService(t, db, repo, hoursRepo, outbox, notifier)
	ctx := context.Background()

	req := PreviewRequest{
		ProfileIDs:     []string{employee.String()},
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-07",
	}

	preview, err := svc.Preview(ctx, req)
	assert.NoError(t, err)
	assert.Len(t, preview.Rows, 1)
	row := preview.Rows[0]
	assert.Equal(t, 16.0, row.TotalHours)
	assert.Equal(t, 16.0, row.RegularHours)
	assert.Equal(t, 0.0, row.OvertimeHours)
	assert.Equal(t, 320.0, row.GrossPay)
	assert.Equal(t, 32.0, row.Deductions)
	assert.Equal(t, 288.0, row.NetPay)

	// previewing again with nothing changed yields the same output
	again, err := svc.Preview(ctx, req)
	assert.NoError(t, err)
	assert.Equal(t, preview, again)

	mock.ExpectBegin()
	mock.ExpectCommit()
	commit, err := svc.Commit(ctx, uuid.New().String(), CommitRequest{
		ProfileIDs:     req.ProfileIDs,
		PayPeriodStart: req.PayPeriodStart,
		PayPeriodEnd:   req.PayPeriodEnd,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, commit.Created)
	assert.Equal(t, CommitCreated, commit.Results[0].Status)
	assert.Equal(t, 2, commit.Results[0].LinkedHours)

	assert.NotNil(t, createdPayroll)
	assert.Equal(t, StatusPending, createdPayroll.Status)
	assert.Equal(t, 288.0, createdPayroll.NetPay)
	assert.Len(t, createdLinks, 2)
	for _, link := range createdLinks {
		assert.Equal(t, createdPayroll.ID, link.PayrollID)
	}
	assert.Len(t, outbox.staged, 1)
	assert.Equal(t, "payroll.created", outbox.staged[0].EventType)
	assert.Len(t, notifier.created, 1)
	assert.NoError(t, mock.ExpectationsWereMet())

	// a second run over the same window finds the hours consumed
	consumed = true
	empty, err := svc.Preview(ctx, req)
	assert.NoError(t, err)
	assert.Empty(t, empty.Rows)
}

func TestWizard_Preview_OverlapIsHardGate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.hasOverlapFn = func(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
		return true, nil
	}

	hoursRepo := &fakeHours{}
	hoursRepo.findEligibleFn = func(ctx context.Context, profileID string, from, to time.Time) ([]workinghour.WorkingHour, error) {
		t.Fatal("eligibility must not be computed when the overlap gate trips")
		return nil, nil
	}

	svc := newWizardService(t, db, repo, hoursRepo, &fakeOutbox{}, &fakeNotifier{})

	_, err := svc.Preview(context.Background(), PreviewRequest{
		ProfileIDs:     []string{uuid.New().String()},
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-07",
	})
	assert.ErrorIs(t, err, payrollerrors.ErrOverlappingPeriod)
}

func TestWizard_Commit_PerEmployeeOutcomes(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	withHours := uuid.New()
	withoutHours := uuid.New()
	overlapping := uuid.New()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.hasOverlapFn = func(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
		return profileID == overlapping.String(), nil
	}
	repo.createFn = func(ctx context.Context, p *Payroll) error { return nil }
	repo.createLinksFn = func(ctx context.Context, links []PayrollWorkingHourLink) error { return nil }

	hoursRepo := &fakeHours{}
	hoursRepo.findEligibleFn = func(ctx context.Context, profileID string, from, to time.Time) ([]workinghour.WorkingHour, error) {
		if profileID == withHours.String() {
			return []workinghour.WorkingHour{approvedHour(withHours, "2024-01-03", 8, 25)}, nil
		}
		return nil, nil
	}

	svc := newWizardService(t, db, repo, hoursRepo, &fakeOutbox{}, &fakeNotifier{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Commit(context.Background(), "", CommitRequest{
		ProfileIDs:     []string{withHours.String(), withoutHours.String(), overlapping.String()},
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-07",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Created)

	byProfile := map[string]CommitResult{}
	for _, r := range resp.Results {
		byProfile[r.ProfileID] = r
	}
	assert.Equal(t, CommitCreated, byProfile[withHours.String()].Status)
	assert.Equal(t, CommitSkipped, byProfile[withoutHours.String()].Status)
	assert.Equal(t, CommitFailed, byProfile[overlapping.String()].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWizard_Commit_NotificationFailureDoesNotFailCommit(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employee := uuid.New()
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.hasOverlapFn = func(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
		return false, nil
	}
	repo.createFn = func(ctx context.Context, p *Payroll) error { return nil }
	repo.createLinksFn = func(ctx context.Context, links []PayrollWorkingHourLink) error { return nil }

	hoursRepo := &fakeHours{}
	hoursRepo.findEligibleFn = func(ctx context.Context, profileID string, from, to time.Time) ([]workinghour.WorkingHour, error) {
		return []workinghour.WorkingHour{approvedHour(employee, "2024-01-03", 8, 25)}, nil
	}

	notifier := &fakeNotifier{err: errors.New("notification store down")}
	svc := newWizardService(t, db, repo, hoursRepo, &fakeOutbox{}, notifier)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Commit(context.Background(), "", CommitRequest{
		ProfileIDs:     []string{employee.String()},
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-07",
	})
	assert.NoError(t, err)
	assert.Equal(t, CommitCreated, resp.Results[0].Status)
}

func TestOverlapBoundary_TouchingPeriodsOverlap(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	// existing payroll ends exactly where the new window starts
	existingEnd, _ := time.Parse("2006-01-02", "2024-01-07")

	repo := &fakeRepo{}
	repo.hasOverlapFn = func(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
		existingStart, _ := time.Parse("2006-01-02", "2024-01-01")
		return !start.After(existingEnd) && !existingStart.After(end), nil
	}

	hoursRepo := &fakeHours{}
	hoursRepo.findEligibleFn = func(ctx context.Context, profileID string, from, to time.Time) ([]workinghour.WorkingHour, error) {
		return nil, nil
	}

	svc := newWizardService(t, db, repo, hoursRepo, &fakeOutbox{}, &fakeNotifier{})

	_, err := svc.Preview(context.Background(), PreviewRequest{
		ProfileIDs:     []string{uuid.New().String()},
		PayPeriodStart: "2024-01-07",
		PayPeriodEnd:   "2024-01-14",
	})
	assert.ErrorIs(t, err, payrollerrors.ErrOverlappingPeriod)
}

func TestWizard_ZeroHourTotalsDropped(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employee := uuid.New()
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.hasOverlapFn = func(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
		return false, nil
	}
	repo.createFn = func(ctx context.Context, p *Payroll) error {
		t.Fatal("a zero-dollar payroll must not be created")
		return nil
	}

	// eligible record whose clamped shift priced to zero hours
	hoursRepo := &fakeHours{}
	hoursRepo.findEligibleFn = func(ctx context.Context, profileID string, from, to time.Time) ([]workinghour.WorkingHour, error) {
		return []workinghour.WorkingHour{approvedHour(employee, "2024-01-02", 0, 20)}, nil
	}

	svc := newWizardService(t, db, repo, hoursRepo, &fakeOutbox{}, &fakeNotifier{})
	ctx := context.Background()

	preview, err := svc.Preview(ctx, PreviewRequest{
		ProfileIDs:     []string{employee.String()},
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-07",
	})
	assert.NoError(t, err)
	assert.Empty(t, preview.Rows)

	resp, err := svc.Commit(ctx, uuid.New().String(), CommitRequest{
		ProfileIDs:     []string{employee.String()},
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-07",
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, resp.Created)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, CommitSkipped, resp.Results[0].Status)
	assert.Equal(t, "eligible hours total zero", *resp.Results[0].Reason)
}

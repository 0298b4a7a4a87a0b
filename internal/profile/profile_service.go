package profile

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	profileerrors "staffops/internal/profile/errors"
	"staffops/internal/shared/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Columns the operations endpoint may sort by. Anything else is rejected
// before the value is interpolated into ORDER BY.
var sortableColumns = map[string]bool{
	"full_name":   true,
	"email":       true,
	"role":        true,
	"hourly_rate": true,
	"start_date":  true,
	"created_at":  true,
}

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]ProfileResponse, error)
	GetByID(ctx context.Context, id string) (ProfileResponse, error)
	Update(ctx context.Context, id string, req UpdateProfileRequest) (ProfileResponse, error)
	Delete(ctx context.Context, id string) error
	Paginate(ctx context.Context, req OperationRequest) ([]ProfileResponse, response.PaginationMeta, error)
	Export(ctx context.Context, req OperationRequest) (ExportPayload, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error) {
	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return ProfileResponse{}, err
	}

	p := &Profile{
		ID:             uuid.New(),
		FullName:       req.FullName,
		Email:          strings.ToLower(req.Email),
		Phone:          req.Phone,
		Role:           req.Role,
		EmploymentType: req.EmploymentType,
		HourlyRate:     req.HourlyRate,
		Salary:         req.Salary,
		IsActive:       true,
		StartDate:      startDate,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return ProfileResponse{}, mapStoreError(err)
	}

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]ProfileResponse, error) {
	profiles, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProfileResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ProfileResponse{}, mapStoreError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProfileRequest) (ProfileResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return ProfileResponse{}, err
	}

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ProfileResponse{}, mapStoreError(err)
	}

	p.FullName = req.FullName
	p.Email = strings.ToLower(req.Email)
	p.Phone = req.Phone
	p.Role = req.Role
	p.EmploymentType = req.EmploymentType
	p.HourlyRate = req.HourlyRate
	p.Salary = req.Salary
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.StartDate = startDate

	if err := qtx.Update(ctx, p); err != nil {
		return ProfileResponse{}, mapStoreError(err)
	}
	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapStoreError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) Paginate(ctx context.Context, req OperationRequest) ([]ProfileResponse, response.PaginationMeta, error) {
	q, err := normalizeListQuery(req)
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}

	profiles, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}

	resp := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = mapToResponse(p)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	return resp, response.NewPaginationMeta(total, page, pageSize), nil
}

func normalizeListQuery(req OperationRequest) (ListQuery, error) {
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	if !sortableColumns[sortBy] {
		return ListQuery{}, profileerrors.ErrInvalidSortColumn
	}

	sortOrder := strings.ToLower(req.SortOrder)
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	q := ListQuery{
		Search:    req.Search,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}

	if req.Operation == "paginate" {
		page := req.Page
		if page < 1 {
			page = 1
		}
		pageSize := req.PageSize
		if pageSize < 1 {
			pageSize = 10
		}
		q.Offset = (page - 1) * pageSize
		q.Limit = pageSize
	}

	return q, nil
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *v)
	if err != nil {
		return nil, profileerrors.ErrInvalidDateFormat
	}
	return &t, nil
}

func mapStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profileerrors.ErrProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return profileerrors.ErrEmailAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return profileerrors.ErrEmailAlreadyExists
	}

	return err
}

func mapToResponse(p Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:             p.ID.String(),
		FullName:       p.FullName,
		Email:          p.Email,
		Phone:          p.Phone,
		Role:           p.Role,
		EmploymentType: p.EmploymentType,
		HourlyRate:     p.HourlyRate,
		Salary:         p.Salary,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
	if p.StartDate != nil {
		v := p.StartDate.Format("2006-01-02")
		resp.StartDate = &v
	}
	return resp
}

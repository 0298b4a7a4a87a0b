package project

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"staffops/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound   = apperror.New(apperror.CodeNotFound, "project not found", http.StatusNotFound)
	ErrClientNotFound    = apperror.New(apperror.CodeInvalidInput, "client does not exist", http.StatusBadRequest)
	ErrInvalidDateFormat = apperror.New(apperror.CodeInvalidInput, "invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
	ErrInvalidDateRange  = apperror.New(apperror.CodeInvalidInput, "start_date must be before or equal end_date", http.StatusBadRequest)
)

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	GetAll(ctx context.Context, status string) ([]ProjectResponse, error)
	GetByID(ctx context.Context, id string) (ProjectResponse, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return ProjectResponse{}, apperror.InvalidField("Client Id")
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return ProjectResponse{}, err
	}

	exists, err := s.repo.ClientExists(ctx, req.ClientID)
	if err != nil {
		return ProjectResponse{}, err
	}
	if !exists {
		return ProjectResponse{}, ErrClientNotFound
	}

	p := &Project{
		ID:          uuid.New(),
		Name:        req.Name,
		ClientID:    clientID,
		Description: req.Description,
		Status:      StatusActive,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return ProjectResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]ProjectResponse, error) {
	projects, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	resp := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProjectResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProjectResponse{}, ErrProjectNotFound
		}
		return ProjectResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return ProjectResponse{}, apperror.InvalidField("Client Id")
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return ProjectResponse{}, err
	}

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProjectResponse{}, ErrProjectNotFound
		}
		return ProjectResponse{}, err
	}

	exists, err := qtx.ClientExists(ctx, req.ClientID)
	if err != nil {
		return ProjectResponse{}, err
	}
	if !exists {
		return ProjectResponse{}, ErrClientNotFound
	}

	p.Name = req.Name
	p.ClientID = clientID
	p.Description = req.Description
	p.Status = req.Status
	p.StartDate = startDate
	p.EndDate = endDate

	if err := qtx.Update(ctx, p); err != nil {
		return ProjectResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ProjectResponse{}, err
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
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func parseDateRange(start, end *string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time

	if start != nil && *start != "" {
		t, err := time.Parse("2006-01-02", *start)
		if err != nil {
			return nil, nil, ErrInvalidDateFormat
		}
		startDate = &t
	}
	if end != nil && *end != "" {
		t, err := time.Parse("2006-01-02", *end)
		if err != nil {
			return nil, nil, ErrInvalidDateFormat
		}
		endDate = &t
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, nil, ErrInvalidDateRange
	}

	return startDate, endDate, nil
}

func mapToResponse(p Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		ClientID:    p.ClientID.String(),
		Description: p.Description,
		Status:      p.Status,
	}
	if p.Client != nil {
		resp.ClientName = p.Client.Name
	}
	if p.StartDate != nil {
		v := p.StartDate.Format("2006-01-02")
		resp.StartDate = &v
	}
	if p.EndDate != nil {
		v := p.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	return resp
}

package client

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"staffops/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound = apperror.New(apperror.CodeNotFound, "client not found", http.StatusNotFound)
	ErrEmailTaken     = apperror.New(apperror.CodeConflict, "a client with this email already exists", http.StatusConflict)
)

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	GetAll(ctx context.Context, status string) ([]ClientResponse, error)
	GetByID(ctx context.Context, id string) (ClientResponse, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error) {
	c := &Client{
		ID:      uuid.New(),
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Status:  StatusActive,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return ClientResponse{}, mapStoreError(err)
	}

	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]ClientResponse, error) {
	clients, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	resp := make([]ClientResponse, len(clients))
	for i, c := range clients {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClientResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ClientResponse{}, mapStoreError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ClientResponse{}, mapStoreError(err)
	}

	c.Name = req.Name
	c.Company = req.Company
	c.Email = req.Email
	c.Phone = req.Phone
	c.Address = req.Address
	c.Status = req.Status

	if err := qtx.Update(ctx, c); err != nil {
		return ClientResponse{}, mapStoreError(err)
	}
	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	return mapToResponse(*c), nil
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
		return mapStoreError(err)
	}

	return tx.Commit()
}

func mapStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrClientNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return ErrEmailTaken
	}

	return err
}

func mapToResponse(c Client) ClientResponse {
	return ClientResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		Company: c.Company,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		Status:  c.Status,
	}
}

package bankaccount

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
	ErrAccountNotFound    = apperror.New(apperror.CodeNotFound, "bank account not found", http.StatusNotFound)
	ErrAccountNumberTaken = apperror.New(apperror.CodeConflict, "an account with this number already exists", http.StatusConflict)
)

//go:generate mockgen -source=bankaccount_service.go -destination=mock/bankaccount_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateBankAccountRequest) (BankAccountResponse, error)
	GetAll(ctx context.Context, companyOnly bool) ([]BankAccountResponse, error)
	GetByID(ctx context.Context, id string) (BankAccountResponse, error)
	Update(ctx context.Context, id string, req UpdateBankAccountRequest) (BankAccountResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateBankAccountRequest) (BankAccountResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BankAccountResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var profileID *uuid.UUID
	if req.ProfileID != nil && *req.ProfileID != "" {
		parsed, err := uuid.Parse(*req.ProfileID)
		if err != nil {
			return BankAccountResponse{}, apperror.InvalidField("Profile Id")
		}
		profileID = &parsed
	}

	// Only one primary account at a time.
	if req.IsPrimary {
		if err := qtx.ClearPrimary(ctx); err != nil {
			return BankAccountResponse{}, err
		}
	}

	b := &BankAccount{
		ID:            uuid.New(),
		BankName:      req.BankName,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		BSB:           req.BSB,
		ProfileID:     profileID,
		IsPrimary:     req.IsPrimary,
	}

	if err := qtx.Create(ctx, b); err != nil {
		return BankAccountResponse{}, mapStoreError(err)
	}
	if err := tx.Commit(); err != nil {
		return BankAccountResponse{}, err
	}

	return mapToResponse(*b), nil
}

func (s *service) GetAll(ctx context.Context, companyOnly bool) ([]BankAccountResponse, error) {
	var (
		accounts []BankAccount
		err      error
	)
	if companyOnly {
		accounts, err = s.repo.FindCompanyAccounts(ctx)
	} else {
		accounts, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]BankAccountResponse, len(accounts))
	for i, b := range accounts {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (BankAccountResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return BankAccountResponse{}, mapStoreError(err)
	}
	return mapToResponse(*b), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateBankAccountRequest) (BankAccountResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BankAccountResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		return BankAccountResponse{}, mapStoreError(err)
	}

	if req.IsPrimary && !b.IsPrimary {
		if err := qtx.ClearPrimary(ctx); err != nil {
			return BankAccountResponse{}, err
		}
	}

	b.BankName = req.BankName
	b.AccountName = req.AccountName
	b.AccountNumber = req.AccountNumber
	b.BSB = req.BSB
	b.IsPrimary = req.IsPrimary

	if err := qtx.Update(ctx, b); err != nil {
		return BankAccountResponse{}, mapStoreError(err)
	}
	if err := tx.Commit(); err != nil {
		return BankAccountResponse{}, err
	}

	return mapToResponse(*b), nil
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

func mapStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAccountNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAccountNumberTaken
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return ErrAccountNumberTaken
	}

	return err
}

func mapToResponse(b BankAccount) BankAccountResponse {
	resp := BankAccountResponse{
		ID:            b.ID.String(),
		BankName:      b.BankName,
		AccountName:   b.AccountName,
		AccountNumber: b.AccountNumber,
		BSB:           b.BSB,
		IsPrimary:     b.IsPrimary,
	}
	if b.ProfileID != nil {
		v := b.ProfileID.String()
		resp.ProfileID = &v
	}
	return resp
}

package query

import (
	"context"

	"github.com/eaglebank/accounts/internal/cqrs"
	"github.com/eaglebank/accounts/internal/models"
)

// AccountReader is the store surface the query side reads from.
type AccountReader interface {
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
}

type AccountQueryService struct {
	store AccountReader
}

func NewAccountQueryService(store AccountReader) *AccountQueryService {
	return &AccountQueryService{store: store}
}

func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error) {
	account, err := s.store.GetByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return account.View(), nil
}

func (s *AccountQueryService) ListAccounts(ctx context.Context, _ cqrs.ListAccountsQuery) ([]models.AccountView, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return models.Views(accounts), nil
}

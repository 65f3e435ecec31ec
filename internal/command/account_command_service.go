package command

import (
	"context"
	"time"

	"github.com/eaglebank/accounts/internal/cqrs"
	"github.com/eaglebank/accounts/internal/events"
	"github.com/eaglebank/accounts/internal/models"
	"go.uber.org/zap"
)

// AccountWriter is the store surface the command side writes through.
type AccountWriter interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// EventPublisher appends lifecycle events to a stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// AccountCommandService writes account state and announces each change.
type AccountCommandService struct {
	store     AccountWriter
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewAccountCommandService(store AccountWriter, publisher EventPublisher, logger *zap.Logger) *AccountCommandService {
	return &AccountCommandService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateAccount assigns the join date and persists the account. The store
// assigns the ID.
func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	now := s.now().UTC()
	account := &models.Account{
		Name:        cmd.Name,
		Email:       cmd.Email,
		Address:     cmd.Address,
		PhoneNumber: cmd.PhoneNumber,
		DateJoined:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := s.store.Create(ctx, account); err != nil {
		return nil, err
	}
	s.publish(ctx, events.AccountCreated, events.AccountCreatedEvent{
		ID:         account.ID,
		Name:       account.Name,
		Email:      account.Email,
		DateJoined: account.DateJoined.Format(models.DateLayout),
	})
	return account, nil
}

// UpdateAccount replaces the mutable fields of an existing account.
func (s *AccountCommandService) UpdateAccount(ctx context.Context, cmd cqrs.UpdateAccountCommand) (*models.Account, error) {
	account, err := s.store.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	account.Name = cmd.Name
	account.Email = cmd.Email
	account.Address = cmd.Address
	account.PhoneNumber = cmd.PhoneNumber
	if err := s.store.Update(ctx, account); err != nil {
		return nil, err
	}
	s.publish(ctx, events.AccountUpdated, events.AccountUpdatedEvent{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
	})
	return account, nil
}

// DeleteAccount removes the account if it exists. Deleting an unknown ID is
// not an error.
func (s *AccountCommandService) DeleteAccount(ctx context.Context, cmd cqrs.DeleteAccountCommand) error {
	deleted, err := s.store.Delete(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if deleted {
		s.publish(ctx, events.AccountDeleted, events.AccountDeletedEvent{ID: cmd.ID})
	}
	return nil
}

func (s *AccountCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, eventType, data); err != nil {
		s.logger.Warn("failed to publish account event", zap.String("type", eventType), zap.Error(err))
	}
}

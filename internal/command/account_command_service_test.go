package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eaglebank/accounts/internal/cqrs"
	"github.com/eaglebank/accounts/internal/events"
	"github.com/eaglebank/accounts/internal/models"
	"github.com/eaglebank/accounts/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- fakes ----

type memoryStore struct {
	accounts map[int64]*models.Account
	nextID   int64
	updated  []*models.Account
}

func newMemoryStore() *memoryStore {
	return &memoryStore{accounts: map[int64]*models.Account{}}
}

func (m *memoryStore) Create(_ context.Context, a *models.Account) error {
	m.nextID++
	a.ID = m.nextID
	stored := *a
	m.accounts[a.ID] = &stored
	return nil
}

func (m *memoryStore) GetByID(_ context.Context, id int64) (*models.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	found := *a
	return &found, nil
}

func (m *memoryStore) Update(_ context.Context, a *models.Account) error {
	stored, ok := m.accounts[a.ID]
	if !ok {
		return repository.ErrAccountNotFound
	}
	m.updated = append(m.updated, a)
	stored.Name, stored.Email, stored.Address, stored.PhoneNumber = a.Name, a.Email, a.Address, a.PhoneNumber
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.accounts[id]; !ok {
		return false, nil
	}
	delete(m.accounts, id)
	return true, nil
}

type published struct {
	stream, eventType string
	data              any
}

type recordingPublisher struct {
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, stream, eventType string, data any) error {
	p.events = append(p.events, published{stream, eventType, data})
	return p.err
}

func newTestService(store AccountWriter, pub EventPublisher) *AccountCommandService {
	svc := NewAccountCommandService(store, pub, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 3, 14, 17, 45, 12, 0, time.UTC) }
	return svc
}

// ---- tests ----

func TestCreateAccount(t *testing.T) {
	store := newMemoryStore()
	pub := &recordingPublisher{}
	svc := newTestService(store, pub)

	account, err := svc.CreateAccount(context.Background(), cqrs.CreateAccountCommand{
		Name: "Sam", Email: "sam@x.com", Address: "1 Rd", PhoneNumber: "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.ID)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), account.DateJoined)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.AccountEventsStream, pub.events[0].stream)
	assert.Equal(t, events.AccountCreated, pub.events[0].eventType)
	assert.Equal(t, events.AccountCreatedEvent{ID: 1, Name: "Sam", Email: "sam@x.com", DateJoined: "2024-03-14"}, pub.events[0].data)
}

func TestCreateAccount_PublishFailureIsNotFatal(t *testing.T) {
	svc := newTestService(newMemoryStore(), &recordingPublisher{err: errors.New("redis down")})

	account, err := svc.CreateAccount(context.Background(), cqrs.CreateAccountCommand{Name: "Sam", Email: "sam@x.com", Address: "1 Rd"})
	require.NoError(t, err)
	assert.NotZero(t, account.ID)
}

func TestUpdateAccount(t *testing.T) {
	store := newMemoryStore()
	pub := &recordingPublisher{}
	svc := newTestService(store, pub)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, cqrs.CreateAccountCommand{Name: "Sam", Email: "sam@x.com", Address: "1 Rd", PhoneNumber: "555-0100"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	updated, err := svc.UpdateAccount(ctx, cqrs.UpdateAccountCommand{ID: created.ID, Name: "Samantha", Email: "samantha@x.com", Address: "2 Rd"})
	require.NoError(t, err)
	assert.Equal(t, "Samantha", updated.Name)
	assert.Equal(t, "", updated.PhoneNumber)
	assert.Equal(t, created.DateJoined, updated.DateJoined)

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.AccountUpdated, pub.events[1].eventType)
}

func TestUpdateAccount_NotFound(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestService(newMemoryStore(), pub)

	_, err := svc.UpdateAccount(context.Background(), cqrs.UpdateAccountCommand{ID: 99, Name: "x", Email: "x@x.com", Address: "x"})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	assert.Empty(t, pub.events)
}

func TestDeleteAccount(t *testing.T) {
	store := newMemoryStore()
	pub := &recordingPublisher{}
	svc := newTestService(store, pub)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, cqrs.CreateAccountCommand{Name: "Sam", Email: "sam@x.com", Address: "1 Rd"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, cqrs.DeleteAccountCommand{ID: created.ID}))
	require.Len(t, pub.events, 2)
	assert.Equal(t, events.AccountDeleted, pub.events[1].eventType)

	// second delete is a silent no-op
	require.NoError(t, svc.DeleteAccount(ctx, cqrs.DeleteAccountCommand{ID: created.ID}))
	assert.Len(t, pub.events, 2)
}

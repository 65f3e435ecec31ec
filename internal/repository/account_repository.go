package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/eaglebank/accounts/internal/models"
	"gorm.io/gorm"
)

// ErrAccountNotFound is returned when no account row matches the requested ID.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository persists accounts in the relational store through GORM.
// Every method is a single statement against the accounts table.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts the account and fills in the generated ID.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// List returns all accounts ordered by ID, which matches insertion order.
func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.WithContext(ctx).Order("id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Update writes the mutable columns only; id and date_joined are left alone.
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	result := r.db.WithContext(ctx).
		Model(&models.Account{ID: account.ID}).
		Select("name", "email", "address", "phone_number").
		Updates(map[string]any{
			"name":         account.Name,
			"email":        account.Email,
			"address":      account.Address,
			"phone_number": account.PhoneNumber,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Delete removes the account. It reports whether a row was actually removed
// and is not an error when the account does not exist.
func (r *AccountRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Account{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete account: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

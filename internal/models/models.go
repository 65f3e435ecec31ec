package models

import "time"

// DateLayout is the wire format of DateJoined.
const DateLayout = "2006-01-02"

// Account is the persisted write model backing the accounts table.
type Account struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"size:64;not null"`
	Email       string    `gorm:"size:64;not null"`
	Address     string    `gorm:"size:256;not null"`
	PhoneNumber string    `gorm:"size:32"`
	DateJoined  time.Time `gorm:"type:date;not null"`
}

func (Account) TableName() string { return "accounts" }

// View returns the API representation of the account.
func (a *Account) View() *AccountView {
	return &AccountView{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Address:     a.Address,
		PhoneNumber: a.PhoneNumber,
		DateJoined:  a.DateJoined.Format(DateLayout),
	}
}

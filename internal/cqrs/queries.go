package cqrs

// GetAccountQuery fetches a single account by ID.
type GetAccountQuery struct {
	ID int64
}

// ListAccountsQuery fetches every account in insertion order.
type ListAccountsQuery struct{}

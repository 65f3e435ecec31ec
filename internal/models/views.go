package models

// AccountView is the serialised projection of an account returned by the API.
type AccountView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	DateJoined  string `json:"date_joined"`
}

// Views converts a slice of accounts, never returning nil so that an empty
// result encodes as [] rather than null.
func Views(accounts []Account) []AccountView {
	views := make([]AccountView, 0, len(accounts))
	for i := range accounts {
		views = append(views, *accounts[i].View())
	}
	return views
}

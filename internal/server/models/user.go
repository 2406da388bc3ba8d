// Package models defines server-side records that never leave the server
// as is. Wire types live in internal/models.
package models

import "github.com/dmitrijs2005/adminconsole/internal/models"

// Account is a user row together with its stored credentials.
type Account struct {
	models.User
	PasswordHash string
}

// CurrentUser is the principal view of the account.
func (a *Account) CurrentUser() models.CurrentUser {
	return models.CurrentUser{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}

package user

import (
	"errors"
	"time"

	userDatamodel "github.com/codecraft/employee-directory/internal/core/datamodel/user"
)

// User is the full directory account profile.
type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	Active      bool       `json:"active"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	Roles       []string   `json:"roles"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole("Admin")
}

var ErrNotFound = errors.New("user not found")

func FromDataModel(row *userDatamodel.User) *User {
	roles := make([]string, len(row.Roles))
	for i, r := range row.Roles {
		roles[i] = r.Name
	}
	return &User{
		ID:          row.ID,
		Email:       row.Email,
		Username:    row.Username,
		Active:      row.Active,
		ConfirmedAt: row.ConfirmedAt,
		Roles:       roles,
	}
}

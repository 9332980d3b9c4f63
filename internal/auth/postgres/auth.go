package postgres

import (
	"errors"

	"github.com/codecraft/employee-directory/internal/auth"
	userDatamodel "github.com/codecraft/employee-directory/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// Repository implements auth.UserRepository on GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetAccountByUsername(username string) (*auth.Account, error) {
	var row userDatamodel.User
	err := r.db.Preload("Roles").Where("username = ?", username).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return toAccount(&row), nil
}

func (r *Repository) GetAccountByID(id int64) (*auth.Account, error) {
	var row userDatamodel.User
	err := r.db.Preload("Roles").Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return toAccount(&row), nil
}

// CreateAccount inserts the user and attaches the named roles, creating role
// rows that do not exist yet. Runs in one transaction so a failed role
// attach does not leave a roleless account behind.
func (r *Repository) CreateAccount(a *auth.Account, roleNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		roles := make([]userDatamodel.Role, 0, len(roleNames))
		for _, name := range roleNames {
			var role userDatamodel.Role
			if err := tx.Where(userDatamodel.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
				return err
			}
			roles = append(roles, role)
		}

		row := &userDatamodel.User{
			Email:        a.Email,
			Username:     a.Username,
			PasswordHash: a.PasswordHash,
			Active:       a.Active,
			Uniquifier:   a.Uniquifier,
			ConfirmedAt:  a.ConfirmedAt,
			Roles:        roles,
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}

		a.ID = row.ID
		a.Roles = roleNames
		return nil
	})
}

func (r *Repository) RotateUniquifier(userID int64, uniquifier string) error {
	result := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Update("uniquifier", uniquifier)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func toAccount(row *userDatamodel.User) *auth.Account {
	roles := make([]string, len(row.Roles))
	for i, role := range row.Roles {
		roles[i] = role.Name
	}
	return &auth.Account{
		ID:           row.ID,
		Email:        row.Email,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Active:       row.Active,
		Uniquifier:   row.Uniquifier,
		ConfirmedAt:  row.ConfirmedAt,
		Roles:        roles,
	}
}

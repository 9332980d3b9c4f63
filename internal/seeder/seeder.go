package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codecraft/employee-directory/internal"
	"github.com/codecraft/employee-directory/internal/auth"
	employeeDatamodel "github.com/codecraft/employee-directory/internal/core/datamodel/employee"
	userDatamodel "github.com/codecraft/employee-directory/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// demoPassword is shared by the three bootstrap accounts; they exist for
// demos and local development only.
const demoPassword = "password"

// Service runs the one-time database bootstrap: roles, demo users, and the
// synthetic employee import. Each step carries its own idempotence guard, so
// re-running against a seeded database is a no-op. The guards are
// check-then-act: running two seeders concurrently is not supported.
type Service struct {
	db      *gorm.DB
	fetcher PersonFetcher
	cfg     internal.SeederConfig
	logger  *slog.Logger
}

func NewService(db *gorm.DB, fetcher PersonFetcher, cfg internal.SeederConfig, logger *slog.Logger) *Service {
	return &Service{
		db:      db,
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run executes all bootstrap steps in order.
func (s *Service) Run(ctx context.Context) error {
	if err := s.ensureRoles(); err != nil {
		return fmt.Errorf("ensure roles: %w", err)
	}
	if err := s.seedDemoUsers(); err != nil {
		return fmt.Errorf("seed demo users: %w", err)
	}
	if err := s.seedEmployees(ctx); err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}
	return nil
}

// ensureRoles creates the Admin and User roles if absent.
func (s *Service) ensureRoles() error {
	for _, name := range []string{auth.RoleAdmin, auth.RoleUser} {
		var role userDatamodel.Role
		if err := s.db.Where(userDatamodel.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
		s.logger.Debug("role ensured", "role", name, "role_id", role.ID)
	}
	return nil
}

// seedDemoUsers creates the three fixed demo accounts, but only when the
// user table is completely empty.
func (s *Service) seedDemoUsers() error {
	var count int64
	if err := s.db.Model(&userDatamodel.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("users already present, skipping demo accounts", "count", count)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demos := []struct {
		Email    string
		Username string
		Roles    []string
	}{
		{"admin_user@mail.com", "admin_user", []string{auth.RoleAdmin, auth.RoleUser}},
		{"user@mail.com", "user", []string{auth.RoleUser}},
		{"admin@mail.com", "admin", []string{auth.RoleAdmin}},
	}

	now := time.Now()
	for _, demo := range demos {
		uniquifier, err := auth.GenerateRandomToken()
		if err != nil {
			return err
		}

		var roles []userDatamodel.Role
		if err := s.db.Where("name IN ?", demo.Roles).Find(&roles).Error; err != nil {
			return err
		}

		row := &userDatamodel.User{
			Email:        demo.Email,
			Username:     demo.Username,
			PasswordHash: string(hash),
			Active:       true,
			Uniquifier:   uniquifier,
			ConfirmedAt:  &now,
			Roles:        roles,
		}
		if err := s.db.Create(row).Error; err != nil {
			return err
		}
		s.logger.Info("seeded demo user", "email", demo.Email, "roles", demo.Roles)
	}

	return nil
}

// seedEmployees tops the employee table up to the target count from the
// external source. Commits run per employee (row plus its pictures in one
// transaction): a failure partway leaves a partially seeded table, which the
// row-count guard repairs on the next run.
func (s *Service) seedEmployees(ctx context.Context) error {
	var count int64
	if err := s.db.Model(&employeeDatamodel.Employee{}).Count(&count).Error; err != nil {
		return err
	}
	if count >= int64(s.cfg.TargetCount) {
		s.logger.Info("employee target already met, skipping fetch",
			"count", count, "target", s.cfg.TargetCount)
		return nil
	}

	persons, err := s.fetcher.FetchPersons(ctx, s.cfg.TargetCount, s.cfg.SeedName)
	if err != nil {
		return internal.NewExternalError("unable to fetch seed data", err)
	}

	s.logger.Info("fetched persons from external source",
		"count", len(persons), "seed", s.cfg.SeedName)

	for _, p := range persons {
		if err := s.insertEmployee(&p); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) insertEmployee(p *Person) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		row := &employeeDatamodel.Employee{
			Name:         p.Name.First + " " + p.Name.Last,
			Email:        p.Email,
			Phone:        p.Phone,
			Age:          p.DOB.Age.String(),
			StreetName:   p.Location.Street.Name,
			StreetNumber: p.Location.Street.Number.String(),
			Postcode:     p.Location.Postcode.String(),
			City:         p.Location.City,
			State:        p.Location.State,
			Country:      p.Location.Country,
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}

		for size, url := range p.Picture {
			picture := &employeeDatamodel.EmployeePicture{
				PictureSize: size,
				Picture:     url,
				EmployeeID:  row.ID,
			}
			if err := tx.Create(picture).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

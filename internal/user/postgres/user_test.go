package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	userDatamodel "github.com/codecraft/employee-directory/internal/core/datamodel/user"
	"github.com/codecraft/employee-directory/internal/user"
	userPostgres "github.com/codecraft/employee-directory/internal/user/postgres"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

var _ = Describe("User Repository", func() {
	var (
		db   *gorm.DB
		repo user.Repository
	)

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{}, &userDatamodel.Role{})
		Expect(err).NotTo(HaveOccurred())

		repo = userPostgres.NewUserRepository(db)
	})

	Describe("GetByID", func() {
		It("should return the profile with role names preloaded", func() {
			now := time.Now()
			row := &userDatamodel.User{
				Email:        "jdoe@codecraft.com",
				Username:     "jdoe",
				PasswordHash: "$2a$10$hash",
				Active:       true,
				Uniquifier:   "uniq-jdoe",
				ConfirmedAt:  &now,
				Roles: []userDatamodel.Role{
					{Name: "Admin"},
					{Name: "User"},
				},
			}
			Expect(db.Create(row).Error).NotTo(HaveOccurred())

			got, err := repo.GetByID(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Username).To(Equal("jdoe"))
			Expect(got.Email).To(Equal("jdoe@codecraft.com"))
			Expect(got.Active).To(BeTrue())
			Expect(got.ConfirmedAt).NotTo(BeNil())
			Expect(got.Roles).To(ConsistOf("Admin", "User"))
			Expect(got.IsAdmin()).To(BeTrue())
		})

		It("should return an empty role list for a roleless user", func() {
			row := &userDatamodel.User{
				Email:        "jdoe@codecraft.com",
				Username:     "jdoe",
				PasswordHash: "$2a$10$hash",
				Active:       true,
				Uniquifier:   "uniq-jdoe",
			}
			Expect(db.Create(row).Error).NotTo(HaveOccurred())

			got, err := repo.GetByID(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Roles).To(BeEmpty())
			Expect(got.IsAdmin()).To(BeFalse())
		})

		It("should return ErrNotFound for an unknown id", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(MatchError(user.ErrNotFound))
		})
	})
})

package postgres

import (
	"testing"

	"github.com/andikarahman/hr-management/internal"
	"github.com/andikarahman/hr-management/internal/auth"
	orgDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/organisation"
	userDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAuthRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AuthRepository Suite")
}

var _ = Describe("AuthRepository", func() {
	var (
		db   *gorm.DB
		repo auth.RepositoryAPI
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&orgDatamodel.Organisation{}, &userDatamodel.User{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewAuthRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	register := func(orgName, email string) (*orgDatamodel.Organisation, *userDatamodel.User) {
		org := &orgDatamodel.Organisation{Name: orgName}
		admin := &userDatamodel.User{
			Email:        email,
			Name:         "Admin",
			PasswordHash: "hash",
		}
		Expect(repo.CreateOrganisationWithAdmin(org, admin)).To(Succeed())
		return org, admin
	}

	Describe("CreateOrganisationWithAdmin", func() {
		It("should create both rows and link the admin to the organisation", func() {
			org, admin := register("Acme Corp", "admin@acme.test")

			Expect(org.ID).To(BeNumerically(">", 0))
			Expect(admin.ID).To(BeNumerically(">", 0))
			Expect(admin.OrganisationID).To(Equal(org.ID))
		})

		It("should report a duplicate email as a credential conflict", func() {
			register("Acme Corp", "admin@acme.test")

			org := &orgDatamodel.Organisation{Name: "Shadow Acme"}
			admin := &userDatamodel.User{
				Email:        "admin@acme.test",
				Name:         "Impostor",
				PasswordHash: "hash",
			}

			err := repo.CreateOrganisationWithAdmin(org, admin)
			Expect(err).To(Equal(internal.ErrDuplicateCredential))
		})

		It("should not leave an orphan organisation behind on conflict", func() {
			register("Acme Corp", "admin@acme.test")

			org := &orgDatamodel.Organisation{Name: "Shadow Acme"}
			admin := &userDatamodel.User{
				Email:        "admin@acme.test",
				Name:         "Impostor",
				PasswordHash: "hash",
			}
			Expect(repo.CreateOrganisationWithAdmin(org, admin)).NotTo(Succeed())

			var count int64
			Expect(db.Model(&orgDatamodel.Organisation{}).
				Where("name = ?", "Shadow Acme").
				Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})
	})

	Describe("EmailExists", func() {
		It("should report existing and missing emails", func() {
			register("Acme Corp", "admin@acme.test")

			exists, err := repo.EmailExists("admin@acme.test")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.EmailExists("nobody@acme.test")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("GetUserByEmail", func() {
		It("should return the user for a known email", func() {
			_, admin := register("Acme Corp", "admin@acme.test")

			user, err := repo.GetUserByEmail("admin@acme.test")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(admin.ID))
		})

		It("should return the credentials error for an unknown email", func() {
			user, err := repo.GetUserByEmail("nobody@acme.test")
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
			Expect(user).To(BeNil())
		})
	})

	Describe("GetUserByID", func() {
		It("should return the session error for a missing id", func() {
			user, err := repo.GetUserByID(99999)
			Expect(err).To(Equal(internal.ErrInvalidSession))
			Expect(user).To(BeNil())
		})
	})
})

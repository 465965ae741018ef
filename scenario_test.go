package main_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/andikarahman/hr-management/internal"
	"github.com/andikarahman/hr-management/internal/audit"
	auditPostgres "github.com/andikarahman/hr-management/internal/audit/postgres"
	"github.com/andikarahman/hr-management/internal/auth"
	authPostgres "github.com/andikarahman/hr-management/internal/auth/postgres"
	assignmentDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/assignment"
	auditDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/audit"
	employeeDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/employee"
	orgDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/organisation"
	teamDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/team"
	userDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/user"
	"github.com/andikarahman/hr-management/internal/employee"
	employeePostgres "github.com/andikarahman/hr-management/internal/employee/postgres"
	"github.com/andikarahman/hr-management/internal/team"
	teamPostgres "github.com/andikarahman/hr-management/internal/team/postgres"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Exercises the full stack below the HTTP layer: real services wired to real
// repositories over an in-memory database, from registration through
// assignments to the audit trail.
var _ = Describe("Organisation lifecycle", func() {
	var (
		authService     *auth.Service
		employeeService *employee.Service
		teamService     *team.Service
		auditService    *audit.Service

		session internal.Session
	)

	register := func(orgName, adminName, email string) internal.Session {
		result, err := authService.Register(auth.RegisterDTO{
			OrgName:   orgName,
			AdminName: adminName,
			Email:     email,
			Password:  "correct_password",
		})
		Expect(err).NotTo(HaveOccurred())

		sess, err := authService.SessionFromToken(result.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(sess.UserID).To(Equal(result.User.ID))
		Expect(sess.OrganisationID).To(Equal(result.User.OrganisationID))
		return sess
	}

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&orgDatamodel.Organisation{},
			&userDatamodel.User{},
			&employeeDatamodel.Employee{},
			&teamDatamodel.Team{},
			&assignmentDatamodel.EmployeeTeam{},
			&auditDatamodel.Log{},
		)
		Expect(err).NotTo(HaveOccurred())

		log := slog.New(slog.NewTextHandler(io.Discard, nil))

		auditService = audit.NewService(auditPostgres.NewAuditRepository(db), log)
		tokenGen := auth.NewJWTTokenGenerator("scenario-secret-at-least-32-chars!!", time.Hour)
		authService = auth.NewService(authPostgres.NewAuthRepository(db), tokenGen, auditService, bcrypt.DefaultCost, log)
		employeeRepo := employeePostgres.NewEmployeeRepository(db)
		employeeService = employee.NewService(employeeRepo, auditService, log)
		teamService = team.NewService(teamPostgres.NewTeamRepository(db), employeeRepo, auditService, log)

		session = register("Acme Corp", "Acme Admin", "admin@acme.test")
	})

	It("should carry one organisation from registration to a populated audit trail", func() {
		// Given two employees and a team with one initial member
		ada, err := employeeService.CreateEmployee(session, employee.EmployeeDTO{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@acme.test",
		})
		Expect(err).NotTo(HaveOccurred())

		grace, err := employeeService.CreateEmployee(session, employee.EmployeeDTO{
			FirstName: "Grace",
			LastName:  "Hopper",
			Email:     "grace@acme.test",
		})
		Expect(err).NotTo(HaveOccurred())

		engineering, err := teamService.CreateTeam(session, team.TeamDTO{
			Name:        "Engineering",
			EmployeeIDs: &[]int64{ada.ID},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(engineering.Employees).To(HaveLen(1))
		Expect(engineering.Employees[0].ID).To(Equal(ada.ID))

		// When the second employee is assigned
		err = teamService.AssignEmployee(session, team.AssignmentDTO{
			TeamID:     engineering.ID,
			EmployeeID: grace.ID,
		})
		Expect(err).NotTo(HaveOccurred())

		// Then a repeated assignment reports the conflict
		err = teamService.AssignEmployee(session, team.AssignmentDTO{
			TeamID:     engineering.ID,
			EmployeeID: grace.ID,
		})
		Expect(err).To(Equal(internal.ErrAlreadyAssigned))

		// And the membership is visible from both sides
		fetched, err := employeeService.GetEmployee(session, grace.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(fetched.Teams).To(HaveLen(1))
		Expect(fetched.Teams[0].Name).To(Equal("Engineering"))

		// When the first member is removed
		err = teamService.RemoveEmployee(session, team.AssignmentDTO{
			TeamID:     engineering.ID,
			EmployeeID: ada.ID,
		})
		Expect(err).NotTo(HaveOccurred())

		err = teamService.RemoveEmployee(session, team.AssignmentDTO{
			TeamID:     engineering.ID,
			EmployeeID: ada.ID,
		})
		Expect(err).To(Equal(internal.ErrAssignmentNotFound))

		// Then the audit trail holds every action, newest first
		entries, err := auditService.ListForOrganisation(session.OrganisationID)
		Expect(err).NotTo(HaveOccurred())

		actions := make([]string, 0, len(entries))
		for _, e := range entries {
			actions = append(actions, e.Action)
		}
		Expect(actions).To(Equal([]string{
			audit.ActionEmployeeRemovedFromTeam,
			audit.ActionEmployeeAssignedToTeam,
			audit.ActionTeamCreated,
			audit.ActionEmployeeCreated,
			audit.ActionEmployeeCreated,
			audit.ActionUserRegistered,
		}))
		Expect(entries[len(entries)-1].User.Email).To(Equal("admin@acme.test"))
	})

	It("should keep organisations invisible to each other", func() {
		ada, err := employeeService.CreateEmployee(session, employee.EmployeeDTO{
			FirstName: "Ada",
			LastName:  "Lovelace",
		})
		Expect(err).NotTo(HaveOccurred())

		engineering, err := teamService.CreateTeam(session, team.TeamDTO{Name: "Engineering"})
		Expect(err).NotTo(HaveOccurred())

		// Given a second organisation
		other := register("Globex", "Globex Admin", "admin@globex.test")

		// Then it sees none of the first organisation's data
		employees, err := employeeService.ListEmployees(other)
		Expect(err).NotTo(HaveOccurred())
		Expect(employees).To(BeEmpty())

		teams, err := teamService.ListTeams(other)
		Expect(err).NotTo(HaveOccurred())
		Expect(teams).To(BeEmpty())

		_, err = employeeService.GetEmployee(other, ada.ID)
		Expect(err).To(Equal(internal.ErrEmployeeNotFound))

		// And it cannot assign into the first organisation's team
		err = teamService.AssignEmployee(other, team.AssignmentDTO{
			TeamID:     engineering.ID,
			EmployeeID: ada.ID,
		})
		Expect(err).To(Equal(internal.ErrTeamNotFound))

		// And its audit trail only holds its own entries
		entries, err := auditService.ListForOrganisation(other.OrganisationID)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Action).To(Equal(audit.ActionUserRegistered))
	})

	It("should record login and logout on the audit trail", func() {
		result, err := authService.Login(auth.LoginDTO{
			Email:    "admin@acme.test",
			Password: "correct_password",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Token).NotTo(BeEmpty())

		Expect(authService.Logout(session)).To(Succeed())

		entries, err := auditService.ListForOrganisation(session.OrganisationID)
		Expect(err).NotTo(HaveOccurred())

		actions := make([]string, 0, len(entries))
		for _, e := range entries {
			actions = append(actions, e.Action)
		}
		Expect(actions).To(Equal([]string{
			audit.ActionUserLoggedOut,
			audit.ActionUserLoggedIn,
			audit.ActionUserRegistered,
		}))
	})
})

package employee

import (
	"io"
	"log/slog"
	"testing"

	"github.com/andikarahman/hr-management/internal"
	"github.com/andikarahman/hr-management/internal/audit"
	employeeDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/employee"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestEmployee(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Employee Module Suite")
}

// Mock employee repository keyed by organisation
type mockEmployeeRepository struct {
	employees map[int64]*employeeDatamodel.Employee
	teams     map[int64][]int64 // employee id -> team ids
	nextID    int64
	lastTeams []int64
	replaced  bool
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{
		employees: map[int64]*employeeDatamodel.Employee{},
		teams:     map[int64][]int64{},
		nextID:    1,
	}
}

func (m *mockEmployeeRepository) ListByOrganisation(organisationID int64) ([]*employeeDatamodel.Employee, error) {
	var out []*employeeDatamodel.Employee
	for _, emp := range m.employees {
		if emp.OrganisationID == organisationID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *mockEmployeeRepository) GetByID(organisationID, id int64) (*employeeDatamodel.Employee, error) {
	emp, exists := m.employees[id]
	if !exists || emp.OrganisationID != organisationID {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *mockEmployeeRepository) Create(emp *employeeDatamodel.Employee) error {
	emp.ID = m.nextID
	m.nextID++
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepository) Update(emp *employeeDatamodel.Employee) error {
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepository) Delete(organisationID, id int64) error {
	emp, exists := m.employees[id]
	if !exists || emp.OrganisationID != organisationID {
		return internal.ErrEmployeeNotFound
	}
	delete(m.employees, id)
	delete(m.teams, id)
	return nil
}

func (m *mockEmployeeRepository) ReplaceTeams(organisationID, employeeID int64, teamIDs []int64) error {
	m.replaced = true
	m.lastTeams = teamIDs
	m.teams[employeeID] = teamIDs
	return nil
}

func (m *mockEmployeeRepository) ExistsInOrganisation(organisationID, id int64) (bool, error) {
	emp, exists := m.employees[id]
	return exists && emp.OrganisationID == organisationID, nil
}

type mockRecorder struct {
	entries []string
	err     error
}

func (m *mockRecorder) Record(organisationID, userID int64, action string, meta audit.Meta) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, action)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = ginkgo.Describe("EmployeeService", func() {
	var (
		service  *Service
		mockRepo *mockEmployeeRepository
		recorder *mockRecorder
		sess     internal.Session
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockEmployeeRepository()
		recorder = &mockRecorder{}
		service = NewService(mockRepo, recorder, testLogger())
		sess = internal.Session{UserID: 1, OrganisationID: 10}
	})

	ginkgo.Describe("CreateEmployee", func() {
		ginkgo.It("should create the employee in the caller's organisation", func() {
			// Given
			dto := EmployeeDTO{FirstName: "Ada", LastName: "Lovelace", Email: "ada@acme.test"}

			// When
			emp, err := service.CreateEmployee(sess, dto)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(emp.ID).To(gomega.BeNumerically(">", 0))
			gomega.Expect(emp.OrganisationID).To(gomega.Equal(int64(10)))
		})

		ginkgo.It("should record exactly one audit entry", func() {
			dto := EmployeeDTO{FirstName: "Ada", LastName: "Lovelace"}

			_, err := service.CreateEmployee(sess, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(recorder.entries).To(gomega.Equal([]string{audit.ActionEmployeeCreated}))
		})

		ginkgo.It("should assign initial team memberships when given", func() {
			// Given
			teamIDs := []int64{5, 6}
			dto := EmployeeDTO{FirstName: "Ada", LastName: "Lovelace", TeamIDs: &teamIDs}

			// When
			emp, err := service.CreateEmployee(sess, dto)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.teams[emp.ID]).To(gomega.Equal(teamIDs))
		})

		ginkgo.It("should reject a missing first name", func() {
			dto := EmployeeDTO{LastName: "Lovelace"}

			emp, err := service.CreateEmployee(sess, dto)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("first_name is required"))
			gomega.Expect(emp).To(gomega.BeNil())
			gomega.Expect(recorder.entries).To(gomega.BeEmpty())
		})

		ginkgo.It("should fail when the audit append fails", func() {
			recorder.err = internal.NewInternalError("Server error", nil)
			dto := EmployeeDTO{FirstName: "Ada", LastName: "Lovelace"}

			emp, err := service.CreateEmployee(sess, dto)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(emp).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("GetEmployee", func() {
		var created *employeeDatamodel.Employee

		ginkgo.BeforeEach(func() {
			var err error
			created, err = service.CreateEmployee(sess, EmployeeDTO{FirstName: "Ada", LastName: "Lovelace"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should return the employee for the owning organisation", func() {
			emp, err := service.GetEmployee(sess, created.ID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(emp.FirstName).To(gomega.Equal("Ada"))
		})

		ginkgo.It("should hide the employee from another organisation", func() {
			// Given a session from a different tenant
			otherSess := internal.Session{UserID: 2, OrganisationID: 99}

			// When
			emp, err := service.GetEmployee(otherSess, created.ID)

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
			gomega.Expect(emp).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("UpdateEmployee", func() {
		var created *employeeDatamodel.Employee

		ginkgo.BeforeEach(func() {
			var err error
			created, err = service.CreateEmployee(sess, EmployeeDTO{FirstName: "Ada", LastName: "Lovelace"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			recorder.entries = nil
			mockRepo.replaced = false
		})

		ginkgo.It("should update scalar fields", func() {
			dto := EmployeeDTO{FirstName: "Ada", LastName: "King", Email: "ada@acme.test"}

			emp, err := service.UpdateEmployee(sess, created.ID, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(emp.LastName).To(gomega.Equal("King"))
			gomega.Expect(recorder.entries).To(gomega.Equal([]string{audit.ActionEmployeeUpdated}))
		})

		ginkgo.It("should leave memberships alone when the list is absent", func() {
			dto := EmployeeDTO{FirstName: "Ada", LastName: "King"}

			_, err := service.UpdateEmployee(sess, created.ID, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.replaced).To(gomega.BeFalse())
		})

		ginkgo.It("should clear memberships when given an explicit empty list", func() {
			// Given
			empty := []int64{}
			dto := EmployeeDTO{FirstName: "Ada", LastName: "King", TeamIDs: &empty}

			// When
			_, err := service.UpdateEmployee(sess, created.ID, dto)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.replaced).To(gomega.BeTrue())
			gomega.Expect(mockRepo.lastTeams).To(gomega.BeEmpty())
		})

		ginkgo.It("should return not found for another organisation's employee", func() {
			otherSess := internal.Session{UserID: 2, OrganisationID: 99}
			dto := EmployeeDTO{FirstName: "Ada", LastName: "King"}

			emp, err := service.UpdateEmployee(otherSess, created.ID, dto)

			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
			gomega.Expect(emp).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("DeleteEmployee", func() {
		var created *employeeDatamodel.Employee

		ginkgo.BeforeEach(func() {
			var err error
			created, err = service.CreateEmployee(sess, EmployeeDTO{FirstName: "Ada", LastName: "Lovelace"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			recorder.entries = nil
		})

		ginkgo.It("should delete the employee and record an audit entry", func() {
			err := service.DeleteEmployee(sess, created.ID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(recorder.entries).To(gomega.Equal([]string{audit.ActionEmployeeDeleted}))

			_, err = service.GetEmployee(sess, created.ID)
			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
		})

		ginkgo.It("should return not found for a missing id", func() {
			err := service.DeleteEmployee(sess, 9999)

			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
			gomega.Expect(recorder.entries).To(gomega.BeEmpty())
		})

		ginkgo.It("should not delete across organisations", func() {
			otherSess := internal.Session{UserID: 2, OrganisationID: 99}

			err := service.DeleteEmployee(otherSess, created.ID)

			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))

			_, err = service.GetEmployee(sess, created.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("ListEmployees", func() {
		ginkgo.It("should only return the caller's organisation", func() {
			// Given employees in two organisations
			_, err := service.CreateEmployee(sess, EmployeeDTO{FirstName: "Ada", LastName: "Lovelace"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			otherSess := internal.Session{UserID: 2, OrganisationID: 99}
			_, err = service.CreateEmployee(otherSess, EmployeeDTO{FirstName: "Grace", LastName: "Hopper"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			employees, err := service.ListEmployees(sess)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(employees).To(gomega.HaveLen(1))
			gomega.Expect(employees[0].FirstName).To(gomega.Equal("Ada"))
		})
	})
})

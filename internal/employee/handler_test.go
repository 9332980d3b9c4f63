package employee_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/codecraft/employee-directory/internal"
	"github.com/codecraft/employee-directory/internal/employee"
)

// Mock service for handler testing
type mockEmployeeService struct {
	lastListDTO employee.ListQueryDTO
	listResp    *employee.ListResponse
	listErr     error
	detail      *employee.Detail
	detailErr   error
}

func (m *mockEmployeeService) List(dto employee.ListQueryDTO) (*employee.ListResponse, error) {
	m.lastListDTO = dto
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResp, nil
}

func (m *mockEmployeeService) GetByID(id int64) (*employee.Detail, error) {
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	return m.detail, nil
}

var _ = Describe("Employee Handler", func() {
	var (
		service *mockEmployeeService
		router  chi.Router
	)

	BeforeEach(func() {
		service = &mockEmployeeService{
			listResp: &employee.ListResponse{
				Pagination: employee.NewPagination(1, employee.PerPage, 0),
				Employees:  map[string]employee.ListItem{},
			},
		}
		handler := employee.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/employees", handler.ListEmployees)
		router.Get("/employees/{id}", handler.GetEmployee)
	})

	Describe("ListEmployees", func() {
		It("should default to page 1 with the fixed page size", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.lastListDTO.Page).To(Equal(1))
			Expect(service.lastListDTO.PerPage).To(Equal(employee.PerPage))
			Expect(service.lastListDTO.Query).To(BeEmpty())
		})

		It("should pass page and query parameters through", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees?page=3&query=smith", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.lastListDTO.Page).To(Equal(3))
			Expect(service.lastListDTO.Query).To(Equal("smith"))
		})

		It("should fall back to page 1 for a non-numeric page", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees?page=abc", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.lastListDTO.Page).To(Equal(1))
		})

		It("should fall back to page 1 for a zero or negative page", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees?page=-2", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.lastListDTO.Page).To(Equal(1))
		})

		It("should render the listing payload as JSON", func() {
			thumb := "https://img.test/1/th.jpg"
			service.listResp = &employee.ListResponse{
				Pagination: employee.NewPagination(1, employee.PerPage, 1),
				Employees: map[string]employee.ListItem{
					"Alice Adams": {ID: 1, Email: "alice@mail.test", Picture: &thumb},
				},
			}

			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body employee.ListResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Pagination.TotalItems).To(Equal(int64(1)))
			Expect(body.Employees).To(HaveKey("Alice Adams"))
			Expect(*body.Employees["Alice Adams"].Picture).To(Equal(thumb))
		})

		It("should map service failures through the error envelope", func() {
			service.listErr = internal.NewInternalError("database unavailable", nil)

			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("GetEmployee", func() {
		It("should return the detail for a known id", func() {
			pic := "https://img.test/1/lg.jpg"
			service.detail = &employee.Detail{
				Employee: employee.Employee{ID: 1, Name: "Alice Adams", Email: "alice@mail.test"},
				Picture:  &pic,
			}

			req := httptest.NewRequest(http.MethodGet, "/employees/1", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body employee.Detail
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Name).To(Equal("Alice Adams"))
			Expect(*body.Picture).To(Equal(pic))
		})

		It("should return 404 for an unknown id", func() {
			service.detailErr = internal.ErrEmployeeNotFound

			req := httptest.NewRequest(http.MethodGet, "/employees/999", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))

			var body internal.Response
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Error.Code).To(Equal(internal.ErrCodeEmployeeNotFound))
		})

		It("should return 400 for a non-numeric id", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/abc", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var body internal.Response
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Error.Code).To(Equal(internal.ErrCodeInvalidEmployeeID))
		})
	})
})

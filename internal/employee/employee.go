package employee

import (
	"errors"

	employeeDatamodel "github.com/codecraft/employee-directory/internal/core/datamodel/employee"
)

var ErrNotFound = errors.New("employee not found")

// Picture size labels emitted by the upstream data source.
const (
	PictureSizeLarge     = "large"
	PictureSizeMedium    = "medium"
	PictureSizeThumbnail = "thumbnail"
)

type Employee struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Age          string `json:"age"`
	StreetName   string `json:"street_name"`
	StreetNumber string `json:"street_number"`
	Postcode     string `json:"postcode"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

type Picture struct {
	ID         int64  `json:"id"`
	Size       string `json:"size"`
	URL        string `json:"url"`
	EmployeeID int64  `json:"employee_id"`
}

// PictureSet is the fixed-shape per-employee picture record: one slot per
// known size label, nil when the employee has no picture in that size.
type PictureSet struct {
	Large     *string `json:"large"`
	Medium    *string `json:"medium"`
	Thumbnail *string `json:"thumbnail"`
}

// ListItem is the display record for one employee on the listing page.
type ListItem struct {
	ID      int64   `json:"id"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Country string  `json:"country"`
	Age     string  `json:"age"`
	Picture *string `json:"picture"`
}

// Detail is the employee detail view with the large picture joined in.
type Detail struct {
	Employee
	Picture *string `json:"picture"`
}

// Pagination describes one page of a result set. Pages are 1-based; a page
// past the end is representable (empty items) rather than an error.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func NewPagination(page, perPage int, totalItems int64) Pagination {
	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Phone:        e.Phone,
		Age:          e.Age,
		StreetName:   e.StreetName,
		StreetNumber: e.StreetNumber,
		Postcode:     e.Postcode,
		City:         e.City,
		State:        e.State,
		Country:      e.Country,
	}
}

func FromDataModelSlice(employees []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(employees))
	for i, e := range employees {
		result[i] = FromDataModel(e)
	}
	return result
}

func PictureFromDataModel(p *employeeDatamodel.EmployeePicture) *Picture {
	return &Picture{
		ID:         p.ID,
		Size:       p.PictureSize,
		URL:        p.Picture,
		EmployeeID: p.EmployeeID,
	}
}

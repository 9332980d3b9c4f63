package postgres

import (
	"errors"
	"strings"

	employeeDatamodel "github.com/codecraft/employee-directory/internal/core/datamodel/employee"
	"github.com/codecraft/employee-directory/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

// filtered applies the free-text filter: a case-insensitive substring match
// across name, phone and age. Age is stored as text, so "2" matches 25 and
// 42 alike; that literal behavior is part of the contract.
func (r *EmployeeRepository) filtered(query string) *gorm.DB {
	tx := r.db.Model(&employeeDatamodel.Employee{})
	if query == "" {
		return tx
	}
	pattern := "%" + strings.ToLower(query) + "%"
	return tx.Where(
		"LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(age) LIKE ?",
		pattern, pattern, pattern,
	)
}

// Search returns one page of employees ordered by id ascending so that
// pagination is stable and repeatable.
func (r *EmployeeRepository) Search(query string, limit, offset int) ([]*employee.Employee, error) {
	var rows []*employeeDatamodel.Employee
	err := r.filtered(query).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return employee.FromDataModelSlice(rows), nil
}

func (r *EmployeeRepository) Count(query string) (int64, error) {
	var count int64
	err := r.filtered(query).Count(&count).Error
	return count, err
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}

func (r *EmployeeRepository) GetAll() ([]*employee.Employee, error) {
	var rows []*employeeDatamodel.Employee
	if err := r.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return employee.FromDataModelSlice(rows), nil
}

func (r *EmployeeRepository) GetAllPictures() ([]*employee.Picture, error) {
	var rows []*employeeDatamodel.EmployeePicture
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	pictures := make([]*employee.Picture, len(rows))
	for i, p := range rows {
		pictures[i] = employee.PictureFromDataModel(p)
	}
	return pictures, nil
}

package employee

import (
	"errors"
	"log/slog"

	"github.com/codecraft/employee-directory/internal"
)

// Repository defines the data access methods for employees and their pictures.
type Repository interface {
	Search(query string, limit, offset int) ([]*Employee, error)
	Count(query string) (int64, error)
	GetByID(id int64) (*Employee, error)
	GetAll() ([]*Employee, error)
	GetAllPictures() ([]*Picture, error)
}

// Service handles the listing, detail and picture lookup logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// BuildPictureLookup maps every employee id to its fixed-shape picture
// record. Employees without pictures get an all-nil set. This is a full
// scan of both tables on every call; fine at directory scale (a few hundred
// rows), would need an indexed join if the directory ever grows past that.
func (s *Service) BuildPictureLookup() (map[int64]PictureSet, error) {
	employees, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to load employees for picture lookup", "error", err)
		return nil, err
	}

	pictures, err := s.repo.GetAllPictures()
	if err != nil {
		s.logger.Error("failed to load pictures for picture lookup", "error", err)
		return nil, err
	}

	lookup := make(map[int64]PictureSet, len(employees))
	for _, e := range employees {
		lookup[e.ID] = PictureSet{}
	}

	for _, p := range pictures {
		set, ok := lookup[p.EmployeeID]
		if !ok {
			continue
		}
		url := p.URL
		switch p.Size {
		case PictureSizeLarge:
			set.Large = &url
		case PictureSizeMedium:
			set.Medium = &url
		case PictureSizeThumbnail:
			set.Thumbnail = &url
		}
		lookup[p.EmployeeID] = set
	}

	return lookup, nil
}

// List returns one page of the directory. The item map is keyed by employee
// name: two employees sharing a name collapse into one entry, the higher id
// winning because rows arrive ordered by id ascending. That mirrors the
// upstream directory contract and is kept for compatibility.
func (s *Service) List(dto ListQueryDTO) (*ListResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidPage)
	}

	total, err := s.repo.Count(dto.Query)
	if err != nil {
		s.logger.Error("failed to count employees", "error", err, "query", dto.Query)
		return nil, err
	}

	offset := (dto.Page - 1) * dto.PerPage
	employees, err := s.repo.Search(dto.Query, dto.PerPage, offset)
	if err != nil {
		s.logger.Error("failed to search employees", "error", err, "query", dto.Query, "page", dto.Page)
		return nil, err
	}

	// thumbnail lookup rebuilt on every request, no caching across calls
	pictures, err := s.BuildPictureLookup()
	if err != nil {
		return nil, err
	}

	items := make(map[string]ListItem, len(employees))
	for _, e := range employees {
		items[e.Name] = ListItem{
			ID:      e.ID,
			Email:   e.Email,
			Phone:   e.Phone,
			Country: e.Country,
			Age:     e.Age,
			Picture: pictures[e.ID].Thumbnail,
		}
	}

	return &ListResponse{
		Pagination: NewPagination(dto.Page, dto.PerPage, total),
		Employees:  items,
	}, nil
}

// GetByID returns the employee detail with its large picture URL, nil when
// the employee has no large picture row.
func (s *Service) GetByID(id int64) (*Detail, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Warn("employee not found", "employee_id", id)
			return nil, internal.ErrEmployeeNotFound
		}
		s.logger.Error("failed to load employee", "error", err, "employee_id", id)
		return nil, err
	}

	pictures, err := s.BuildPictureLookup()
	if err != nil {
		return nil, err
	}

	return &Detail{
		Employee: *e,
		Picture:  pictures[e.ID].Large,
	}, nil
}

package employee

import "errors"

// ListQueryDTO carries the parsed listing query parameters. PerPage is fixed
// by the handler, not by the caller.
type ListQueryDTO struct {
	Page    int
	PerPage int
	Query   string
}

// Validate checks the parsed query. Out-of-range pages are allowed through
// deliberately; only nonsensical values are rejected.
func (d ListQueryDTO) Validate() error {
	if d.Page < 1 {
		return errors.New("page must be >= 1")
	}
	if d.PerPage < 1 {
		return errors.New("per_page must be >= 1")
	}
	return nil
}

// ListResponse is the listing payload: pagination metadata plus the display
// records keyed by employee name, matching the upstream directory contract.
type ListResponse struct {
	Pagination Pagination          `json:"pagination"`
	Employees  map[string]ListItem `json:"employees"`
}

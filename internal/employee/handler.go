package employee

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/codecraft/employee-directory/internal"
	"github.com/codecraft/employee-directory/internal/transport"
	"github.com/codecraft/employee-directory/pkg/logger"
	"github.com/go-chi/chi"
)

// PerPage is fixed: the directory UI always requests 30 rows per page.
const PerPage = 30

type ServiceAPI interface {
	List(dto ListQueryDTO) (*ListResponse, error)
	GetByID(id int64) (*Detail, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// ListEmployees handles GET /employees?query=&page=.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 1 {
			page = p
		}
	}

	dto := ListQueryDTO{
		Page:    page,
		PerPage: PerPage,
		Query:   r.URL.Query().Get("query"),
	}

	resp, err := h.Service.List(dto)
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err, "page", page, "query", dto.Query)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// GetEmployee handles GET /employees/{id}. A non-numeric id is a bad
// request, an unknown id a not-found.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetEmployee: invalid employee id", "id", idStr)
		h.HandleServiceError(w, internal.ErrInvalidEmployeeID)
		return
	}

	detail, err := h.Service.GetByID(id)
	if err != nil {
		h.Logger.Error("GetEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/codecraft/employee-directory/internal"
	"github.com/codecraft/employee-directory/internal/transport"
	"github.com/codecraft/employee-directory/pkg/logger"
)

type ctxKey string

const ContextUserKey ctxKey = "currentUser"

// UserFromContext returns the authenticated user placed there by AuthMiddleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

type ServiceAPI interface {
	Register(dto RegisterDTO) (*User, error)
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserWithRoles(userID int64) (*User, error)
	Logout(userID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newUser, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("registration failed", "error", err, "username", dto.Username)
		h.writeAuthError(w, err, http.StatusInternalServerError)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Welcome to CodeCraft! Please login to continue.",
		"user":    newUser,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		switch err {
		case ErrInvalidCredentials:
			h.HandleServiceError(w, internal.ErrInvalidCredentials)
		case ErrUserInactive:
			h.HandleServiceError(w, internal.ErrUserInactive)
		default:
			h.writeAuthError(w, err, http.StatusInternalServerError)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)

		switch err {
		case ErrInvalidToken:
			h.HandleServiceError(w, internal.ErrInvalidToken)
		case ErrTokenExpired:
			h.HandleServiceError(w, internal.ErrTokenExpired)
		case ErrUserInactive:
			h.HandleServiceError(w, internal.ErrUserInactive)
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	claims, err := h.Service.ValidateAccessToken(token)
	if err != nil {
		h.HandleServiceError(w, internal.ErrInvalidToken)
		return
	}

	if err := h.Service.Logout(claims.UserID); err != nil {
		h.Logger.Error("logout failed", "error", err, "user_id", claims.UserID)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware validates the bearer token and loads the user with roles
// into the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.Logger.Error("auth middleware: missing authorization token")
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Error("token validation failed", "error", err)
			h.HandleServiceError(w, internal.ErrInvalidToken)
			return
		}

		currentUser, err := h.Service.GetUserWithRoles(claims.UserID)
		if err != nil {
			h.Logger.Error("auth middleware: failed to load user", "user_id", claims.UserID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "user not found")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserKey, currentUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeAuthError maps FieldErrors to a field-level validation payload (a
// taken username escalates to a conflict) and everything else to the
// fallback status.
func (h *Handler) writeAuthError(w http.ResponseWriter, err error, fallback int) {
	if fieldErrs, ok := err.(FieldErrors); ok {
		appErr := internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed)
		verrs := make([]internal.ValidationError, len(fieldErrs))
		for i, fe := range fieldErrs {
			code := internal.ErrCodeValidationFailed
			if fe.Msg == "Username already exists" {
				code = internal.ErrCodeUsernameTaken
				appErr = internal.NewConflictError("Username already exists", internal.ErrCodeUsernameTaken)
			}
			verrs[i] = internal.ValidationError{Field: fe.Field, Message: fe.Msg, Code: string(code)}
		}
		h.WriteJSON(w, appErr.StatusCode, internal.Response{
			Error: appErr.WithDetails(internal.ValidationErrors{Errors: verrs}),
		})
		return
	}
	h.WriteError(w, fallback, err.Error())
}

package auth_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/codecraft/employee-directory/internal"
	"github.com/codecraft/employee-directory/internal/auth"
)

// Mock auth service for handler testing
type mockAuthService struct {
	registerUser *auth.User
	registerErr  error
	tokens       auth.AuthTokens
	authErr      error
	claims       *auth.Claims
	validateErr  error
	contextUser  *auth.User
	rolesErr     error
	logoutErr    error
	loggedOutID  int64
}

func (m *mockAuthService) Register(dto auth.RegisterDTO) (*auth.User, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return m.registerUser, nil
}

func (m *mockAuthService) Authenticate(dto auth.LoginDTO) (auth.AuthTokens, error) {
	if m.authErr != nil {
		return auth.AuthTokens{}, m.authErr
	}
	return m.tokens, nil
}

func (m *mockAuthService) RefreshTokens(refreshToken string) (auth.AuthTokens, error) {
	if m.authErr != nil {
		return auth.AuthTokens{}, m.authErr
	}
	return m.tokens, nil
}

func (m *mockAuthService) ValidateAccessToken(tokenString string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.claims, nil
}

func (m *mockAuthService) GetUserWithRoles(userID int64) (*auth.User, error) {
	if m.rolesErr != nil {
		return nil, m.rolesErr
	}
	return m.contextUser, nil
}

func (m *mockAuthService) Logout(userID int64) error {
	m.loggedOutID = userID
	return m.logoutErr
}

var _ = Describe("Auth Handler", func() {
	var (
		service *mockAuthService
		handler *auth.Handler
	)

	BeforeEach(func() {
		service = &mockAuthService{}
		handler = auth.NewHandler(service)
	})

	Describe("Register", func() {
		It("should return 201 with the created user", func() {
			service.registerUser = &auth.User{
				ID:       1,
				Email:    "jdoe@codecraft.com",
				Username: "jdoe",
				Roles:    []string{auth.RoleUser},
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/register",
				strings.NewReader(`{"username":"jdoe","password":"secret123"}`))
			rec := httptest.NewRecorder()
			handler.Register(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var body map[string]json.RawMessage
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body).To(HaveKey("message"))
			Expect(body).To(HaveKey("user"))
		})

		It("should return 409 when the username is taken", func() {
			service.registerErr = auth.FieldErrors{{Field: "username", Msg: "Username already exists"}}

			req := httptest.NewRequest(http.MethodPost, "/auth/register",
				strings.NewReader(`{"username":"jdoe","password":"secret123"}`))
			rec := httptest.NewRecorder()
			handler.Register(rec, req)

			Expect(rec.Code).To(Equal(http.StatusConflict))

			var body internal.Response
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Error.Code).To(Equal(internal.ErrCodeUsernameTaken))
			Expect(body.Error.Type).To(Equal(internal.ErrorTypeConflict))
		})

		It("should return 400 for missing fields", func() {
			service.registerErr = auth.FieldErrors{{Field: "password", Msg: "Please fill in password"}}

			req := httptest.NewRequest(http.MethodPost, "/auth/register",
				strings.NewReader(`{"username":"jdoe"}`))
			rec := httptest.NewRecorder()
			handler.Register(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
			rec := httptest.NewRecorder()
			handler.Register(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 500 when the account cannot be written", func() {
			service.registerErr = errors.New("write failed")

			req := httptest.NewRequest(http.MethodPost, "/auth/register",
				strings.NewReader(`{"username":"jdoe","password":"secret123"}`))
			rec := httptest.NewRecorder()
			handler.Register(rec, req)

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("Login", func() {
		It("should return the token pair for valid credentials", func() {
			service.tokens = auth.AuthTokens{AccessToken: "access", RefreshToken: "refresh"}

			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"username":"jdoe","password":"secret123"}`))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var tokens auth.AuthTokens
			Expect(json.Unmarshal(rec.Body.Bytes(), &tokens)).To(Succeed())
			Expect(tokens.AccessToken).To(Equal("access"))
			Expect(tokens.RefreshToken).To(Equal("refresh"))
		})

		It("should return 401 with the credentials error code for bad credentials", func() {
			service.authErr = auth.ErrInvalidCredentials

			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"username":"jdoe","password":"wrong"}`))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))

			var body internal.Response
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Error.Code).To(Equal(internal.ErrCodeInvalidCredentials))
		})

		It("should return 403 for an inactive account", func() {
			service.authErr = auth.ErrUserInactive

			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"username":"jdoe","password":"secret123"}`))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)

			Expect(rec.Code).To(Equal(http.StatusForbidden))

			var body internal.Response
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Error.Code).To(Equal(internal.ErrCodeUserInactive))
		})
	})

	Describe("RefreshToken", func() {
		It("should return a fresh token pair", func() {
			service.tokens = auth.AuthTokens{AccessToken: "new-access", RefreshToken: "new-refresh"}

			req := httptest.NewRequest(http.MethodPost, "/auth/refresh",
				strings.NewReader(`{"refresh_token":"old-refresh"}`))
			rec := httptest.NewRecorder()
			handler.RefreshToken(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("should return 400 when the refresh token is missing", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			handler.RefreshToken(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 401 for an invalid refresh token", func() {
			service.authErr = auth.ErrInvalidToken

			req := httptest.NewRequest(http.MethodPost, "/auth/refresh",
				strings.NewReader(`{"refresh_token":"bogus"}`))
			rec := httptest.NewRecorder()
			handler.RefreshToken(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))

			var body internal.Response
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Error.Code).To(Equal(internal.ErrCodeInvalidToken))
		})

		It("should return 401 with the expiry code for an expired refresh token", func() {
			service.authErr = auth.ErrTokenExpired

			req := httptest.NewRequest(http.MethodPost, "/auth/refresh",
				strings.NewReader(`{"refresh_token":"stale"}`))
			rec := httptest.NewRecorder()
			handler.RefreshToken(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))

			var body internal.Response
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Error.Code).To(Equal(internal.ErrCodeTokenExpired))
		})
	})

	Describe("Logout", func() {
		It("should return 204 and log out the token's user", func() {
			service.claims = &auth.Claims{UserID: 7, Username: "jdoe"}

			req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
			req.Header.Set("Authorization", "Bearer some-token")
			rec := httptest.NewRecorder()
			handler.Logout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(service.loggedOutID).To(Equal(int64(7)))
		})

		It("should return 401 without a bearer token", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
			rec := httptest.NewRecorder()
			handler.Logout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("AuthMiddleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			protected = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				currentUser, ok := auth.UserFromContext(r.Context())
				Expect(ok).To(BeTrue())
				w.Write([]byte(currentUser.Username))
			}))
		})

		It("should load the user into the request context", func() {
			service.claims = &auth.Claims{UserID: 7, Username: "jdoe"}
			service.contextUser = &auth.User{ID: 7, Username: "jdoe", Roles: []string{auth.RoleUser}}

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			req.Header.Set("Authorization", "Bearer some-token")
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(Equal("jdoe"))
		})

		It("should reject a missing token", func() {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should reject an invalid token", func() {
			service.validateErr = auth.ErrInvalidToken

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			req.Header.Set("Authorization", "Bearer bogus")
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should reject a token whose user no longer exists", func() {
			service.claims = &auth.Claims{UserID: 7, Username: "jdoe"}
			service.rolesErr = errors.New("user not found")

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			req.Header.Set("Authorization", "Bearer some-token")
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})

var _ = Describe("RoleAuthorization", func() {
	var (
		router  chi.Router
		service *mockAuthService
	)

	BeforeEach(func() {
		service = &mockAuthService{
			claims: &auth.Claims{UserID: 7, Username: "jdoe"},
		}
		handler := auth.NewHandler(service)
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		roleAuth := auth.NewRoleAuthorization(lg)

		router = chi.NewRouter()
		router.Group(func(r chi.Router) {
			r.Use(handler.AuthMiddleware)
			r.Use(roleAuth.RequireRole(auth.RoleAdmin))
			r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("ok"))
			})
		})
	})

	It("should let an admin through", func() {
		service.contextUser = &auth.User{ID: 7, Username: "jdoe", Roles: []string{auth.RoleAdmin, auth.RoleUser}}

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("should return 403 with the role error code for a user without the role", func() {
		service.contextUser = &auth.User{ID: 7, Username: "jdoe", Roles: []string{auth.RoleUser}}

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusForbidden))

		var body internal.Response
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Error.Code).To(Equal(internal.ErrCodeRoleRequired))
	})

	It("should return 401 when no user is in the context", func() {
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		roleAuth := auth.NewRoleAuthorization(lg)
		bare := roleAuth.RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}))

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()
		bare.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})
})

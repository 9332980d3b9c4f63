package auth

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterDTO is the transport shape for registration requests.
type RegisterDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// FieldError is a validation failure tied to a single form field, so the
// client can re-render the field with an inline message.
type FieldError struct {
	Field string
	Msg   string
}

func (f FieldError) Error() string { return f.Msg }

// FieldErrors collects per-field validation failures.
type FieldErrors []FieldError

func (f FieldErrors) Error() string {
	if len(f) == 0 {
		return "validation failed"
	}
	return f[0].Msg
}

// Validate checks required fields and returns FieldErrors on failure.
func (d LoginDTO) Validate() error {
	var errs FieldErrors
	if d.Username == "" {
		errs = append(errs, FieldError{Field: "username", Msg: "Please fill in username"})
	}
	if d.Password == "" {
		errs = append(errs, FieldError{Field: "password", Msg: "Please fill in password"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (d RegisterDTO) Validate() error {
	var errs FieldErrors
	if d.Username == "" {
		errs = append(errs, FieldError{Field: "username", Msg: "Please fill in username"})
	}
	if d.Password == "" {
		errs = append(errs, FieldError{Field: "password", Msg: "Please fill in password"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return FieldErrors{{Field: "refresh_token", Msg: "refresh_token is required"}}
	}
	return nil
}

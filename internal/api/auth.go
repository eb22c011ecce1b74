package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// registerRequest is the body of POST /users. The validate tags cover
// field-presence checks only; real validation verdicts come from the
// collaborator as a 422.
type registerRequest struct {
	Name               string `json:"name" validate:"required"`
	Identifier         string `json:"identifier" validate:"required,email"`
	Secret             string `json:"secret" validate:"required,min=8"`
	SecretConfirmation string `json:"secret_confirmation" validate:"required,eqfield=Secret"`
	Role               string `json:"role,omitempty"`
}

// authResponse is what login and registration return on success.
type authResponse struct {
	Token    string           `json:"token"`
	Identity session.Identity `json:"identity"`
}

// Login authenticates against POST /auth/login. A 401 here means the
// credentials were rejected, not that a session expired.
func (c *Client) Login(ctx context.Context, creds session.Credentials) (session.AuthResult, error) {
	body, err := json.Marshal(loginRequest{
		Identifier: creds.Identifier,
		Secret:     creds.Secret,
	})
	if err != nil {
		return session.AuthResult{}, session.ErrUnhandled.Msg("failed to encode login request: " + err.Error())
	}

	raw, err := c.DoRequest(ctx, RequestOptions{
		Method:   http.MethodPost,
		Path:     "auth/login",
		Body:     body,
		AuthFlow: true,
	})
	if err != nil {
		return session.AuthResult{}, err
	}
	return decodeAuthResponse(raw)
}

// Register creates a new account via POST /users and returns the credential
// the collaborator issues for it; registering implicitly logs the account in.
// Field-presence problems are caught locally before any network call.
func (c *Client) Register(ctx context.Context, reg session.Registration) (session.AuthResult, error) {
	req := registerRequest{
		Name:               reg.Name,
		Identifier:         reg.Identifier,
		Secret:             reg.Secret,
		SecretConfirmation: reg.SecretConfirm,
		Role:               string(reg.Role),
	}
	if err := validate.Struct(req); err != nil {
		return session.AuthResult{}, session.ErrValidationRejected.Msg(validationMessage(err))
	}

	body, err := json.Marshal(req)
	if err != nil {
		return session.AuthResult{}, session.ErrUnhandled.Msg("failed to encode registration request: " + err.Error())
	}

	raw, err := c.DoRequest(ctx, RequestOptions{
		Method:   http.MethodPost,
		Path:     "users",
		Body:     body,
		AuthFlow: true,
	})
	if err != nil {
		return session.AuthResult{}, err
	}
	return decodeAuthResponse(raw)
}

// Logout notifies POST /auth/logout that the session is ending. Callers treat
// it as best effort.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.DoRequest(ctx, RequestOptions{
		Method:   http.MethodPost,
		Path:     "auth/logout",
		AuthFlow: true,
	})
	return err
}

// Me validates the stored credential against GET /auth/me and returns the
// identity it proves. A 401 triggers the unauthorized hook.
func (c *Client) Me(ctx context.Context) (session.Identity, error) {
	raw, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   "auth/me",
	})
	if err != nil {
		return session.Identity{}, err
	}

	var resp struct {
		Identity session.Identity `json:"identity"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return session.Identity{}, session.ErrUnhandled.Msg("failed to parse identity response: " + err.Error())
	}
	return resp.Identity, nil
}

func decodeAuthResponse(raw []byte) (session.AuthResult, error) {
	var resp authResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return session.AuthResult{}, session.ErrUnhandled.Msg("failed to parse auth response: " + err.Error())
	}
	if resp.Token == "" {
		return session.AuthResult{}, session.ErrUnhandled.Msg("auth response missing token")
	}
	return session.AuthResult{Token: resp.Token, User: resp.Identity}, nil
}

// validationMessage flattens validator errors into the same one-line shape
// the collaborator's 422 payloads produce.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	var parts []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "email":
			parts = append(parts, fe.Field()+" must be a valid email address")
		case "min":
			parts = append(parts, fe.Field()+" must be at least "+fe.Param()+" characters")
		case "eqfield":
			parts = append(parts, fe.Field()+" does not match "+fe.Param())
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}

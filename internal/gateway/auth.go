package gateway

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hyuga-t/todo-front/internal/models"
)

// AuthGateway translates auth and user-management calls into
// requests against the external API.
type AuthGateway interface {
	// Login exchanges credentials for a token pair. It returns
	// ErrInvalidCredentials when the API rejects them or omits
	// the access token.
	Login(ctx context.Context, email, password string) (*models.Token, error)

	// Signup registers a new account and returns its token pair.
	Signup(ctx context.Context, email, username, password string) (*models.Token, error)

	// CurrentUser resolves the user behind the access token.
	// It returns ErrUnauthorized on an upstream 401.
	CurrentUser(ctx context.Context, accessToken string) (*models.User, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, accessToken, userUUID string) (*models.User, error)

	// UpdateUser validates the params locally before calling the
	// API. It returns *ValidationError enumerating every violated
	// field, in which case no request is made.
	UpdateUser(ctx context.Context, accessToken, userUUID string, params UpdateUserParams) (*models.User, error)

	DeleteUser(ctx context.Context, userUUID string) error
	ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error
}

type UpdateUserParams struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

func (p UpdateUserParams) validate() *ValidationError {
	var fields []FieldError
	if len(p.Username) < 4 {
		fields = append(fields, FieldError{
			Field:   "username",
			Message: "username length is 4 at least",
		})
	}
	if p.Email == "" {
		fields = append(fields, FieldError{
			Field:   "email",
			Message: "email must not be empty",
		})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type authGatewayImpl struct {
	logger zerolog.Logger
	client *Client
}

func NewAuthGateway(logger zerolog.Logger, client *Client) AuthGateway {
	return &authGatewayImpl{
		logger: logger,
		client: client,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (g *authGatewayImpl) Login(ctx context.Context, email, password string) (*models.Token, error) {
	var token models.Token
	err := g.client.do(ctx, http.MethodPost, "/auth/auth_token", "", loginRequest{
		Email:    email,
		Password: password,
	}, &token)
	if err != nil {
		if _, ok := err.(*NetworkError); ok {
			return nil, err
		}
		g.logger.Warn().
			Err(err).
			Msg("login rejected")
		return nil, ErrInvalidCredentials
	}

	if token.AccessToken == "" {
		g.logger.Error().Msg("no access token in login response")
		return nil, ErrInvalidCredentials
	}
	return &token, nil
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (g *authGatewayImpl) Signup(ctx context.Context, email, username, password string) (*models.Token, error) {
	var token models.Token
	err := g.client.do(ctx, http.MethodPost, "/users/signup", "", signupRequest{
		Email:    email,
		Username: username,
		Password: password,
	}, &token)
	if err != nil {
		return nil, err
	}

	if token.AccessToken == "" {
		g.logger.Error().Msg("no access token in signup response")
		return nil, ErrInvalidCredentials
	}
	return &token, nil
}

func (g *authGatewayImpl) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	var user models.User
	err := g.client.do(ctx, http.MethodGet, "/auth/me", accessToken, nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *authGatewayImpl) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := g.client.do(ctx, http.MethodGet, "/users/all_user", "", nil, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (g *authGatewayImpl) GetUser(ctx context.Context, accessToken, userUUID string) (*models.User, error) {
	var user models.User
	err := g.client.do(ctx, http.MethodGet, "/user/"+userUUID, accessToken, nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *authGatewayImpl) UpdateUser(ctx context.Context, accessToken, userUUID string, params UpdateUserParams) (*models.User, error) {
	if verr := params.validate(); verr != nil {
		g.logger.Warn().
			Str("user_uuid", userUUID).
			Err(verr).
			Msg("rejected user update")
		return nil, verr
	}

	var user models.User
	err := g.client.do(ctx, http.MethodPatch, "/users/edit_user/"+userUUID, accessToken, params, &user)
	if err != nil {
		return nil, err
	}

	g.logger.Info().
		Str("user_uuid", userUUID).
		Msg("updated user")
	return &user, nil
}

func (g *authGatewayImpl) DeleteUser(ctx context.Context, userUUID string) error {
	err := g.client.do(ctx, http.MethodDelete, "/user/delete_user/"+userUUID, "", nil, nil)
	if err != nil {
		return err
	}

	g.logger.Info().
		Str("user_uuid", userUUID).
		Msg("deleted user")
	return nil
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (g *authGatewayImpl) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error {
	return g.client.do(ctx, http.MethodPost, "/auth/change_password", accessToken, changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
}

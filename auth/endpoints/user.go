package endpoints

import (
	"context"
	"net/http"

	"github.com/BOCK-CHAIN/BockDocsBackend/auth"
	"github.com/BOCK-CHAIN/BockDocsBackend/auth/services"
	"github.com/BOCK-CHAIN/BockDocsBackend/users"
)

type UserEndpoint struct {
	service *services.UserService
}

func NewUserEndpoint(s *services.UserService) UserEndpoint {
	return UserEndpoint{
		service: s,
	}
}

// AuthResponse is the payload of every endpoint that opens a session.
type AuthResponse struct {
	User  auth.Profile `json:"user"`
	Token string       `json:"token"`
}

type createdAuthResponse struct {
	AuthResponse
}

func (createdAuthResponse) StatusCode() int { return http.StatusCreated }

type SignUpRequest struct {
	Email    string
	Password string
	Name     string
}

func (ep UserEndpoint) SignUp(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(SignUpRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	user, token, err := ep.service.SignUp(req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}

	return createdAuthResponse{AuthResponse{User: user.Profile(), Token: token}}, nil
}

type SignInRequest struct {
	Email    string
	Password string
}

func (ep UserEndpoint) SignIn(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(SignInRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	user, token, err := ep.service.SignIn(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return AuthResponse{User: user.Profile(), Token: token}, nil
}

func (ep UserEndpoint) GoogleSignIn(ctx context.Context, r interface{}) (interface{}, error) {
	accessToken, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	user, token, err := ep.service.GoogleSignIn(accessToken)
	if err != nil {
		return nil, err
	}

	return AuthResponse{User: user.Profile(), Token: token}, nil
}

func (ep UserEndpoint) Me(ctx context.Context, _ interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := ep.service.Get(caller.ID)
	if err != nil {
		return nil, err
	}

	return user.Profile(), nil
}

type UpdateProfileRequest struct {
	Name  string
	Email string
}

func (ep UserEndpoint) UpdateProfile(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(UpdateProfileRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	user, err := ep.service.UpdateProfile(caller.ID, req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	return user.Profile(), nil
}

type ChangePasswordRequest struct {
	CurrentPassword string
	NewPassword     string
}

func (ep UserEndpoint) ChangePassword(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(ChangePasswordRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	if err := ep.service.ChangePassword(caller.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return nil, err
	}

	return messageResponse{"Password updated"}, nil
}

func (ep UserEndpoint) DeleteAccount(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	password, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	if err := ep.service.DeleteAccount(caller.ID, password); err != nil {
		return nil, err
	}

	return messageResponse{"Account deleted"}, nil
}

// Logout exists for API symmetry: the session is a stateless JWT, discarding
// it is the client's job.
func (ep UserEndpoint) Logout(ctx context.Context, _ interface{}) (interface{}, error) {
	return messageResponse{"Signed out"}, nil
}

func (ep UserEndpoint) ForgotPassword(ctx context.Context, r interface{}) (interface{}, error) {
	email, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	message, err := ep.service.RequestPasswordReset(email)
	if err != nil {
		return nil, err
	}

	return messageResponse{message}, nil
}

type ResetPasswordRequest struct {
	Token       string
	NewPassword string
}

func (ep UserEndpoint) ResetPassword(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(ResetPasswordRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	if err := ep.service.CompletePasswordReset(req.Token, req.NewPassword); err != nil {
		return nil, err
	}

	return messageResponse{"Password has been reset"}, nil
}

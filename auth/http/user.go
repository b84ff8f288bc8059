package http

import (
	"context"
	"encoding/json"
	"net/http"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/BOCK-CHAIN/BockDocsBackend/auth/endpoints"
	"github.com/BOCK-CHAIN/BockDocsBackend/auth/services"
	"github.com/BOCK-CHAIN/BockDocsBackend/jwt"
)

func RegisterUserEndpoints(srv Server, service *services.UserService, jwtKey []byte) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}

	jwtMiddleware := jwt.Middleware(jwtKey)

	// Create endpoint
	ep := endpoints.NewUserEndpoint(service)

	signUpHandler := kithttp.NewServer(
		ep.SignUp,
		decodeSignUpRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	signInHandler := kithttp.NewServer(
		ep.SignIn,
		decodeSignInRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	googleHandler := kithttp.NewServer(
		ep.GoogleSignIn,
		decodeGoogleRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	meHandler := kithttp.NewServer(
		jwtMiddleware(ep.Me),
		decodeMeRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	updateProfileHandler := kithttp.NewServer(
		jwtMiddleware(ep.UpdateProfile),
		decodeUpdateProfileRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	changePasswordHandler := kithttp.NewServer(
		jwtMiddleware(ep.ChangePassword),
		decodeChangePasswordRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	deleteAccountHandler := kithttp.NewServer(
		jwtMiddleware(ep.DeleteAccount),
		decodeDeleteAccountRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	logoutHandler := kithttp.NewServer(
		ep.Logout,
		decodeMeRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	forgotPasswordHandler := kithttp.NewServer(
		ep.ForgotPassword,
		decodeForgotPasswordRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	resetPasswordHandler := kithttp.NewServer(
		ep.ResetPassword,
		decodeResetPasswordRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Routes
	srv.RegisterHandler("/auth/signup", "POST", signUpHandler)
	srv.RegisterHandler("/auth/signin", "POST", signInHandler)
	srv.RegisterHandler("/auth/google", "POST", googleHandler)
	srv.RegisterHandler("/auth/me", "GET", meHandler)
	srv.RegisterHandler("/auth/me", "PUT", updateProfileHandler)
	srv.RegisterHandler("/auth/change-password", "POST", changePasswordHandler)
	srv.RegisterHandler("/auth/me", "DELETE", deleteAccountHandler)
	srv.RegisterHandler("/auth/logout", "POST", logoutHandler)
	srv.RegisterHandler("/auth/forgot-password", "POST", forgotPasswordHandler)
	srv.RegisterHandler("/auth/reset-password", "POST", resetPasswordHandler)
}

func decodeSignUpRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	req := endpoints.SignUpRequest{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
	}
	return req, nil
}

func decodeSignInRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	req := endpoints.SignInRequest{
		Email:    body.Email,
		Password: body.Password,
	}
	return req, nil
}

func decodeGoogleRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return body.AccessToken, nil
}

func decodeMeRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body
	return nil, nil
}

func decodeUpdateProfileRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	req := endpoints.UpdateProfileRequest{
		Name:  body.Name,
		Email: body.Email,
	}
	return req, nil
}

func decodeChangePasswordRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	req := endpoints.ChangePasswordRequest{
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	}
	return req, nil
}

func decodeDeleteAccountRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return body.Password, nil
}

func decodeForgotPasswordRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return body.Email, nil
}

func decodeResetPasswordRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	req := endpoints.ResetPasswordRequest{
		Token:       body.Token,
		NewPassword: body.NewPassword,
	}
	return req, nil
}

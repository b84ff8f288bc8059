package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/BOCK-CHAIN/BockDocsBackend/documents"
	"github.com/BOCK-CHAIN/BockDocsBackend/documents/endpoints"
	"github.com/BOCK-CHAIN/BockDocsBackend/documents/services"
	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
	"github.com/BOCK-CHAIN/BockDocsBackend/jwt"
)

func RegisterDocumentEndpoints(srv Server, service *services.DocumentService, jwtKey []byte) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}

	jwtMiddleware := jwt.Middleware(jwtKey)
	optionalJWTMiddleware := jwt.OptionalMiddleware(jwtKey)

	// Create endpoint
	ep := endpoints.NewDocumentEndpoint(service)

	createHandler := kithttp.NewServer(
		jwtMiddleware(ep.Create),
		decodeCreateRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	listHandler := kithttp.NewServer(
		jwtMiddleware(ep.List),
		decodeListRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	getHandler := kithttp.NewServer(
		jwtMiddleware(ep.Get),
		decodeDocumentIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Save takes the optional middleware: the request may be authorized by
	// a share token in the body instead of a session.
	saveHandler := kithttp.NewServer(
		optionalJWTMiddleware(ep.Save),
		decodeSaveRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	deleteHandler := kithttp.NewServer(
		jwtMiddleware(ep.Delete),
		decodeDocumentIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	shareHandler := kithttp.NewServer(
		jwtMiddleware(ep.CreateShareLink),
		decodeShareRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	emailShareHandler := kithttp.NewServer(
		jwtMiddleware(ep.ShareViaEmail),
		decodeEmailShareRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	sharedHandler := kithttp.NewServer(
		ep.GetShared,
		decodeSharedRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Routes
	srv.RegisterHandler("/documents", "POST", createHandler)
	srv.RegisterHandler("/documents", "GET", listHandler)
	srv.RegisterHandler("/documents/:id", "GET", getHandler)
	srv.RegisterHandler("/documents/:id", "PUT", saveHandler)
	srv.RegisterHandler("/documents/:id", "DELETE", deleteHandler)
	srv.RegisterHandler("/documents/:id/share", "POST", shareHandler)
	srv.RegisterHandler("/documents/:id/share/email", "POST", emailShareHandler)
	srv.RegisterHandler("/shared/:token", "GET", sharedHandler)
}

// documentID parses the :id parameter. A non-numeric id is a client error, it
// never reaches the store.
func documentID(ctx context.Context) (int, error) {
	params := ctx.Value("params").(map[string]string)
	id, err := strconv.Atoi(params["id"])
	if err != nil {
		return 0, errors.New("invalid document id", errors.BadRequest())
	}

	return id, nil
}

func decodeCreateRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	req := endpoints.CreateRequest{
		Title:   body.Title,
		Content: body.Content,
	}
	return req, nil
}

func decodeListRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	ownerID := 0
	if raw := r.URL.Query().Get("ownerId"); raw != "" {
		var err error
		ownerID, err = strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("invalid owner id", errors.BadRequest())
		}
	}

	return ownerID, nil
}

func decodeDocumentIDRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body
	return documentID(ctx)
}

func decodeSaveRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	id, err := documentID(ctx)
	if err != nil {
		return nil, err
	}

	var body struct {
		Title      *string `json:"title"`
		Content    *string `json:"content"`
		ShareToken string  `json:"shareToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	req := services.SaveRequest{
		ID:         id,
		Title:      body.Title,
		Content:    body.Content,
		ShareToken: body.ShareToken,
	}
	return req, nil
}

func decodeShareRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	id, err := documentID(ctx)
	if err != nil {
		return nil, err
	}

	var body struct {
		Permission string `json:"permission"`
		TTLSeconds int    `json:"ttlSeconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Permission == "" {
		body.Permission = string(documents.PermissionView)
	}

	req := endpoints.ShareRequest{
		DocumentID: id,
		Permission: documents.Permission(body.Permission),
		TTL:        time.Duration(body.TTLSeconds) * time.Second,
	}
	return req, nil
}

func decodeEmailShareRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	id, err := documentID(ctx)
	if err != nil {
		return nil, err
	}

	var body struct {
		Email      string `json:"recipientEmail"`
		Permission string `json:"permission"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Permission == "" {
		body.Permission = string(documents.PermissionView)
	}

	req := endpoints.EmailShareRequest{
		DocumentID: id,
		Email:      body.Email,
		Permission: documents.Permission(body.Permission),
	}
	return req, nil
}

func decodeSharedRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	params := ctx.Value("params").(map[string]string)
	return params["token"], nil
}

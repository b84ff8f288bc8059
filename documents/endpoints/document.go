package endpoints

import (
	"context"
	"net/http"
	"time"

	"github.com/BOCK-CHAIN/BockDocsBackend/documents"
	"github.com/BOCK-CHAIN/BockDocsBackend/documents/services"
	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
	"github.com/BOCK-CHAIN/BockDocsBackend/users"
)

var errInvalidRequest = errors.New("invalid request", errors.BadRequest())

type DocumentEndpoint struct {
	service *services.DocumentService
}

func NewDocumentEndpoint(s *services.DocumentService) DocumentEndpoint {
	return DocumentEndpoint{
		service: s,
	}
}

type CreateRequest struct {
	Title   string
	Content string
}

type createdDocument struct {
	documents.Document
}

func (createdDocument) StatusCode() int { return http.StatusCreated }

func (ep DocumentEndpoint) Create(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(CreateRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	doc, err := ep.service.Create(caller, req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	return createdDocument{doc}, nil
}

func (ep DocumentEndpoint) List(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	ownerID, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	docs, err := ep.service.List(caller, ownerID)
	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (ep DocumentEndpoint) Get(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Get(caller, id)
}

// Save does not require a principal: a share token carried in the body is an
// access path of its own. The service decides which path applies.
func (ep DocumentEndpoint) Save(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(services.SaveRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	caller, authenticated := users.MaybeFromContext(ctx)
	return ep.service.Save(caller, authenticated, req)
}

func (ep DocumentEndpoint) Delete(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	if err := ep.service.Delete(caller, id); err != nil {
		return nil, err
	}

	return map[string]string{"message": "Document deleted"}, nil
}

type ShareRequest struct {
	DocumentID int
	Permission documents.Permission
	TTL        time.Duration
}

func (ep DocumentEndpoint) CreateShareLink(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(ShareRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	share, err := ep.service.CreateShareLink(caller, req.DocumentID, req.Permission, req.TTL)
	if err != nil {
		return nil, err
	}

	return createdShare{share}, nil
}

type createdShare struct {
	services.CreatedShare
}

func (createdShare) StatusCode() int { return http.StatusCreated }

type EmailShareRequest struct {
	DocumentID int
	Email      string
	Permission documents.Permission
}

func (ep DocumentEndpoint) ShareViaEmail(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(EmailShareRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.ShareViaEmail(caller, req.DocumentID, req.Email, req.Permission)
}

// GetShared is anonymous: the token is the whole credential.
func (ep DocumentEndpoint) GetShared(ctx context.Context, r interface{}) (interface{}, error) {
	token, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.GetShared(token)
}

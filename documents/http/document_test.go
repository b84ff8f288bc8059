package http

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BOCK-CHAIN/BockDocsBackend/documents"
	"github.com/BOCK-CHAIN/BockDocsBackend/documents/inmem"
	"github.com/BOCK-CHAIN/BockDocsBackend/documents/services"
	"github.com/BOCK-CHAIN/BockDocsBackend/gin"
	"github.com/BOCK-CHAIN/BockDocsBackend/jwt"
	"github.com/BOCK-CHAIN/BockDocsBackend/mail"
)

var testKey = []byte("test key")

type stubNotifier struct{}

func (stubNotifier) SendShareLink(recipient, sharerEmail, title, shareURL, permission string) mail.Result {
	return mail.Sent()
}

func createServer(t *testing.T) *gin.Server {
	t.Helper()

	repo := inmem.NewDocumentRepository()
	shares := services.NewShareService(inmem.NewShareLinkRepository(), repo)
	service := services.NewDocumentService(repo, shares, stubNotifier{}, "http://host")

	srv := gin.New("test")
	RegisterDocumentEndpoints(srv, service, testKey)
	return srv
}

func bearer(t *testing.T, id int, email string) string {
	t.Helper()

	token, err := jwt.NewEncodeDecoder(testKey).Encode(id, email)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestDocumentRoutes_NoSession(t *testing.T) {
	srv := createServer(t)

	// No Authorization header
	req := httptest.NewRequest("GET", "/documents", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	// Garbage bearer
	req = httptest.NewRequest("GET", "/documents", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
}

func TestDocumentRoutes_InvalidID(t *testing.T) {
	srv := createServer(t)

	// A non-numeric id fails before any store access
	req := httptest.NewRequest("GET", "/documents/abc", nil)
	req.Header.Set("Authorization", bearer(t, 1, "alice@bock.com"))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestDocumentRoutes_CreateAndGet(t *testing.T) {
	srv := createServer(t)
	auth := bearer(t, 1, "alice@bock.com")

	req := httptest.NewRequest("POST", "/documents", strings.NewReader(`{"title":"Plan","content":"v1"}`))
	req.Header.Set("Authorization", auth)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code)

	var doc documents.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Plan", doc.Title)
	require.NotEqual(t, 0, doc.ID)

	req = httptest.NewRequest("GET", fmt.Sprintf("/documents/%d", doc.ID), nil)
	req.Header.Set("Authorization", auth)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	// Another user's session is rejected
	req = httptest.NewRequest("GET", fmt.Sprintf("/documents/%d", doc.ID), nil)
	req.Header.Set("Authorization", bearer(t, 2, "bob@bock.com"))
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, 403, w.Code)
}

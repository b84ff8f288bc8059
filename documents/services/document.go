package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/BOCK-CHAIN/BockDocsBackend/documents"
	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
	"github.com/BOCK-CHAIN/BockDocsBackend/mail"
	"github.com/BOCK-CHAIN/BockDocsBackend/users"
)

// emailedShareTTL is the validity of links created through the email share
// flow. It is fixed: a caller-supplied ttl is ignored on purpose.
const emailedShareTTL = 24 * time.Hour

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ShareNotifier delivers share links by mail, best effort. Its result is
// carried back to the caller instead of failing the request.
type ShareNotifier interface {
	SendShareLink(recipient, sharerEmail, title, shareURL, permission string) mail.Result
}

func errDocumentForbidden(id int) error {
	return errors.New(fmt.Sprintf("you do not have access to document %d", id), errors.Forbidden())
}

// DocumentService is the authorization core: every operation first resolves
// the caller's access path (owner principal or share token), authorizes it,
// and only then touches the store.
type DocumentService struct {
	repository documents.DocumentRepository
	shares     *ShareService
	notifier   ShareNotifier

	baseURL string
}

func NewDocumentService(
	repo documents.DocumentRepository,
	shares *ShareService,
	notifier ShareNotifier,
	baseURL string,
) *DocumentService {
	return &DocumentService{
		repository: repo,
		shares:     shares,
		notifier:   notifier,

		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *DocumentService) Create(caller users.User, title, content string) (documents.Document, error) {
	if title == "" {
		title = documents.DefaultTitle
	}

	doc := documents.Document{
		OwnerID: caller.ID,
		Title:   title,
		Content: content,
	}
	if err := s.repository.Upsert(&doc); err != nil {
		return documents.Document{}, err
	}

	return doc, nil
}

func (s *DocumentService) Get(caller users.User, id int) (documents.Document, error) {
	return s.ownedDocument(caller, id)
}

// List returns the caller's documents, most recently modified first. A
// requested owner id of 0 defaults to the caller; any other user's documents
// are off limits.
func (s *DocumentService) List(caller users.User, requestedOwnerID int) ([]documents.Document, error) {
	if requestedOwnerID != 0 && requestedOwnerID != caller.ID {
		return nil, errors.New("you can only list your own documents", errors.Forbidden())
	}

	return s.repository.ListByOwner(caller.ID)
}

type SaveRequest struct {
	ID         int
	Title      *string
	Content    *string
	ShareToken string
}

// Save is the one dual-path operation. A share token, when supplied, is the
// access path: it must resolve with edit permission against this document,
// and the principal is never consulted, not even as a fallback. Without a
// token the caller must be the authenticated owner. Only the supplied fields
// are applied; omitted ones keep their current value.
func (s *DocumentService) Save(caller users.User, authenticated bool, req SaveRequest) (documents.Document, error) {
	var doc documents.Document
	if req.ShareToken != "" {
		var err error
		doc, _, err = s.shares.Resolve(req.ShareToken, req.ID, documents.PermissionEdit)
		if err != nil {
			return documents.Document{}, err
		}
	} else {
		if !authenticated {
			return documents.Document{}, errors.New("authentication required", errors.Unauthorized())
		}

		var err error
		doc, err = s.ownedDocument(caller, req.ID)
		if err != nil {
			return documents.Document{}, err
		}
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Content != nil {
		doc.Content = *req.Content
	}

	if err := s.repository.Upsert(&doc); err != nil {
		return documents.Document{}, err
	}

	return doc, nil
}

// Delete removes the document and all of its share links. Owner only.
func (s *DocumentService) Delete(caller users.User, id int) error {
	if _, err := s.ownedDocument(caller, id); err != nil {
		return err
	}

	if err := s.repository.Delete(id); err != nil {
		return err
	}

	return s.shares.links.DeleteByDocument(id)
}

// DeleteAllForOwner removes every document of an account along with their
// share links. Called by the account service when an account is destroyed;
// the caller has already been authenticated.
func (s *DocumentService) DeleteAllForOwner(ownerID int) error {
	docs, err := s.repository.ListByOwner(ownerID)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := s.repository.Delete(doc.ID); err != nil {
			return err
		}
		if err := s.shares.links.DeleteByDocument(doc.ID); err != nil {
			return err
		}
	}

	return nil
}

type CreatedShare struct {
	Token      string               `json:"shareToken"`
	URL        string               `json:"shareUrl"`
	Permission documents.Permission `json:"permission"`
	ExpiresAt  *time.Time           `json:"expiresAt,omitempty"`
}

// CreateShareLink mints a link for one of the caller's documents. The
// returned URL points at the front end, not the API: it is meant to be
// pasted into a browser.
func (s *DocumentService) CreateShareLink(caller users.User, documentID int, permission documents.Permission, ttl time.Duration) (CreatedShare, error) {
	if _, err := s.ownedDocument(caller, documentID); err != nil {
		return CreatedShare{}, err
	}

	link, err := s.shares.Mint(documentID, permission, ttl)
	if err != nil {
		return CreatedShare{}, err
	}

	return CreatedShare{
		Token:      link.Token,
		URL:        s.shareURL(link.Token),
		Permission: link.Permission,
		ExpiresAt:  link.ExpiresAt,
	}, nil
}

type SharedDocument struct {
	Document   documents.Document   `json:"document"`
	Permission documents.Permission `json:"permission"`
}

// GetShared is the anonymous access path: no principal needed, the token is
// the whole credential. The permission is returned so the caller knows
// whether to offer editing.
func (s *DocumentService) GetShared(token string) (SharedDocument, error) {
	doc, link, err := s.shares.Lookup(token)
	if err != nil {
		return SharedDocument{}, err
	}

	return SharedDocument{Document: doc, Permission: link.Permission}, nil
}

type EmailedShare struct {
	CreatedShare
	Notification mail.Result `json:"notification"`
}

// ShareViaEmail mints a 24 hour link and mails it to the recipient. The link
// is durable as soon as it is minted: a failed dispatch does not roll it
// back and does not fail the request, it is reported in the result so the
// caller can relay the URL manually.
func (s *DocumentService) ShareViaEmail(caller users.User, documentID int, recipientEmail string, permission documents.Permission) (EmailedShare, error) {
	doc, err := s.ownedDocument(caller, documentID)
	if err != nil {
		return EmailedShare{}, err
	}

	if !emailPattern.MatchString(recipientEmail) {
		return EmailedShare{}, errors.New("invalid recipient email", errors.BadRequest())
	}

	link, err := s.shares.Mint(documentID, permission, emailedShareTTL)
	if err != nil {
		return EmailedShare{}, err
	}

	share := CreatedShare{
		Token:      link.Token,
		URL:        s.shareURL(link.Token),
		Permission: link.Permission,
		ExpiresAt:  link.ExpiresAt,
	}

	res := s.notifier.SendShareLink(recipientEmail, caller.Email, doc.Title, share.URL, string(link.Permission))
	return EmailedShare{CreatedShare: share, Notification: res}, nil
}

// shareURL builds the link recipients open: the front end resolves the token,
// not the API.
func (s *DocumentService) shareURL(token string) string {
	return fmt.Sprintf("%s/#/shared/%s", s.baseURL, token)
}

func (s *DocumentService) ownedDocument(caller users.User, id int) (documents.Document, error) {
	doc, err := s.repository.Get(id)
	if err != nil {
		return documents.Document{}, err
	}

	if doc.OwnerID != caller.ID {
		return documents.Document{}, errDocumentForbidden(id)
	}

	return doc, nil
}

package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/BOCK-CHAIN/BockDocsBackend/documents"
	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
)

// ShareService mints and resolves share tokens. Ownership of the underlying
// document is not checked here: the document service verifies the caller is
// the owner before minting.
type ShareService struct {
	links      documents.ShareLinkRepository
	repository documents.DocumentRepository

	now func() time.Time
}

func NewShareService(links documents.ShareLinkRepository, repo documents.DocumentRepository) *ShareService {
	return &ShareService{
		links:      links,
		repository: repo,
		now:        time.Now,
	}
}

// Mint creates a fresh link for the document. A ttl of zero or less means
// the link never expires. The token is a random UUID: unguessable, and never
// reused across links.
func (s *ShareService) Mint(documentID int, permission documents.Permission, ttl time.Duration) (documents.ShareLink, error) {
	if !permission.Valid() {
		return documents.ShareLink{}, errors.New("permission must be view or edit", errors.BadRequest())
	}

	link := documents.ShareLink{
		Token:      uuid.NewString(),
		DocumentID: documentID,
		Permission: permission,
		CreatedAt:  s.now(),
	}
	if ttl > 0 {
		expiresAt := link.CreatedAt.Add(ttl)
		link.ExpiresAt = &expiresAt
	}

	if err := s.links.Insert(&link); err != nil {
		return documents.ShareLink{}, err
	}

	return link, nil
}

// Resolve validates the token against the requested document and required
// permission. Checks run in a fixed order, each short-circuiting, so the
// caller always gets the most precise failure: existence, then expiry, then
// document match, then permission.
func (s *ShareService) Resolve(token string, documentID int, required documents.Permission) (documents.Document, documents.ShareLink, error) {
	link, err := s.links.Get(token)
	if err != nil {
		return documents.Document{}, documents.ShareLink{}, err
	}

	if link.Expired(s.now()) {
		return documents.Document{}, documents.ShareLink{}, documents.ErrShareLinkExpired
	}

	if link.DocumentID != documentID {
		return documents.Document{}, documents.ShareLink{}, documents.ErrShareLinkWrongDocument
	}

	if !link.Permission.Satisfies(required) {
		return documents.Document{}, documents.ShareLink{}, documents.ErrShareLinkPermission
	}

	doc, err := s.repository.Get(link.DocumentID)
	if err != nil {
		return documents.Document{}, documents.ShareLink{}, err
	}

	return doc, link, nil
}

// Lookup validates existence and expiry only and returns the document the
// token points at. This is the anonymous shared-document read: the returned
// permission tells the caller whether editing is allowed.
func (s *ShareService) Lookup(token string) (documents.Document, documents.ShareLink, error) {
	link, err := s.links.Get(token)
	if err != nil {
		return documents.Document{}, documents.ShareLink{}, err
	}

	if link.Expired(s.now()) {
		return documents.Document{}, documents.ShareLink{}, documents.ErrShareLinkExpired
	}

	doc, err := s.repository.Get(link.DocumentID)
	if err != nil {
		return documents.Document{}, documents.ShareLink{}, err
	}

	return doc, link, nil
}

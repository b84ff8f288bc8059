package documents

import (
	"time"

	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
)

// DefaultTitle is used when a document is created with a blank title.
const DefaultTitle = "Untitled Document"

type Document struct {
	ID      int    `json:"id"`
	OwnerID int    `json:"ownerId"`
	Title   string `json:"title"`
	Content string `json:"content"`

	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// Permission is the access level granted by a share link. It is fixed at
// creation: a view link can never be escalated to edit.
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

// Valid reports whether p is one of the two known levels.
func (p Permission) Valid() bool {
	return p == PermissionView || p == PermissionEdit
}

// Satisfies reports whether p grants at least the required level.
func (p Permission) Satisfies(required Permission) bool {
	if p == PermissionEdit {
		return true
	}
	return p == required
}

// ShareLink grants anonymous access to one document. It carries no identity:
// whoever holds the token holds the capability.
type ShareLink struct {
	Token      string     `json:"token"`
	DocumentID int        `json:"documentId"`
	Permission Permission `json:"permission"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the link is past its expiry at the given time.
// Links without an expiry never expire.
func (l ShareLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}

// Share resolution failures, in the order they are checked: existence,
// expiry, document match, permission.
var (
	ErrShareLinkNotFound      = errors.New("share link not found", errors.NotFound())
	ErrShareLinkExpired       = errors.New("share link has expired", errors.Forbidden())
	ErrShareLinkWrongDocument = errors.New("share link does not match this document", errors.Forbidden())
	ErrShareLinkPermission    = errors.New("share link does not allow editing", errors.Forbidden())
)

// ErrDocumentNotFound is returned by repositories for unknown ids. Lookups
// must never report a missing document as an empty success.
var ErrDocumentNotFound = errors.New("document not found", errors.NotFound())

type DocumentRepository interface {
	// Get returns ErrDocumentNotFound for unknown ids.
	Get(id int) (Document, error)

	// ListByOwner returns the owner's documents, most recently modified
	// first.
	ListByOwner(ownerID int) ([]Document, error)

	// Upsert inserts or updates depending on doc.ID, assigning the id and
	// timestamps on insert and advancing LastModified on every call.
	Upsert(doc *Document) error

	// Delete returns ErrDocumentNotFound when the id does not exist, so a
	// no-op delete is never mistaken for a successful one.
	Delete(id int) error
}

type ShareLinkRepository interface {
	// Get returns ErrShareLinkNotFound for unknown tokens.
	Get(token string) (ShareLink, error)

	Insert(link *ShareLink) error

	// DeleteByDocument removes every link of a document. Deleting for a
	// document without links is not an error.
	DeleteByDocument(documentID int) error
}

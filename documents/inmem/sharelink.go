package inmem

import (
	"sync"

	"github.com/BOCK-CHAIN/BockDocsBackend/documents"
)

type ShareLinkRepository struct {
	mu    sync.Locker
	links map[string]documents.ShareLink
}

func NewShareLinkRepository() *ShareLinkRepository {
	return &ShareLinkRepository{
		mu:    &sync.Mutex{},
		links: make(map[string]documents.ShareLink),
	}
}

func (r *ShareLinkRepository) Get(token string) (documents.ShareLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.links[token]
	if !ok {
		return documents.ShareLink{}, documents.ErrShareLinkNotFound
	}

	return link, nil
}

func (r *ShareLinkRepository) Insert(link *documents.ShareLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.links[link.Token] = *link
	return nil
}

func (r *ShareLinkRepository) DeleteByDocument(documentID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, link := range r.links {
		if link.DocumentID == documentID {
			delete(r.links, token)
		}
	}

	return nil
}

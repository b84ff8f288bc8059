package inmem

import (
	"sort"
	"sync"
	"time"

	"github.com/BOCK-CHAIN/BockDocsBackend/documents"
)

type DocumentRepository struct {
	mu        sync.Locker
	documents []documents.Document
	maxID     int
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		mu:        &sync.Mutex{},
		documents: make([]documents.Document, 0),
		maxID:     0,
	}
}

func (r *DocumentRepository) Get(id int) (documents.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, doc := range r.documents {
		if doc.ID == id {
			return doc, nil
		}
	}

	return documents.Document{}, documents.ErrDocumentNotFound
}

func (r *DocumentRepository) ListByOwner(ownerID int) ([]documents.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := make([]documents.Document, 0)
	for _, doc := range r.documents {
		if doc.OwnerID == ownerID {
			docs = append(docs, doc)
		}
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].LastModified.After(docs[j].LastModified)
	})
	return docs, nil
}

func (r *DocumentRepository) Upsert(doc *documents.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if doc.ID == 0 {
		r.maxID++
		doc.ID = r.maxID
		doc.CreatedAt = time.Now()
	}
	doc.LastModified = time.Now()

	for i, d := range r.documents {
		if d.ID == doc.ID {
			r.documents[i] = *doc
			return nil
		}
	}

	r.documents = append(r.documents, *doc)
	return nil
}

func (r *DocumentRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, doc := range r.documents {
		if doc.ID == id {
			r.documents = append(r.documents[:i], r.documents[i+1:]...)
			return nil
		}
	}

	return documents.ErrDocumentNotFound
}

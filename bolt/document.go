package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/boltdb/bolt"

	"github.com/BOCK-CHAIN/BockDocsBackend/documents"
)

var documentBucket = []byte("documents")

// DocumentStore stores and retrieves documents from a bolt database.
type DocumentStore struct {
	Driver *Driver
}

func (s *DocumentStore) Get(id int) (documents.Document, error) {
	var doc documents.Document
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(documentBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return documents.ErrDocumentNotFound
		}

		return json.Unmarshal(data, &doc)
	})
	if err != nil {
		return documents.Document{}, err
	}

	return doc, nil
}

func (s *DocumentStore) ListByOwner(ownerID int) ([]documents.Document, error) {
	docs := make([]documents.Document, 0)

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(documentBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var doc documents.Document
			if err := json.Unmarshal(data, &doc); err != nil {
				return err
			}
			if doc.OwnerID == ownerID {
				docs = append(docs, doc)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].LastModified.After(docs[j].LastModified)
	})
	return docs, nil
}

// Upsert inserts or updates a document in the database, depending on doc.ID.
func (s *DocumentStore) Upsert(doc *documents.Document) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(documentBucket)

		if doc.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			doc.ID = int(id)
			doc.CreatedAt = time.Now()
		}
		doc.LastModified = time.Now()

		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}

		return bucket.Put(itob(doc.ID), data)
	})
}

func (s *DocumentStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(documentBucket)

		if bucket.Get(itob(id)) == nil {
			return documents.ErrDocumentNotFound
		}

		return bucket.Delete(itob(id))
	})
}

// ------------------------------------------------------------------------------------------------
// Helpers
// ------------------------------------------------------------------------------------------------

// itob returns an 8-byte big endian representation of v.
func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

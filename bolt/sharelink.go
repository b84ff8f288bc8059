package bolt

import (
	"encoding/json"

	"github.com/boltdb/bolt"

	"github.com/BOCK-CHAIN/BockDocsBackend/documents"
)

var shareLinkBucket = []byte("shareLinks")

// ShareLinkStore stores share links keyed by their token. Links are written
// once and never mutated; expired ones simply fail validation and stay
// around, they are small and carry no identity.
type ShareLinkStore struct {
	Driver *Driver
}

func (s *ShareLinkStore) Get(token string) (documents.ShareLink, error) {
	var link documents.ShareLink
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(shareLinkBucket)

		data := bucket.Get([]byte(token))
		if data == nil {
			return documents.ErrShareLinkNotFound
		}

		return json.Unmarshal(data, &link)
	})
	if err != nil {
		return documents.ShareLink{}, err
	}

	return link, nil
}

func (s *ShareLinkStore) Insert(link *documents.ShareLink) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(shareLinkBucket)

		data, err := json.Marshal(link)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(link.Token), data)
	})
}

func (s *ShareLinkStore) DeleteByDocument(documentID int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(shareLinkBucket)

		tokens := make([][]byte, 0)
		c := bucket.Cursor()
		for token, data := c.First(); token != nil; token, data = c.Next() {
			var link documents.ShareLink
			if err := json.Unmarshal(data, &link); err != nil {
				return err
			}
			if link.DocumentID == documentID {
				tokens = append(tokens, append([]byte(nil), token...))
			}
		}

		for _, token := range tokens {
			if err := bucket.Delete(token); err != nil {
				return err
			}
		}
		return nil
	})
}

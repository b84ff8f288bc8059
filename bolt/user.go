package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/BOCK-CHAIN/BockDocsBackend/auth"
)

var userBucket = []byte("users")

// UserStore stores and retrieves accounts from a bolt database. Secondary
// lookups (email, google id, reset token) scan the bucket: the user base is
// small enough that an index bucket is not worth the bookkeeping.
type UserStore struct {
	Driver *Driver
}

func (s *UserStore) Get(id int) (auth.User, error) {
	var user auth.User
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return nil
		}

		return json.Unmarshal(data, &user)
	})
	if err != nil {
		return auth.User{}, err
	}

	return user, nil
}

func (s *UserStore) GetByEmail(email string) (auth.User, error) {
	return s.first(func(user auth.User) bool { return user.Email == email })
}

func (s *UserStore) GetByGoogleID(googleID string) (auth.User, error) {
	if googleID == "" {
		return auth.User{}, nil
	}
	return s.first(func(user auth.User) bool { return user.GoogleID == googleID })
}

func (s *UserStore) GetByResetToken(token string) (auth.User, error) {
	if token == "" {
		return auth.User{}, nil
	}
	return s.first(func(user auth.User) bool { return user.ResetToken == token })
}

// Upsert inserts or updates a user in the database, depending on user.ID.
func (s *UserStore) Upsert(user *auth.User) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		if user.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			user.ID = int(id)
			user.CreatedAt = time.Now()
		}
		user.UpdatedAt = time.Now()

		data, err := json.Marshal(user)
		if err != nil {
			return err
		}

		return bucket.Put(itob(user.ID), data)
	})
}

func (s *UserStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)
		return bucket.Delete(itob(id))
	})
}

func (s *UserStore) first(match func(auth.User) bool) (auth.User, error) {
	var found auth.User
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var user auth.User
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
			if match(user) {
				found = user
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return auth.User{}, err
	}

	return found, nil
}

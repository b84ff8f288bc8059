package inmem

import (
	"sync"
	"time"

	"github.com/BOCK-CHAIN/BockDocsBackend/auth"
)

type UserRepository struct {
	mu    sync.Locker
	users []auth.User
	maxID int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		mu:    &sync.Mutex{},
		users: make([]auth.User, 0),
		maxID: 0,
	}
}

func (r *UserRepository) Get(id int) (auth.User, error) {
	return r.first(func(user auth.User) bool { return user.ID == id })
}

func (r *UserRepository) GetByEmail(email string) (auth.User, error) {
	return r.first(func(user auth.User) bool { return user.Email == email })
}

func (r *UserRepository) GetByGoogleID(googleID string) (auth.User, error) {
	if googleID == "" {
		return auth.User{}, nil
	}
	return r.first(func(user auth.User) bool { return user.GoogleID == googleID })
}

func (r *UserRepository) GetByResetToken(token string) (auth.User, error) {
	if token == "" {
		return auth.User{}, nil
	}
	return r.first(func(user auth.User) bool { return user.ResetToken == token })
}

func (r *UserRepository) Upsert(user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == 0 {
		r.maxID++
		user.ID = r.maxID
		user.CreatedAt = time.Now()
	} else if user.ID > r.maxID {
		r.maxID = user.ID
	}
	user.UpdatedAt = time.Now()

	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}

	r.users = append(r.users, *user)
	return nil
}

func (r *UserRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}

	return nil
}

func (r *UserRepository) first(match func(auth.User) bool) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if match(user) {
			return user, nil
		}
	}

	return auth.User{}, nil
}

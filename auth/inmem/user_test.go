package inmem

import (
	"testing"

	"github.com/BOCK-CHAIN/BockDocsBackend/auth"
)

func TestUserRepository(t *testing.T) {
	auth.TestUserRepository(t, NewUserRepository())
}

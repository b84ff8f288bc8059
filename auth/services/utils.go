package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
)

func errUserNotFound(id int) error {
	return errors.New(fmt.Sprintf("user %d not found", id), errors.NotFound())
}

// randomToken returns 32 random bytes hex encoded, enough entropy for a
// reset token to be unguessable.
func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

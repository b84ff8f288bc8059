package endpoints

import (
	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
)

var errInvalidRequest = errors.New("invalid request", errors.BadRequest())

type messageResponse struct {
	Message string `json:"message"`
}

package inmem

import (
	"testing"

	"github.com/BOCK-CHAIN/BockDocsBackend/documents"
)

func TestDocumentRepository(t *testing.T) {
	documents.TestDocumentRepository(t, NewDocumentRepository())
}

func TestShareLinkRepository(t *testing.T) {
	documents.TestShareLinkRepository(t, NewShareLinkRepository())
}

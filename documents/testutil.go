package documents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDocumentRepository runs the contract every DocumentRepository
// implementation must satisfy.
func TestDocumentRepository(t *testing.T, repo DocumentRepository) {
	// Unknown ids are an explicit failure, never an empty success
	_, err := repo.Get(1)
	require.Equal(t, ErrDocumentNotFound, err, "get on empty repository should report not found")

	doc := Document{OwnerID: 1, Title: "Plan", Content: "v1"}
	require.NoError(t, repo.Upsert(&doc), "insert should not fail")
	require.NotEqual(t, 0, doc.ID, "id must be set by insert")
	require.False(t, doc.LastModified.IsZero(), "last modified must be set by insert")

	retrieved, err := repo.Get(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Title, retrieved.Title)
	assert.Equal(t, doc.Content, retrieved.Content)
	assert.Equal(t, doc.OwnerID, retrieved.OwnerID)

	// Update advances the last modified timestamp
	before := retrieved.LastModified
	time.Sleep(5 * time.Millisecond)
	retrieved.Content = "v2"
	require.NoError(t, repo.Upsert(&retrieved))
	updated, err := repo.Get(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)
	assert.True(t, updated.LastModified.After(before), "update should advance last modified")

	// Listing is scoped by owner and ordered most recent first
	other := Document{OwnerID: 2, Title: "Other"}
	require.NoError(t, repo.Upsert(&other))
	second := Document{OwnerID: 1, Title: "Second"}
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.Upsert(&second))

	docs, err := repo.ListByOwner(1)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, second.ID, docs[0].ID, "most recently modified should come first")
	assert.Equal(t, doc.ID, docs[1].ID)

	// Delete of a missing id is distinct from a successful delete
	require.NoError(t, repo.Delete(doc.ID))
	assert.Equal(t, ErrDocumentNotFound, repo.Delete(doc.ID), "second delete should report not found")
	_, err = repo.Get(doc.ID)
	assert.Equal(t, ErrDocumentNotFound, err)
}

// TestShareLinkRepository runs the contract every ShareLinkRepository
// implementation must satisfy.
func TestShareLinkRepository(t *testing.T, repo ShareLinkRepository) {
	_, err := repo.Get("nope")
	require.Equal(t, ErrShareLinkNotFound, err, "unknown token should report not found")

	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	links := []ShareLink{
		{Token: "token-view", DocumentID: 1, Permission: PermissionView, CreatedAt: time.Now().Truncate(time.Second)},
		{Token: "token-edit", DocumentID: 1, Permission: PermissionEdit, CreatedAt: time.Now().Truncate(time.Second), ExpiresAt: &expiresAt},
		{Token: "token-other", DocumentID: 2, Permission: PermissionView, CreatedAt: time.Now().Truncate(time.Second)},
	}
	for i := range links {
		require.NoError(t, repo.Insert(&links[i]), "insert %s should not fail", links[i].Token)
	}

	for _, link := range links {
		retrieved, err := repo.Get(link.Token)
		require.NoError(t, err, "get %s should not fail", link.Token)
		assert.Equal(t, link.DocumentID, retrieved.DocumentID)
		assert.Equal(t, link.Permission, retrieved.Permission)
		if link.ExpiresAt == nil {
			assert.Nil(t, retrieved.ExpiresAt)
		} else if assert.NotNil(t, retrieved.ExpiresAt) {
			assert.True(t, link.ExpiresAt.Equal(*retrieved.ExpiresAt))
		}
	}

	// Deleting one document's links leaves the others untouched
	require.NoError(t, repo.DeleteByDocument(1))
	_, err = repo.Get("token-view")
	assert.Equal(t, ErrShareLinkNotFound, err)
	_, err = repo.Get("token-edit")
	assert.Equal(t, ErrShareLinkNotFound, err)
	_, err = repo.Get("token-other")
	assert.NoError(t, err)

	require.NoError(t, repo.DeleteByDocument(42), "deleting for a document without links should not fail")
}

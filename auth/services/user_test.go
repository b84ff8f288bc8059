package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BOCK-CHAIN/BockDocsBackend/auth/inmem"
	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
	"github.com/BOCK-CHAIN/BockDocsBackend/mail"
)

type staticEncoder struct{}

func (staticEncoder) Encode(userID int, email string) (string, error) {
	return fmt.Sprintf("token-%d-%s", userID, email), nil
}

type fakeGoogle struct {
	user GoogleUser
	err  error
}

func (g *fakeGoogle) Verify(accessToken string) (GoogleUser, error) {
	return g.user, g.err
}

type recordingResetNotifier struct {
	recipients []string
	urls       []string
	result     mail.Result
}

func (n *recordingResetNotifier) SendPasswordReset(recipient, resetURL string) mail.Result {
	n.recipients = append(n.recipients, recipient)
	n.urls = append(n.urls, resetURL)
	return n.result
}

type recordingPurger struct {
	purged []int
	err    error
}

func (p *recordingPurger) DeleteAllForOwner(ownerID int) error {
	p.purged = append(p.purged, ownerID)
	return p.err
}

type userFixture struct {
	service  *UserService
	repo     *inmem.UserRepository
	google   *fakeGoogle
	notifier *recordingResetNotifier
	purger   *recordingPurger
}

func createUserService(t *testing.T) userFixture {
	t.Helper()

	repo := inmem.NewUserRepository()
	google := &fakeGoogle{}
	notifier := &recordingResetNotifier{result: mail.Sent()}
	purger := &recordingPurger{}
	service := NewUserService(repo, staticEncoder{}, google, notifier, purger, "https://docs.bock.com")
	return userFixture{
		service:  service,
		repo:     repo,
		google:   google,
		notifier: notifier,
		purger:   purger,
	}
}

func TestUserService_SignUp(t *testing.T) {
	f := createUserService(t)

	user, token, err := f.service.SignUp("Ada@Bock.com", "hunter22", "")
	require.NoError(t, err)
	assert.Equal(t, "ada@bock.com", user.Email, "email should be lowercased")
	assert.Equal(t, "ada", user.Name, "name should default to the email local part")
	assert.NotEqual(t, 0, user.ID)
	assert.Equal(t, fmt.Sprintf("token-%d-ada@bock.com", user.ID), token)

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22"))
	assert.NoError(t, err, "stored hash should match the password")

	// Same email again, different casing
	_, _, err = f.service.SignUp("ADA@bock.com", "hunter22", "Ada")
	errors.AssertCode(t, err, 409)

	_, _, err = f.service.SignUp("short@bock.com", "abc", "")
	errors.AssertCode(t, err, 400)

	_, _, err = f.service.SignUp("", "hunter22", "")
	errors.AssertCode(t, err, 400)
}

func TestUserService_SignIn(t *testing.T) {
	f := createUserService(t)
	_, _, err := f.service.SignUp("ada@bock.com", "hunter22", "Ada")
	require.NoError(t, err)

	user, token, err := f.service.SignIn("Ada@Bock.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.NotEmpty(t, token)

	// Unknown email and wrong password must be indistinguishable
	_, _, unknownErr := f.service.SignIn("nobody@bock.com", "hunter22")
	_, _, wrongErr := f.service.SignIn("ada@bock.com", "wrong")
	errors.AssertCode(t, unknownErr, 401)
	errors.AssertCode(t, wrongErr, 401)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error(), "both failures should read the same")
}

func TestUserService_SignIn_googleOnlyAccount(t *testing.T) {
	f := createUserService(t)
	f.google.user = GoogleUser{GoogleID: "g-1", Name: "Grace", Email: "grace@bock.com"}
	_, _, err := f.service.GoogleSignIn("valid")
	require.NoError(t, err)

	_, _, err = f.service.SignIn("grace@bock.com", "whatever")
	errors.AssertCode(t, err, 401)
	assert.Contains(t, err.Error(), "different sign-in method")
}

func TestUserService_GoogleSignIn(t *testing.T) {
	f := createUserService(t)
	f.google.user = GoogleUser{GoogleID: "g-1", Name: "Grace", Email: "Grace@Bock.com"}

	// First sign-in creates a passwordless account
	user, token, err := f.service.GoogleSignIn("valid")
	require.NoError(t, err)
	assert.Equal(t, "grace@bock.com", user.Email)
	assert.Equal(t, "g-1", user.GoogleID)
	assert.False(t, user.HasPassword())
	assert.NotEmpty(t, token)

	// Second sign-in reuses the account
	again, _, err := f.service.GoogleSignIn("valid")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	f.google.err = fmt.Errorf("token expired")
	_, _, err = f.service.GoogleSignIn("stale")
	errors.AssertCode(t, err, 401)

	f.google.err = nil
	_, _, err = f.service.GoogleSignIn("")
	errors.AssertCode(t, err, 400)
}

func TestUserService_GoogleSignIn_linksPasswordAccount(t *testing.T) {
	f := createUserService(t)
	created, _, err := f.service.SignUp("ada@bock.com", "hunter22", "Ada")
	require.NoError(t, err)

	f.google.user = GoogleUser{GoogleID: "g-ada", Name: "Ada L", Email: "ada@bock.com"}
	linked, _, err := f.service.GoogleSignIn("valid")
	require.NoError(t, err)

	assert.Equal(t, created.ID, linked.ID, "should link, not create")
	assert.Equal(t, "g-ada", linked.GoogleID)
	assert.True(t, linked.HasPassword(), "linking must not clear the password")

	// Password sign-in still works after linking
	_, _, err = f.service.SignIn("ada@bock.com", "hunter22")
	assert.NoError(t, err)
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := createUserService(t)
	ada, _, err := f.service.SignUp("ada@bock.com", "hunter22", "Ada")
	require.NoError(t, err)
	_, _, err = f.service.SignUp("grace@bock.com", "hunter22", "Grace")
	require.NoError(t, err)

	updated, err := f.service.UpdateProfile(ada.ID, "Ada Lovelace", "")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "ada@bock.com", updated.Email, "email should be untouched")

	_, err = f.service.UpdateProfile(ada.ID, "", "grace@bock.com")
	errors.AssertCode(t, err, 409)

	_, err = f.service.UpdateProfile(404, "Nobody", "")
	errors.AssertCode(t, err, 404)
}

func TestUserService_ChangePassword(t *testing.T) {
	f := createUserService(t)
	ada, _, err := f.service.SignUp("ada@bock.com", "hunter22", "Ada")
	require.NoError(t, err)

	err = f.service.ChangePassword(ada.ID, "wrong", "newpassword")
	errors.AssertCode(t, err, 401)

	err = f.service.ChangePassword(ada.ID, "hunter22", "abc")
	errors.AssertCode(t, err, 400)

	require.NoError(t, f.service.ChangePassword(ada.ID, "hunter22", "newpassword"))

	_, _, err = f.service.SignIn("ada@bock.com", "hunter22")
	errors.AssertCode(t, err, 401)
	_, _, err = f.service.SignIn("ada@bock.com", "newpassword")
	assert.NoError(t, err)
}

func TestUserService_DeleteAccount(t *testing.T) {
	f := createUserService(t)
	ada, _, err := f.service.SignUp("ada@bock.com", "hunter22", "Ada")
	require.NoError(t, err)

	err = f.service.DeleteAccount(ada.ID, "wrong")
	errors.AssertCode(t, err, 401)
	assert.Empty(t, f.purger.purged, "nothing should be purged on a failed check")

	require.NoError(t, f.service.DeleteAccount(ada.ID, "hunter22"))
	assert.Equal(t, []int{ada.ID}, f.purger.purged, "owned documents should be purged")

	_, err = f.service.Get(ada.ID)
	errors.AssertCode(t, err, 404)
}

func TestUserService_RequestPasswordReset(t *testing.T) {
	f := createUserService(t)
	ada, _, err := f.service.SignUp("ada@bock.com", "hunter22", "Ada")
	require.NoError(t, err)

	msg, err := f.service.RequestPasswordReset("ada@bock.com")
	require.NoError(t, err)

	// Unknown email gets the exact same answer and no mail
	unknownMsg, err := f.service.RequestPasswordReset("nobody@bock.com")
	require.NoError(t, err)
	assert.Equal(t, msg, unknownMsg, "responses must not reveal whether the email exists")
	require.Len(t, f.notifier.recipients, 1)
	assert.Equal(t, "ada@bock.com", f.notifier.recipients[0])

	stored, err := f.repo.Get(ada.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.ResetToken)
	assert.Len(t, stored.ResetToken, 64, "token should be 32 random bytes hex encoded")
	require.NotNil(t, stored.ResetTokenExpires)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.ResetTokenExpires, time.Minute)
	assert.Contains(t, f.notifier.urls[0], "/#/reset-password?token="+stored.ResetToken)

	// A second request overwrites the first token
	first := stored.ResetToken
	_, err = f.service.RequestPasswordReset("ada@bock.com")
	require.NoError(t, err)
	stored, err = f.repo.Get(ada.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first, stored.ResetToken, "new request should replace the token")
}

func TestUserService_CompletePasswordReset(t *testing.T) {
	f := createUserService(t)
	ada, _, err := f.service.SignUp("ada@bock.com", "hunter22", "Ada")
	require.NoError(t, err)
	_, err = f.service.RequestPasswordReset("ada@bock.com")
	require.NoError(t, err)

	stored, err := f.repo.Get(ada.ID)
	require.NoError(t, err)
	token := stored.ResetToken

	err = f.service.CompletePasswordReset("bogus", "newpassword")
	errors.AssertCode(t, err, 403)

	require.NoError(t, f.service.CompletePasswordReset(token, "newpassword"))

	_, _, err = f.service.SignIn("ada@bock.com", "newpassword")
	assert.NoError(t, err)

	// Token is single use
	err = f.service.CompletePasswordReset(token, "anotherpassword")
	errors.AssertCode(t, err, 403)
}

func TestUserService_CompletePasswordReset_expiredToken(t *testing.T) {
	f := createUserService(t)
	_, _, err := f.service.SignUp("ada@bock.com", "hunter22", "Ada")
	require.NoError(t, err)
	_, err = f.service.RequestPasswordReset("ada@bock.com")
	require.NoError(t, err)

	stored, err := f.repo.GetByEmail("ada@bock.com")
	require.NoError(t, err)

	f.service.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	err = f.service.CompletePasswordReset(stored.ResetToken, "newpassword")
	errors.AssertCode(t, err, 403)
}

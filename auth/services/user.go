package services

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/BOCK-CHAIN/BockDocsBackend/auth"
	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
	"github.com/BOCK-CHAIN/BockDocsBackend/mail"
)

// resetTokenDuration is how long a password reset token stays usable. Only
// the latest token counts: requesting a new one overwrites the previous.
const resetTokenDuration = time.Hour

const minPasswordLength = 6

// genericResetMessage is returned by RequestPasswordReset no matter whether
// the email is registered, so the endpoint cannot be used to enumerate
// accounts.
const genericResetMessage = "If an account with that email exists, a password reset link has been sent."

// errInvalidCredentials is shared by the unknown-email and wrong-password
// paths: the two must be indistinguishable.
var errInvalidCredentials = errors.New("invalid email or password", errors.Unauthorized())

var errWrongMethod = errors.New("this account uses a different sign-in method", errors.Unauthorized())

type TokenEncoder interface {
	Encode(userID int, email string) (string, error)
}

type GoogleVerifier interface {
	Verify(accessToken string) (GoogleUser, error)
}

// ResetNotifier delivers password reset mails, best effort.
type ResetNotifier interface {
	SendPasswordReset(recipient, resetURL string) mail.Result
}

// DocumentPurger removes everything an account owns when the account is
// destroyed.
type DocumentPurger interface {
	DeleteAllForOwner(ownerID int) error
}

type UserService struct {
	repository auth.UserRepository
	encoder    TokenEncoder
	google     GoogleVerifier
	notifier   ResetNotifier
	documents  DocumentPurger

	baseURL string
	now     func() time.Time
}

func NewUserService(
	repo auth.UserRepository,
	encoder TokenEncoder,
	google GoogleVerifier,
	notifier ResetNotifier,
	documents DocumentPurger,
	baseURL string,
) *UserService {
	return &UserService{
		repository: repo,
		encoder:    encoder,
		google:     google,
		notifier:   notifier,
		documents:  documents,

		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

func (s *UserService) SignUp(email, password, name string) (auth.User, string, error) {
	if email == "" || password == "" {
		return auth.User{}, "", errors.New("email and password are required", errors.BadRequest())
	}
	if len(password) < minPasswordLength {
		return auth.User{}, "", errors.New(
			fmt.Sprintf("password must be at least %d characters", minPasswordLength),
			errors.BadRequest(),
		)
	}

	email = strings.ToLower(email)
	existing, err := s.repository.GetByEmail(email)
	if err != nil {
		return auth.User{}, "", err
	} else if existing.ID != 0 {
		return auth.User{}, "", errors.New("user with this email already exists", errors.Conflict())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return auth.User{}, "", err
	}

	if name == "" {
		name = localPart(email)
	}

	user := auth.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.repository.Upsert(&user); err != nil {
		return auth.User{}, "", err
	}

	return s.withToken(user)
}

func (s *UserService) SignIn(email, password string) (auth.User, string, error) {
	if email == "" || password == "" {
		return auth.User{}, "", errors.New("email and password are required", errors.BadRequest())
	}

	user, err := s.repository.GetByEmail(strings.ToLower(email))
	if err != nil {
		return auth.User{}, "", err
	} else if user.ID == 0 {
		return auth.User{}, "", errInvalidCredentials
	}

	if !user.HasPassword() {
		return auth.User{}, "", errWrongMethod
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return auth.User{}, "", errInvalidCredentials
	}

	return s.withToken(user)
}

// GoogleSignIn verifies the access token with Google and signs the matching
// account in, creating or linking it as needed. Linking never clears an
// existing password: both methods stay usable.
func (s *UserService) GoogleSignIn(accessToken string) (auth.User, string, error) {
	if accessToken == "" {
		return auth.User{}, "", errors.New("access token is required", errors.BadRequest())
	}

	gUser, err := s.google.Verify(accessToken)
	if err != nil {
		return auth.User{}, "", errors.New("invalid or expired access token", errors.Unauthorized(), errors.WithCause(err))
	}

	email := strings.ToLower(gUser.Email)
	if email == "" {
		return auth.User{}, "", errors.New("email not found in token", errors.BadRequest())
	}

	user, err := s.repository.GetByEmail(email)
	if err != nil {
		return auth.User{}, "", err
	}
	if user.ID == 0 {
		user, err = s.repository.GetByGoogleID(gUser.GoogleID)
		if err != nil {
			return auth.User{}, "", err
		}
	}

	if user.ID != 0 {
		user.GoogleID = gUser.GoogleID
		user.Email = email
		if gUser.Name != "" {
			user.Name = gUser.Name
		}
	} else {
		name := gUser.Name
		if name == "" {
			name = localPart(email)
		}
		user = auth.User{
			Email:    email,
			Name:     name,
			GoogleID: gUser.GoogleID,
		}
	}

	if err := s.repository.Upsert(&user); err != nil {
		return auth.User{}, "", err
	}

	return s.withToken(user)
}

func (s *UserService) Get(id int) (auth.User, error) {
	user, err := s.repository.Get(id)
	if err != nil {
		return auth.User{}, err
	}

	if user.ID == 0 {
		return auth.User{}, errUserNotFound(id)
	}
	return user, nil
}

// UpdateProfile changes name and/or email. Empty fields are left untouched.
func (s *UserService) UpdateProfile(id int, name, email string) (auth.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return auth.User{}, err
	}

	if email != "" {
		email = strings.ToLower(email)
		existing, err := s.repository.GetByEmail(email)
		if err != nil {
			return auth.User{}, err
		} else if existing.ID != 0 && existing.ID != id {
			return auth.User{}, errors.New("email already in use", errors.Conflict())
		}
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}

	if err := s.repository.Upsert(&user); err != nil {
		return auth.User{}, err
	}

	return user, nil
}

func (s *UserService) ChangePassword(id int, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return errors.New("current and new password are required", errors.BadRequest())
	}
	if len(newPassword) < minPasswordLength {
		return errors.New(
			fmt.Sprintf("new password must be at least %d characters", minPasswordLength),
			errors.BadRequest(),
		)
	}

	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if !user.HasPassword() {
		return errWrongMethod
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return errors.New("current password is incorrect", errors.Unauthorized())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	return s.repository.Upsert(&user)
}

// DeleteAccount destroys the account after confirming the password, taking
// the account's documents and their share links with it.
func (s *UserService) DeleteAccount(id int, password string) error {
	if password == "" {
		return errors.New("password is required to delete account", errors.BadRequest())
	}

	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if !user.HasPassword() {
		return errWrongMethod
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return errors.New("password is incorrect", errors.Unauthorized())
	}

	if err := s.documents.DeleteAllForOwner(id); err != nil {
		return err
	}

	return s.repository.Delete(id)
}

// RequestPasswordReset always responds with the same generic message so the
// endpoint leaks nothing about which emails are registered. When the account
// exists and can use a password, a fresh single-use token replaces any
// previous one and a reset mail is attempted best effort.
func (s *UserService) RequestPasswordReset(email string) (string, error) {
	if email == "" {
		return "", errors.New("email is required", errors.BadRequest())
	}

	user, err := s.repository.GetByEmail(strings.ToLower(email))
	if err != nil {
		return "", err
	}
	if user.ID == 0 || !user.HasPassword() {
		return genericResetMessage, nil
	}

	token := randomToken()
	expires := s.now().Add(resetTokenDuration)
	user.ResetToken = token
	user.ResetTokenExpires = &expires
	if err := s.repository.Upsert(&user); err != nil {
		return "", err
	}

	resetURL := fmt.Sprintf("%s/#/reset-password?token=%s", s.baseURL, token)
	s.notifier.SendPasswordReset(user.Email, resetURL)

	return genericResetMessage, nil
}

func (s *UserService) CompletePasswordReset(token, newPassword string) error {
	if token == "" || newPassword == "" {
		return errors.New("token and new password are required", errors.BadRequest())
	}
	if len(newPassword) < minPasswordLength {
		return errors.New(
			fmt.Sprintf("password must be at least %d characters", minPasswordLength),
			errors.BadRequest(),
		)
	}

	user, err := s.repository.GetByResetToken(token)
	if err != nil {
		return err
	}
	if user.ID == 0 || user.ResetTokenExpires == nil || user.ResetTokenExpires.Before(s.now()) {
		return errors.New("invalid or expired reset token", errors.Forbidden())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// New hash and token cleanup land in the same upsert so the token
	// cannot be replayed.
	user.PasswordHash = string(hash)
	user.ResetToken = ""
	user.ResetTokenExpires = nil
	return s.repository.Upsert(&user)
}

func (s *UserService) withToken(user auth.User) (auth.User, string, error) {
	token, err := s.encoder.Encode(user.ID, user.Email)
	if err != nil {
		return auth.User{}, "", err
	}
	return user, token, nil
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

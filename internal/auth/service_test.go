package auth_test

import (
	"time"

	"github.com/frahmantamala/gym-management/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	byEmail    map[string]*auth.User
	byID       map[string]*auth.User
	shouldFail bool
	failError  error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		byEmail: make(map[string]*auth.User),
		byID:    make(map[string]*auth.User),
	}
}

func (m *MockUserRepository) Add(user *auth.User) {
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
}

func (m *MockUserRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockUserRepository) GetByEmail(email string) (*auth.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	user, ok := m.byEmail[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return user, nil
}

func (m *MockUserRepository) GetByID(userID string) (*auth.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	user, ok := m.byID[userID]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return user, nil
}

var _ = Describe("Auth Service", func() {
	var (
		repo    *MockUserRepository
		service *auth.Service
	)

	const password = "password123"

	newUser := func(role auth.Role, active bool) *auth.User {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		return &auth.User{
			ID:           "user-1",
			Email:        "owner@gym.com",
			Name:         "Owner",
			PasswordHash: string(hash),
			Role:         role,
			IsActive:     active,
		}
	}

	BeforeEach(func() {
		repo = NewMockUserRepository()
		tokenGen := auth.NewJWTTokenGenerator(
			"test-access-secret-with-enough-length",
			"test-refresh-secret-with-enough-length",
			15*time.Minute,
			7*24*time.Hour,
		)
		service = auth.NewService(repo, tokenGen, bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		It("returns a token pair for valid credentials", func() {
			repo.Add(newUser(auth.RoleOwner, true))

			tokens, err := service.Authenticate(auth.LoginDTO{Email: "owner@gym.com", Password: password})

			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("embeds the user identity and role in the access token", func() {
			repo.Add(newUser(auth.RoleSupervisor, true))

			tokens, err := service.Authenticate(auth.LoginDTO{Email: "owner@gym.com", Password: password})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("user-1"))
			Expect(claims.Role).To(Equal(string(auth.RoleSupervisor)))
		})

		It("rejects a wrong password", func() {
			repo.Add(newUser(auth.RoleOwner, true))

			_, err := service.Authenticate(auth.LoginDTO{Email: "owner@gym.com", Password: "wrong"})

			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown email without revealing whether it exists", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "nobody@gym.com", Password: password})

			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects a deactivated account", func() {
			repo.Add(newUser(auth.RoleOwner, false))

			_, err := service.Authenticate(auth.LoginDTO{Email: "owner@gym.com", Password: password})

			Expect(err).To(Equal(auth.ErrUserInactive))
		})

		It("rejects an empty payload", func() {
			_, err := service.Authenticate(auth.LoginDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RefreshTokens", func() {
		It("issues a fresh pair from a valid refresh token", func() {
			repo.Add(newUser(auth.RoleOwner, true))

			tokens, err := service.Authenticate(auth.LoginDTO{Email: "owner@gym.com", Password: password})
			Expect(err).NotTo(HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)

			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed.AccessToken).NotTo(BeEmpty())
			Expect(refreshed.RefreshToken).NotTo(BeEmpty())
		})

		It("stops refreshing once the account is deactivated", func() {
			user := newUser(auth.RoleOwner, true)
			repo.Add(user)

			tokens, err := service.Authenticate(auth.LoginDTO{Email: "owner@gym.com", Password: password})
			Expect(err).NotTo(HaveOccurred())

			user.IsActive = false
			_, err = service.RefreshTokens(tokens.RefreshToken)

			Expect(err).To(Equal(auth.ErrUserInactive))
		})

		It("rejects garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-jwt")
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})

	Describe("HashPassword", func() {
		It("produces a hash that verifies against the original", func() {
			hash, err := service.HashPassword("s3cret")

			Expect(err).NotTo(HaveOccurred())
			Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret"))).To(Succeed())
		})
	})
})

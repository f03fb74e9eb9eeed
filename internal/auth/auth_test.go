package auth

import (
	"testing"

	"github.com/mycampushub/consulting-sub007/internal/database/models"
	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeUserRepo serves users from memory for auth tests
type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) GetByEmail(tenantID uuid.UUID, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.TenantID == tenantID && u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		TenantID:     uuid.New(),
		FirstName:    "Jane",
		LastName:     "Agent",
		Email:        "jane@agency.test",
		PasswordHash: string(hash),
		Role:         models.RoleAgent,
		IsActive:     true,
		IsAvailable:  true,
	}
}

func TestAuthConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		config := &AuthConfig{
			JWTSecret:    "test-signing-key",
			TTLMinutes:   60,
			RolePolicies: DefaultRolePolicies(),
		}

		err := config.Validate()
		assert.NoError(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		config := &AuthConfig{TTLMinutes: 60}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret is required")
	})

	t.Run("invalid ttl", func(t *testing.T) {
		config := &AuthConfig{JWTSecret: "secret", TTLMinutes: 0}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ttl_minutes")
	})

	t.Run("writers for known resource", func(t *testing.T) {
		config := &AuthConfig{
			JWTSecret:    "secret",
			TTLMinutes:   60,
			RolePolicies: DefaultRolePolicies(),
		}

		writers, exists := config.WritersFor("assignment-groups")
		assert.True(t, exists)
		assert.ElementsMatch(t, []string{"admin", "manager"}, writers)
	})

	t.Run("writers for unknown resource", func(t *testing.T) {
		config := &AuthConfig{
			JWTSecret:    "secret",
			TTLMinutes:   60,
			RolePolicies: DefaultRolePolicies(),
		}

		_, exists := config.WritersFor("leads")
		assert.False(t, exists)
	})
}

func TestNewAuthService(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewAuthService("", 60, newFakeUserRepo())
		assert.Error(t, err)
	})

	t.Run("rejects zero ttl", func(t *testing.T) {
		_, err := NewAuthService("secret", 0, newFakeUserRepo())
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	user := testUser(t, "correct-horse-battery")
	service, err := NewAuthService("test-secret", 60, newFakeUserRepo(user))
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		pair, err := service.Login(user.TenantID, user.Email, "correct-horse-battery")

		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, "Bearer", pair.TokenType)
		assert.Equal(t, int64(3600), pair.ExpiresIn)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(user.TenantID, user.Email, "wrong-password")

		var authErr *apperrors.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "invalid credentials", authErr.Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(user.TenantID, "nobody@agency.test", "whatever")

		var authErr *apperrors.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "invalid credentials", authErr.Message)
	})

	t.Run("email of another tenant", func(t *testing.T) {
		_, err := service.Login(uuid.New(), user.Email, "correct-horse-battery")

		var authErr *apperrors.AuthenticationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("deactivated user", func(t *testing.T) {
		inactive := testUser(t, "pw-is-fine")
		inactive.IsActive = false
		svc, err := NewAuthService("test-secret", 60, newFakeUserRepo(inactive))
		require.NoError(t, err)

		_, err = svc.Login(inactive.TenantID, inactive.Email, "pw-is-fine")

		// Same error as a wrong password so callers cannot probe accounts
		var authErr *apperrors.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "invalid credentials", authErr.Message)
	})
}

func TestJWTRoundTrip(t *testing.T) {
	user := testUser(t, "pw")
	service, err := NewAuthService("test-secret", 60, newFakeUserRepo(user))
	require.NoError(t, err)

	t.Run("generate and validate", func(t *testing.T) {
		token, err := service.GenerateJWT(user)
		require.NoError(t, err)

		claims, err := service.ValidateJWT(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.TenantID, claims.TenantID)
		assert.Equal(t, user.Email, claims.Email)
		assert.Equal(t, string(user.Role), claims.Role)
		assert.Equal(t, "agency-crm-backend", claims.Issuer)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := NewAuthService("another-secret", 60, newFakeUserRepo(user))
		require.NoError(t, err)

		token, err := other.GenerateJWT(user)
		require.NoError(t, err)

		_, err = service.ValidateJWT(token)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.ValidateJWT("not.a.token")
		assert.Error(t, err)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("rotates the refresh token", func(t *testing.T) {
		user := testUser(t, "pw")
		service, err := NewAuthService("test-secret", 60, newFakeUserRepo(user))
		require.NoError(t, err)

		pair, err := service.Login(user.TenantID, user.Email, "pw")
		require.NoError(t, err)

		refreshed, err := service.RefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, pair.RefreshToken, refreshed.RefreshToken)

		// The spent token is gone
		_, err = service.RefreshToken(pair.RefreshToken)
		var authErr *apperrors.AuthenticationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("unknown refresh token", func(t *testing.T) {
		service, err := NewAuthService("test-secret", 60, newFakeUserRepo())
		require.NoError(t, err)

		_, err = service.RefreshToken("never-issued")
		var authErr *apperrors.AuthenticationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("user deactivated after login", func(t *testing.T) {
		user := testUser(t, "pw")
		service, err := NewAuthService("test-secret", 60, newFakeUserRepo(user))
		require.NoError(t, err)

		pair, err := service.Login(user.TenantID, user.Email, "pw")
		require.NoError(t, err)

		user.IsActive = false

		_, err = service.RefreshToken(pair.RefreshToken)
		var authErr *apperrors.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "user is deactivated", authErr.Message)
	})
}

func TestLogout(t *testing.T) {
	user := testUser(t, "pw")
	service, err := NewAuthService("test-secret", 60, newFakeUserRepo(user))
	require.NoError(t, err)

	pair, err := service.Login(user.TenantID, user.Email, "pw")
	require.NoError(t, err)

	service.Logout(pair.RefreshToken)

	_, err = service.RefreshToken(pair.RefreshToken)
	var authErr *apperrors.AuthenticationError
	require.ErrorAs(t, err, &authErr)
}

package service

import (
	"context"
	"testing"
	"time"

	"restomate/internal/config"
	"restomate/internal/dto"
	"restomate/internal/model"
	"restomate/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubRestaurantRepo struct {
	restaurants map[int64]*model.Restaurant
	provisioned []int64
}

func newStubRestaurantRepo() *stubRestaurantRepo {
	return &stubRestaurantRepo{restaurants: make(map[int64]*model.Restaurant)}
}

func (r *stubRestaurantRepo) CreateTx(_ context.Context, _ *gorm.DB, rest *model.Restaurant) error {
	rest.ID = int64(len(r.restaurants) + 1)
	r.restaurants[rest.ID] = rest
	return nil
}

func (r *stubRestaurantRepo) ProvisionTenantTx(_ context.Context, _ *gorm.DB, restaurantID int64) error {
	r.provisioned = append(r.provisioned, restaurantID)
	return nil
}

func (r *stubRestaurantRepo) FindByID(_ context.Context, id int64) (*model.Restaurant, error) {
	rest, ok := r.restaurants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rest, nil
}

func (r *stubRestaurantRepo) DB() *gorm.DB { return nil }

var _ repository.RestaurantRepository = (*stubRestaurantRepo)(nil)

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) CreateTx(_ context.Context, _ *gorm.DB, u *model.User) error {
	u.ID = int64(len(r.users) + 1)
	r.users[u.Email] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func buildAuthSvc() (AuthService, *stubRestaurantRepo, *stubUserRepo, *stubEmployeeRepo) {
	restaurants := newStubRestaurantRepo()
	users := newStubUserRepo()
	employees := newStubEmployeeRepo()
	return NewAuthService(restaurants, users, employees, testConfig()), restaurants, users, employees
}

func ownerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:           "Priya",
		Email:          "priya@example.com",
		Password:       "s3cretpass",
		Role:           model.RoleOwner,
		RestaurantName: "Spice Route",
		OwnerName:      "Priya",
		SecretCode:     "join-4242",
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegister_OwnerProvisionsTenant(t *testing.T) {
	svc, restaurants, users, employees := buildAuthSvc()

	resp, err := svc.Register(context.Background(), ownerRequest(), nil, "")
	require.NoError(t, err)

	// Restaurant created and its tenant tables provisioned
	require.Len(t, restaurants.restaurants, 1)
	assert.Equal(t, []int64{1}, restaurants.provisioned)

	// Login identity scoped to the new restaurant
	u, err := users.FindByEmail(context.Background(), "priya@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.RestaurantID)
	assert.NotEqual(t, "s3cretpass", u.PasswordHash)

	// Owner mirrored into the tenant's employee roster
	require.Len(t, employees.employees[1], 1)
	assert.Equal(t, "priya@example.com", employees.employees[1][0].Email)

	// Token carries the tenant claim
	assert.Equal(t, int64(1), resp.User.RestaurantID)
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret-key"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1), claims["restaurant_id"])
	assert.Equal(t, model.RoleOwner, claims["role"])
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	svc, _, _, _ := buildAuthSvc()

	_, err := svc.Register(context.Background(), ownerRequest(), nil, "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), ownerRequest(), nil, "")
	assert.ErrorContains(t, err, "already registered")
}

func TestRegister_StaffJoinsWithSecretCode(t *testing.T) {
	svc, _, users, employees := buildAuthSvc()

	_, err := svc.Register(context.Background(), ownerRequest(), nil, "")
	require.NoError(t, err)

	staff := dto.RegisterRequest{
		Name:         "Ravi",
		Email:        "ravi@example.com",
		Password:     "anotherpass",
		Role:         model.RoleStaff,
		RestaurantID: 1,
		SecretCode:   "join-4242",
	}
	resp, err := svc.Register(context.Background(), staff, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.User.RestaurantID)

	u, err := users.FindByEmail(context.Background(), "ravi@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, u.Role)

	// Both the owner and the staff member are on the roster
	assert.Len(t, employees.employees[1], 2)
}

func TestRegister_StaffWrongSecretCode(t *testing.T) {
	svc, _, _, _ := buildAuthSvc()

	_, err := svc.Register(context.Background(), ownerRequest(), nil, "")
	require.NoError(t, err)

	staff := dto.RegisterRequest{
		Name:         "Mallory",
		Email:        "mallory@example.com",
		Password:     "anotherpass",
		Role:         model.RoleStaff,
		RestaurantID: 1,
		SecretCode:   "wrong-code",
	}
	_, err = svc.Register(context.Background(), staff, nil, "")
	assert.ErrorContains(t, err, "invalid restaurant or secret code")
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := buildAuthSvc()
	_, err := svc.Register(context.Background(), ownerRequest(), nil, "")
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "priya@example.com", Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "bearer", resp.TokenType)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "priya@example.com", Password: "wrongpass",
	})
	assert.ErrorContains(t, err, "invalid credentials")

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "s3cretpass",
	})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestRefresh(t *testing.T) {
	svc, _, _, _ := buildAuthSvc()
	reg, err := svc.Register(context.Background(), ownerRequest(), nil, "")
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), reg.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	svc, _, _, _ := buildAuthSvc()
	_, err := svc.Register(context.Background(), ownerRequest(), nil, "")
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":       1,
		"role":          model.RoleOwner,
		"restaurant_id": 1,
		"exp":           time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), signed)
	assert.ErrorContains(t, err, "invalid or expired")
}

func TestRestaurantProfile_SecretCodeOwnerOnly(t *testing.T) {
	svc, _, _, _ := buildAuthSvc()
	_, err := svc.Register(context.Background(), ownerRequest(), nil, "")
	require.NoError(t, err)

	asOwner, err := svc.Restaurant(context.Background(), 1, model.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, "join-4242", asOwner.SecretCode)

	asStaff, err := svc.Restaurant(context.Background(), 1, model.RoleStaff)
	require.NoError(t, err)
	assert.Empty(t, asStaff.SecretCode)
}

// Sanity: bcrypt hash stored at registration verifies against the password.
func TestRegister_PasswordHashed(t *testing.T) {
	svc, _, users, _ := buildAuthSvc()
	_, err := svc.Register(context.Background(), ownerRequest(), nil, "")
	require.NoError(t, err)

	u, err := users.FindByEmail(context.Background(), "priya@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cretpass")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("other")))
}

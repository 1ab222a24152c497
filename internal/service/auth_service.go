package service

import (
	"context"
	"time"

	"restomate/internal/config"
	"restomate/internal/dto"
	"restomate/internal/model"
	"restomate/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	// Register creates a login identity. role=owner additionally creates the
	// restaurant and provisions its tenant tables; manager/staff join an
	// existing restaurant gated by its secret code. Either way the user is
	// mirrored into the tenant's employees table in the same transaction.
	Register(ctx context.Context, req dto.RegisterRequest, logo []byte, logoMime string) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Restaurant(ctx context.Context, restaurantID int64, role string) (*dto.RestaurantResponse, error)
}

type authService struct {
	restaurants repository.RestaurantRepository
	users       repository.UserRepository
	employees   repository.EmployeeRepository
	cfg         *config.Config
}

func NewAuthService(
	restaurants repository.RestaurantRepository,
	users repository.UserRepository,
	employees repository.EmployeeRepository,
	cfg *config.Config,
) AuthService {
	return &authService{restaurants: restaurants, users: users, employees: employees, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest, logo []byte, logoMime string) (*dto.AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, inputErr("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	if req.Role == model.RoleOwner {
		err = s.registerOwner(ctx, req, logo, logoMime, user)
	} else {
		err = s.registerStaff(ctx, req, user)
	}
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

// registerOwner is the all-or-nothing tenant bootstrap: restaurant row,
// five tenant tables, owner login, mirrored employee row — one transaction.
// A failure anywhere (including DDL) leaves no trace of the tenant.
func (s *authService) registerOwner(ctx context.Context, req dto.RegisterRequest, logo []byte, logoMime string, user *model.User) error {
	return runTx(ctx, s.restaurants.DB(), func(tx *gorm.DB) error {
		restaurant := &model.Restaurant{
			Name:       req.RestaurantName,
			OwnerName:  req.OwnerName,
			Phone:      req.Phone,
			District:   req.District,
			SecretCode: req.SecretCode,
			Logo:       logo,
			LogoMime:   logoMime,
		}
		if err := s.restaurants.CreateTx(ctx, tx, restaurant); err != nil {
			return err
		}
		if err := s.restaurants.ProvisionTenantTx(ctx, tx, restaurant.ID); err != nil {
			return err
		}

		user.RestaurantID = restaurant.ID
		if err := s.users.CreateTx(ctx, tx, user); err != nil {
			return err
		}

		return s.employees.CreateTx(ctx, tx, restaurant.ID, &model.Employee{
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
			Role:  user.Role,
		})
	})
}

// registerStaff joins an existing tenant. The restaurant's secret code is the
// onboarding credential; a mismatch reveals nothing about which part failed.
func (s *authService) registerStaff(ctx context.Context, req dto.RegisterRequest, user *model.User) error {
	restaurant, err := s.restaurants.FindByID(ctx, req.RestaurantID)
	if err != nil {
		return inputErr("invalid restaurant or secret code")
	}
	if restaurant.SecretCode != req.SecretCode {
		return inputErr("invalid restaurant or secret code")
	}

	user.RestaurantID = restaurant.ID
	return runTx(ctx, s.restaurants.DB(), func(tx *gorm.DB) error {
		if err := s.users.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		return s.employees.CreateTx(ctx, tx, restaurant.ID, &model.Employee{
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
			Role:  user.Role,
		})
	})
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, inputErr("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, inputErr("invalid credentials")
	}
	return s.buildAuthResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, inputErr("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, inputErr("malformed token")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, inputErr("malformed token")
	}

	user, err := s.users.FindByID(ctx, int64(userID))
	if err != nil {
		return nil, inputErr("user not found")
	}
	return s.buildAuthResponse(user)
}

func (s *authService) Restaurant(ctx context.Context, restaurantID int64, role string) (*dto.RestaurantResponse, error) {
	restaurant, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	resp := &dto.RestaurantResponse{
		ID:        restaurant.ID,
		Name:      restaurant.Name,
		OwnerName: restaurant.OwnerName,
		Phone:     restaurant.Phone,
		District:  restaurant.District,
	}
	// The onboarding secret is visible to the owner only.
	if role == model.RoleOwner {
		resp.SecretCode = restaurant.SecretCode
	}
	return resp, nil
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User: dto.UserResponse{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			Phone:        user.Phone,
			Role:         user.Role,
			RestaurantID: user.RestaurantID,
		},
		Token:        accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
	}, nil
}

func (s *authService) generateToken(user *model.User, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":       user.ID,
		"role":          user.Role,
		"restaurant_id": user.RestaurantID,
		"exp":           time.Now().Add(duration).Unix(),
		"iat":           time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

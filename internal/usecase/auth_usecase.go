package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account is disabled")
	ErrEmailTaken          = errors.New("email is already registered")
	ErrLicenseNumberTaken  = errors.New("license number is already registered")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidDateOfBirth  = errors.New("date of birth must use the YYYY-MM-DD format")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterDoctor(ctx context.Context, principal entity.Principal, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, principal entity.Principal) error
	GetCurrentUser(ctx context.Context, principal entity.Principal) (*dto.UserResponse, error)
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	dentistRepo repository.DentistProfileRepository
	patientRepo repository.PatientProfileRepository
	jwtService  *jwt.JWTService
	tokenStore  service.TokenStore
	audit       service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	dentistRepo repository.DentistProfileRepository,
	patientRepo repository.PatientProfileRepository,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
	audit service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		dentistRepo: dentistRepo,
		patientRepo: patientRepo,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
		audit:       audit,
	}
}

// Login verifies credentials and issues an access plus refresh token pair.
// Both token IDs are stored so they can be revoked on logout.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, &user.ID, entity.AuditActionUserLogin, "user", user.ID.String(), nil, nil)

	return &dto.LoginResponse{
		User:  *converter.UserToResponse(user),
		Token: *token,
	}, nil
}

// RegisterPatient creates a patient account with its profile in one
// transaction so a failed profile insert leaves no orphan user row.
func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	dateOfBirth, err := time.ParseInLocation(entity.DateLayout, req.DateOfBirth, time.Local)
	if err != nil {
		return nil, ErrInvalidDateOfBirth
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      entity.RolePatient,
		IsActive:  true,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			return err
		}
		profile := &entity.PatientProfile{
			UserID:      user.ID,
			DateOfBirth: dateOfBirth,
			Phone:       req.Phone,
			Gender:      req.Gender,
		}
		return u.patientRepo.Create(tx, profile)
	})
	if err != nil {
		if isDuplicateKeyError(err, "") {
			return nil, ErrEmailTaken
		}
		u.log.Warnf("Failed to register patient: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), nil, nil)

	return u.GetCurrentUser(ctx, entity.Principal{ID: user.ID, Role: user.Role})
}

// RegisterDoctor creates a dentist account with its profile. Restricted to
// admins at the route level; the acting principal is recorded in the trail.
func (u *authUsecase) RegisterDoctor(ctx context.Context, principal entity.Principal, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      entity.RoleDentist,
		IsActive:  true,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			return err
		}
		profile := &entity.DentistProfile{
			UserID:        user.ID,
			Specialty:     req.Specialty,
			LicenseNumber: req.LicenseNumber,
			Bio:           req.Bio,
		}
		return u.dentistRepo.Create(tx, profile)
	})
	if err != nil {
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrLicenseNumberTaken
		}
		if isDuplicateKeyError(err, "") {
			return nil, ErrEmailTaken
		}
		u.log.Warnf("Failed to register dentist: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionDentistRegister, "user", user.ID.String(), nil, nil)

	return u.GetCurrentUser(ctx, entity.Principal{ID: user.ID, Role: user.Role})
}

// RefreshToken rotates the token pair. The presented refresh token must be
// valid, of the refresh type and still present in the store; it is revoked
// together with the user's access tokens before new ones are issued.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidRefreshToken
	}

	exists, err := u.tokenStore.Exists(ctx, service.RefreshTokenKey(claims.UserID, claims.TokenID))
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", claims.UserID, err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidRefreshToken
	}

	if err := u.revokeAll(ctx, claims.UserID); err != nil {
		u.log.Warnf("Failed to revoke tokens for %s: %+v", claims.UserID, err)
		return nil, err
	}

	return u.issueTokens(ctx, user)
}

// Logout revokes every live token belonging to the principal.
func (u *authUsecase) Logout(ctx context.Context, principal entity.Principal) error {
	if err := u.revokeAll(ctx, principal.ID); err != nil {
		u.log.Warnf("Failed to revoke tokens for %s: %+v", principal.ID, err)
		return err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionUserLogout, "user", principal.ID.String(), nil, nil)

	return nil
}

// GetCurrentUser returns the principal's account with its role profile loaded.
func (u *authUsecase) GetCurrentUser(ctx context.Context, principal entity.Principal) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, principal.ID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", principal.ID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	switch user.Role {
	case entity.RoleDentist:
		profile, err := u.dentistRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			u.log.Warnf("Failed to load dentist profile %s: %+v", user.ID, err)
			return nil, err
		}
		user.DentistProfile = profile
	case entity.RolePatient:
		profile, err := u.patientRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			u.log.Warnf("Failed to load patient profile %s: %+v", user.ID, err)
			return nil, err
		}
		user.PatientProfile = profile
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessID, err := u.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}
	refreshToken, refreshID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Save(ctx, service.AccessTokenKey(user.ID, accessID), u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}
	if err := u.tokenStore.Save(ctx, service.RefreshTokenKey(user.ID, refreshID), u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) revokeAll(ctx context.Context, userID uuid.UUID) error {
	if err := u.tokenStore.DeleteByPattern(ctx, fmt.Sprintf("access_token:%s:*", userID)); err != nil {
		return err
	}
	return u.tokenStore.DeleteByPattern(ctx, fmt.Sprintf("refresh_token:%s:*", userID))
}

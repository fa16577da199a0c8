package services

import (
	"context"
	"errors"
	"fmt"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/sessiontoken"
	"undangan.link/pkg/validation"
	"undangan.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RegisterInput kayıt isteği.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput giriş isteği.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput şifre değiştirme isteği.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// LoginResult başarılı girişte handler'a dönen bilgiler.
type LoginResult struct {
	Token         string
	UserID        uuid.UUID
	Email         string
	PersonalizeID uuid.UUID
}

// IAuthService kimlik doğrulama işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	db              *gorm.DB // Transaction için
	userRepo        repositories.IUserRepository
	personalizeRepo repositories.IPersonalizeRepository
	tokens          sessiontoken.IService
	validator       *validation.Validator
}

func NewAuthService(
	db *gorm.DB,
	userRepo repositories.IUserRepository,
	personalizeRepo repositories.IPersonalizeRepository,
	tokens sessiontoken.IService,
	validator *validation.Validator,
) IAuthService {
	return &AuthService{
		db:              db,
		userRepo:        userRepo,
		personalizeRepo: personalizeRepo,
		tokens:          tokens,
		validator:       validator,
	}
}

// Register kullanıcıyı ve boş kişiselleştirme kaydını tek transaction'da oluşturur.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("şifre hashlenemedi: %w", err)
	}

	user := &models.User{Email: input.Email, PasswordHash: string(hash)}
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(ctx, tx)
		if err := s.userRepo.Create(txCtx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrEmailTaken
			}
			return err
		}
		return s.personalizeRepo.Create(txCtx, &models.Personalize{
			UserID:           user.ID,
			GalleryImageURLs: datatypes.JSONSlice[string]{},
		})
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrEmailTaken) {
			configslog.Log.Error("Kayıt başarısız", zap.String("email", input.Email), zap.Error(txErr))
		}
		return nil, txErr
	}

	configslog.SLog.Infof("Yeni kullanıcı kaydedildi: %s", user.Email)
	return user, nil
}

// Login e-posta/şifreyi doğrular ve oturum tokenı üretir.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	personalize, err := s.personalizeRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPersonalizeNotFound
		}
		return nil, err
	}

	token, err := s.tokens.Issue(sessiontoken.Claims{
		UserID:        user.ID.String(),
		Email:         user.Email,
		PersonalizeID: personalize.ID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("token üretilemedi: %w", err)
	}

	configslog.Log.Info("Kullanıcı giriş yaptı", zap.String("user_id", user.ID.String()))
	return &LoginResult{
		Token:         token,
		UserID:        user.ID,
		Email:         user.Email,
		PersonalizeID: personalize.ID,
	}, nil
}

// ChangePassword mevcut şifreyi doğrulayıp yenisini yazar.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	if err := s.validator.Validate(input); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, "Pengguna tidak ditemukan.")
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("şifre hashlenemedi: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

var _ IAuthService = (*AuthService)(nil)

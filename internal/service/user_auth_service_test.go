package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vietour/internal/config"
	"github.com/vietour/internal/constants"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "user-auth-service-test-secret"
	cfg.UserJWT.ExpireHours = 24
	cfg.Security.PasswordPolicy.MinLength = 8
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	return NewUserAuthService(cfg, userRepo, adminRepo), db
}

func TestUserRegisterPersistsAndIssuesToken(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, token, expiresAt, err := svc.Register("", "Linh.Tran@Example.com", "matkhau123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("registered user not persisted")
	}
	if user.Email != "linh.tran@example.com" {
		t.Fatalf("email not normalized, got %s", user.Email)
	}
	// 姓名缺省时取邮箱前缀
	if user.FullName != "linh.tran" {
		t.Fatalf("full name fallback want linh.tran got %s", user.FullName)
	}
	if user.Role != constants.UserRoleCustomer || user.Status != constants.UserStatusActive {
		t.Fatalf("unexpected role/status %s/%s", user.Role, user.Status)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("last login not stamped on register")
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("token not issued, token=%q expires=%v", token, expiresAt)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load stored user failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("matkhau123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse issued token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestUserRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("Linh", "linh@example.com", "matkhau123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, _, err := svc.Register("Linh", "LINH@example.com ", "matkhau123")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate register want ErrEmailExists got %v", err)
	}
}

func TestUserRegisterWeakPasswordRejected(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	_, _, _, err := svc.Register("Linh", "linh@example.com", "ngan")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password want ErrWeakPassword got %v", err)
	}
}

func TestUserRegisterInvalidEmailRejected(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	for _, email := range []string{"", "   ", "khong-phai-email"} {
		if _, _, _, err := svc.Register("Linh", email, "matkhau123"); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("register %q want ErrInvalidEmail got %v", email, err)
		}
	}
}

// blindUserRepository 让 GetByEmail 恒返回未命中，模拟两个注册请求同时通过预检查的竞态。
type blindUserRepository struct {
	repository.UserRepository
}

func (r blindUserRepository) GetByEmail(email string) (*models.User, error) {
	return nil, nil
}

func TestUserRegisterUniqueIndexRaceMapsToEmailExists(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	svc.userRepo = blindUserRepository{UserRepository: repository.NewUserRepository(db)}

	if _, _, _, err := svc.Register("Linh", "linh@example.com", "matkhau123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	// 第二次插入撞上邮箱唯一索引
	_, _, _, err := svc.Register("Linh", "linh@example.com", "matkhau123")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("unique index conflict want ErrEmailExists got %v", err)
	}
}

func TestUserLoginChecksCredentialsAndStatus(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("Linh", "linh@example.com", "matkhau123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, _, err := svc.Login("linh@example.com", "matkhau123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || user == nil {
		t.Fatalf("login did not issue token")
	}

	if _, _, _, err := svc.Login("linh@example.com", "sai-mat-khau"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("chua-dang-ky@example.com", "matkhau123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}

	if err := db.Model(&models.User{}).Where("email = ?", "linh@example.com").
		Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("linh@example.com", "matkhau123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
}

func TestUserLoginRememberMeExtendsExpiry(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)
	svc.cfg.UserJWT.RememberMeExpireHours = 24 * 30

	if _, _, _, err := svc.Register("Linh", "linh@example.com", "matkhau123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, normalExpiry, err := svc.LoginWithRememberMe("linh@example.com", "matkhau123", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	_, _, rememberedExpiry, err := svc.LoginWithRememberMe("linh@example.com", "matkhau123", true)
	if err != nil {
		t.Fatalf("remember-me login failed: %v", err)
	}
	if !rememberedExpiry.After(normalExpiry.Add(24 * time.Hour)) {
		t.Fatalf("remember-me expiry %v not extended beyond %v", rememberedExpiry, normalExpiry)
	}
}

func TestUserChangePasswordRotatesTokenVersion(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("Linh", "linh@example.com", "matkhau123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "sai-mat-khau", "matkhaumoi1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "matkhau123", "matkhaumoi1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load stored user failed: %v", err)
	}
	if stored.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", user.TokenVersion+1, stored.TokenVersion)
	}
	if stored.TokenInvalidBefore == nil {
		t.Fatalf("token invalid-before not stamped")
	}
	if _, _, _, err := svc.Login("linh@example.com", "matkhaumoi1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestCheckEmailExists(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	exists, err := svc.CheckEmailExists("linh@example.com")
	if err != nil || exists {
		t.Fatalf("empty table want exists=false got %v err=%v", exists, err)
	}
	if _, _, _, err := svc.Register("Linh", "linh@example.com", "matkhau123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	exists, err = svc.CheckEmailExists(" LINH@example.com ")
	if err != nil || !exists {
		t.Fatalf("registered email want exists=true got %v err=%v", exists, err)
	}
	if _, err := svc.CheckEmailExists("khong-hop-le"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("malformed email want ErrInvalidEmail got %v", err)
	}
}

func TestGetProfileByEmailFallsBackToStaff(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("Linh Trần", "linh@example.com", "matkhau123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	staffLogin := time.Now().Add(-time.Hour)
	admin := &models.Admin{
		Username:     "ops@vietour.local",
		PasswordHash: "x",
		FullName:     "Vận hành",
		IsSuper:      false,
		LastLoginAt:  &staffLogin,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	profile, err := svc.GetProfileByEmail("LINH@example.com")
	if err != nil {
		t.Fatalf("user profile lookup failed: %v", err)
	}
	if profile.IsStaff || profile.Email != "linh@example.com" || profile.Role != constants.UserRoleCustomer {
		t.Fatalf("user profile mismatch: %+v", profile)
	}

	profile, err = svc.GetProfileByEmail("ops@vietour.local")
	if err != nil {
		t.Fatalf("staff profile lookup failed: %v", err)
	}
	if !profile.IsStaff || profile.Role != "staff" || profile.FullName != "Vận hành" {
		t.Fatalf("staff profile mismatch: %+v", profile)
	}

	if _, err := svc.GetProfileByEmail("khong-ai-ca@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown account want ErrNotFound got %v", err)
	}
}

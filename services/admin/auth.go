package admin

import (
	"crypto/subtle"

	"rapstation/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login checks the configured staff credentials and issues a JWT.
func (a *DefaultAdminService) Login(username, password string) (string, error) {
	if a.PasswordHash == "" || len(a.JWTSecret) == 0 {
		return "", ErrLoginDisabled
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passErr := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		a.log().Warn("Login: rejected admin credentials", zap.String("username", username))
		return "", ErrInvalidCredentials
	}

	ttl := a.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	token, err := utils.GenerateToken(a.JWTSecret, username, AdminRole, ttl)
	if err != nil {
		return "", err
	}
	a.log().Info("Login: admin signed in", zap.String("username", username))
	return token, nil
}

// HashPassword produces the value expected in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

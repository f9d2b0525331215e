// internal/auth/auth.go
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role is ordered: a higher role passes every check a lower one does.
type Role int

const (
	RoleNone Role = iota
	RoleAdmin
	RoleSuperadmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleSuperadmin:
		return "superadmin"
	default:
		return "none"
	}
}

// ParseRole is the inverse of Role.String. Unknown names map to RoleNone.
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "superadmin":
		return RoleSuperadmin
	default:
		return RoleNone
	}
}

// AtLeast reports whether r satisfies a route requiring min.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

var (
	ErrUnauthorized = errors.New("invalid authentication credentials")
	ErrForbidden    = errors.New("insufficient privileges")
)

// Credential is one static username/password pair from configuration.
type Credential struct {
	Username string
	Password string
}

type account struct {
	username     []byte
	passwordHash []byte
	role         Role
}

// Verifier checks credentials against the admin and superadmin accounts.
type Verifier struct {
	accounts []account
	secret   []byte
	ttl      time.Duration
}

// NewVerifier hashes both passwords once so requests never compare plaintext.
func NewVerifier(admin, superadmin Credential, jwtSecret string, ttl time.Duration) (*Verifier, error) {
	return NewVerifierWithCost(admin, superadmin, jwtSecret, ttl, bcrypt.DefaultCost)
}

// NewVerifierWithCost is NewVerifier with an explicit bcrypt cost.
func NewVerifierWithCost(admin, superadmin Credential, jwtSecret string, ttl time.Duration, cost int) (*Verifier, error) {
	if jwtSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	v := &Verifier{secret: []byte(jwtSecret), ttl: ttl}
	for _, c := range []struct {
		cred Credential
		role Role
	}{{admin, RoleAdmin}, {superadmin, RoleSuperadmin}} {
		if c.cred.Username == "" || c.cred.Password == "" {
			return nil, fmt.Errorf("%s username and password are required", c.role)
		}
		hash, err := HashPassword(c.cred.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("hash %s password: %w", c.role, err)
		}
		v.accounts = append(v.accounts, account{username: []byte(c.cred.Username), passwordHash: hash, role: c.role})
	}
	return v, nil
}

// Verify returns the highest role whose credentials match, or RoleNone.
// Every account is checked so timing does not reveal which field differed.
func (v *Verifier) Verify(username, password string) Role {
	best := RoleNone
	for _, a := range v.accounts {
		userOK := subtle.ConstantTimeCompare([]byte(username), a.username) == 1
		passOK := CheckPasswordHash(password, a.passwordHash)
		if userOK && passOK && a.role > best {
			best = a.role
		}
	}
	return best
}

// Authorize verifies the credentials and checks them against min.
func (v *Verifier) Authorize(username, password string, min Role) (Role, error) {
	role := v.Verify(username, password)
	if role == RoleNone {
		return RoleNone, ErrUnauthorized
	}
	if !role.AtLeast(min) {
		return role, ErrForbidden
	}
	return role, nil
}

// VerifyAdminOrAbove accepts either configured account.
func (v *Verifier) VerifyAdminOrAbove(username, password string) (Role, error) {
	return v.Authorize(username, password, RoleAdmin)
}

// VerifySuperadminOnly accepts only the superadmin account.
func (v *Verifier) VerifySuperadminOnly(username, password string) (Role, error) {
	return v.Authorize(username, password, RoleSuperadmin)
}

// Hashing

func HashPassword(password string, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), cost)
}

func CheckPasswordHash(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// JWT

// Claims is the session token payload handed out by /admin/verify.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (v *Verifier) IssueToken(username string, role Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Role:     role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// ParseToken validates a token and returns its username and role.
func (v *Verifier) ParseToken(tokenString string) (string, Role, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", RoleNone, ErrUnauthorized
	}
	role := ParseRole(claims.Role)
	if role == RoleNone {
		return "", RoleNone, ErrUnauthorized
	}
	return claims.Username, role, nil
}

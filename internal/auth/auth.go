package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/andikarahman/hr-management/internal"
	orgDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/organisation"
	userDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/user"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*AuthResult, error)
	Login(dto LoginDTO) (*AuthResult, error)
	Logout(sess internal.Session) error
	ValidateToken(tokenString string) (*Claims, error)
	SessionFromToken(tokenString string) (internal.Session, error)
}

type RepositoryAPI interface {
	EmailExists(email string) (bool, error)
	GetUserByEmail(email string) (*userDatamodel.User, error)
	GetUserByID(id int64) (*userDatamodel.User, error)
	CreateOrganisationWithAdmin(org *orgDatamodel.Organisation, admin *userDatamodel.User) error
}

type TokenGeneratorAPI interface {
	GenerateToken(userID, organisationID int64) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// UserView is the user shape returned by register and login.
type UserView struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	OrganisationID int64  `json:"organisationId"`
}

// AuthResult carries a freshly issued token and its user.
type AuthResult struct {
	Token string
	User  UserView
}

// Claims is the signed claim set embedded in every session token. Field
// names are part of the wire format.
type Claims struct {
	UserID         int64 `json:"userId"`
	OrganisationID int64 `json:"organisationId"`
	jwt.RegisteredClaims
}

// JWTTokenGenerator signs and verifies HS256 session tokens. Tokens are
// stateless: once issued they stay valid until expiry.
type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

func (j *JWTTokenGenerator) GenerateToken(userID, organisationID int64) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:         userID,
		OrganisationID: organisationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

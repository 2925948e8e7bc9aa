package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ascendhq/concierge-api/internal/entity"
)

const TypeClientRegistration = "client_registration"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongType    = errors.New("unexpected token type")
)

// RegistrationClaims is embedded in the single-use registration link sent
// after an admin approves a consultation request.
type RegistrationClaims struct {
	ConsultationID string `json:"consultation_id"`
	Email          string `json:"email"`
	Type           string `json:"type"`
	jwt.RegisteredClaims
}

type SessionClaims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

type Service struct {
	secret          []byte
	registrationTTL time.Duration
	sessionTTL      time.Duration
}

func NewService(secret string) *Service {
	return &Service{
		secret:          []byte(secret),
		registrationTTL: 7 * 24 * time.Hour,
		sessionTTL:      24 * time.Hour,
	}
}

// NewRegistrationToken mints a 7-day HS256 token bound to one request.
func (s *Service) NewRegistrationToken(consultationID, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.registrationTTL)
	claims := RegistrationClaims{
		ConsultationID: consultationID,
		Email:          email,
		Type:           TypeClientRegistration,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   consultationID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseRegistrationToken verifies the signature and the claim type only.
// Expiry is deliberately not enforced here: the redemption guard chain checks
// it against the timestamp stored on the consultation row, in its fixed order.
func (s *Service) ParseRegistrationToken(raw string) (*RegistrationClaims, error) {
	claims := &RegistrationClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, s.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != TypeClientRegistration {
		return nil, ErrWrongType
	}
	return claims, nil
}

func (s *Service) NewSessionToken(u *entity.User) (string, error) {
	claims := SessionClaims{
		Email:    u.Email,
		Role:     u.Role,
		FullName: u.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) ParseSessionToken(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, s.keyFunc)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) keyFunc(tok *jwt.Token) (interface{}, error) {
	if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
	}
	return s.secret, nil
}

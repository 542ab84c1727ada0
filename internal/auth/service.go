package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
	"hotelia/room-ops/room-ops-backend/internal/staff"
)

// ErrInvalidCredentials is returned when a login attempt fails. The message
// is deliberately the same for unknown staff and wrong access codes.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims are the JWT claims issued on login. Handlers read staff identity and
// acting role from these, never from request bodies.
type Claims struct {
	StaffID string `json:"staff_id"`
	HotelID string `json:"hotel_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies staff tokens.
type Service struct {
	staffRepo staff.Repository
	secret    []byte
	tokenTTL  time.Duration
}

// NewService creates an auth service.
func NewService(staffRepo staff.Repository, secret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &Service{
		staffRepo: staffRepo,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
	}
}

// Login checks a staff member's access code and returns a signed token.
func (s *Service) Login(ctx context.Context, hotelID uuid.UUID, name, accessCode string) (string, *staff.Staff, error) {
	member, err := s.staffRepo.GetStaffByName(ctx, hotelID, name)
	if err != nil {
		if errors.Is(err, rooms.ErrStaffNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !member.Active {
		return "", nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(member.AccessCode), []byte(accessCode)) != 1 {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		StaffID: member.ID.String(),
		HotelID: member.HotelID.String(),
		Role:    string(member.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   member.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, member, nil
}

// Verify parses and validates a token, returning its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

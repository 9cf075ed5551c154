package jwt

import (
	"Pantry-Backend/domain"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Tokens are issued by the household account service. This package only
// needs to read the household scope from them; GenerateTokenHousehold exists
// for local tooling and tests.
type (
	JWTService interface {
		GenerateTokenHousehold(householdID string, ttl time.Duration) (string, error)
		ValidateTokenHousehold(token string) (*jwt.Token, error)
		GetHouseholdIDByToken(token string) (string, error)
	}

	jwtHouseholdClaim struct {
		HouseholdID string `json:"household_id"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

const issuer = "PANTRY"

func NewJWTService(secretKey string) JWTService {
	if secretKey == "" {
		log.Warnw("jwt secret is empty, every token will be rejected")
	}
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

func (j *jwtService) GenerateTokenHousehold(householdID string, ttl time.Duration) (string, error) {
	claims := jwtHouseholdClaim{
		householdID,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	if j.secretKey == "" {
		return nil, domain.ErrTokenInvalid
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenHousehold(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtHouseholdClaim{}, j.parseToken)
}

func (j *jwtService) GetHouseholdIDByToken(token string) (string, error) {
	t_Token, err := j.ValidateTokenHousehold(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtHouseholdClaim)
	if _, err := uuid.Parse(claims.HouseholdID); err != nil {
		return "", domain.ErrTokenInvalid
	}
	return claims.HouseholdID, nil
}

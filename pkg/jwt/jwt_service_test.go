package jwt

import (
	"Pantry-Backend/domain"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseholdTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret")
	householdID := uuid.NewString()

	token, err := svc.GenerateTokenHousehold(householdID, time.Hour)
	require.NoError(t, err)

	got, err := svc.GetHouseholdIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, householdID, got)
}

func TestGetHouseholdIDByTokenRejects(t *testing.T) {
	svc := NewJWTService("secret")

	expired, err := svc.GenerateTokenHousehold(uuid.NewString(), -time.Minute)
	require.NoError(t, err)
	_, err = svc.GetHouseholdIDByToken(expired)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	foreign, err := NewJWTService("other").GenerateTokenHousehold(uuid.NewString(), time.Hour)
	require.NoError(t, err)
	_, err = svc.GetHouseholdIDByToken(foreign)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	notAHousehold, err := svc.GenerateTokenHousehold("kitchen", time.Hour)
	require.NoError(t, err)
	_, err = svc.GetHouseholdIDByToken(notAHousehold)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"household_id": uuid.NewString()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.GetHouseholdIDByToken(unsigned)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = svc.GetHouseholdIDByToken("garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

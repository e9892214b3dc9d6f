package claims

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOTP_GenerateValidateRoundtrip(t *testing.T) {
	secret, err := NewOTPSecret("owner@school.example")
	require.NoError(t, err)
	require.NotEmpty(t, secret)

	now := time.Now()
	code, err := GenerateCode(secret, now)
	require.NoError(t, err)
	require.Len(t, code, 6)

	require.True(t, ValidateCode(secret, code, now))
}

func TestOTP_CodeSurvivesOnePeriodOfSkew(t *testing.T) {
	secret, err := NewOTPSecret("owner@school.example")
	require.NoError(t, err)

	issued := time.Now()
	code, err := GenerateCode(secret, issued)
	require.NoError(t, err)

	// still within the configured skew window
	require.True(t, ValidateCode(secret, code, issued.Add(otpPeriod*time.Second)))
}

func TestOTP_ExpiredCodeRejected(t *testing.T) {
	secret, err := NewOTPSecret("owner@school.example")
	require.NoError(t, err)

	issued := time.Now()
	code, err := GenerateCode(secret, issued)
	require.NoError(t, err)

	require.False(t, ValidateCode(secret, code, issued.Add(3*otpPeriod*time.Second)))
}

func TestOTP_WrongCodeRejected(t *testing.T) {
	secret, err := NewOTPSecret("owner@school.example")
	require.NoError(t, err)

	now := time.Now()
	code, err := GenerateCode(secret, now)
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	require.False(t, ValidateCode(secret, wrong, now))
}

func TestOTP_SecretsAreDistinctPerClaim(t *testing.T) {
	a, err := NewOTPSecret("owner@school.example")
	require.NoError(t, err)
	b, err := NewOTPSecret("owner@school.example")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestClaim_ConsumedExactlyOnce(t *testing.T) {
	c := Claim{}
	require.False(t, c.Consumed())

	now := time.Now()
	c.ConsumedAt = &now
	require.True(t, c.Consumed())
}

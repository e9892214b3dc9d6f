package claims

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Verification codes are 6 digits and stay valid for one five-minute
// window plus one period of clock skew.
const otpPeriod = 300

func otpOptions() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    otpPeriod,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

// NewOTPSecret creates a fresh per-claim secret.
func NewOTPSecret(email string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "membership-app",
		AccountName: email,
		Period:      otpPeriod,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

// GenerateCode produces the currently valid code for a claim secret,
// for delivery to the claimant.
func GenerateCode(secret string, now time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, now, otpOptions())
}

// ValidateCode checks a submitted code against the claim secret.
func ValidateCode(secret, code string, now time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, now, otpOptions())
	return err == nil && ok
}

package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"membership-app/database"
	"membership-app/internal/domain/access"
	"membership-app/internal/domain/claims"
	"membership-app/internal/domain/entitlement"
	"membership-app/internal/domain/institutions"
	"membership-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ClaimAccount stages a self-service claim submission and sends a
// one-time verification code. The claim is advisory: no user and no
// access profile exist until the code is verified.
func ClaimAccount(c *gin.Context) {
	var input struct {
		Name            string `json:"name" binding:"required"`
		Email           string `json:"email" binding:"required,email"`
		Tel             string `json:"tel" binding:"required"`
		InstitutionName string `json:"institution_name" binding:"required"`
		RegionID        uint   `json:"region_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing users.User
	if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	secret, err := claims.NewOTPSecret(input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create verification secret"})
		return
	}

	claim := claims.Claim{
		Ref:             uuid.NewString(),
		Name:            input.Name,
		Email:           input.Email,
		Tel:             input.Tel,
		InstitutionName: input.InstitutionName,
		RegionID:        input.RegionID,
		OTPSecret:       secret,
	}
	if err := database.DB.Create(&claim).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store claim"})
		return
	}

	code, err := claims.GenerateCode(secret, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate verification code"})
		return
	}
	if err := SendOTPEmail(claim.Email, code); err != nil {
		log.Printf("auth: OTP email to %s failed: %v", claim.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Verification code sent. Please check your email.",
		"claim_ref": claim.Ref,
	})
}

// VerifyOTP consumes a staged claim exactly once: it validates the
// submitted code, creates the user plus its pending access profile and
// the institution shell, and clears the staged state.
func VerifyOTP(c *gin.Context) {
	var input struct {
		ClaimRef string `json:"claim_ref" binding:"required"`
		Code     string `json:"code" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !isPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long and contain both letters and numbers"})
		return
	}

	var claim claims.Claim
	if err := database.DB.Where("ref = ?", input.ClaimRef).First(&claim).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
		return
	}
	if claim.Consumed() {
		c.JSON(http.StatusConflict, gin.H{"error": "Claim already verified"})
		return
	}
	if !claims.ValidateCode(claim.OTPSecret, input.Code, time.Now()) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired verification code"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	h := string(hashed)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user := users.User{
			Name:         claim.Name,
			Tel:          claim.Tel,
			Email:        claim.Email,
			Password:     &h,
			AuthProvider: "local",
			IsVerified:   true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile := access.Profile{
			UserID:   user.ID,
			Role:     access.RoleMember,
			Status:   access.StatusPending,
			RegionID: &claim.RegionID,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		inst := institutions.Institution{
			OwnerUserID:   user.ID,
			RegionID:      claim.RegionID,
			Name:          claim.InstitutionName,
			PaymentStatus: entitlement.PaymentUnpaid,
			ProfileLevel:  entitlement.LevelBasic,
		}
		if err := tx.Create(&inst).Error; err != nil {
			return err
		}

		now := time.Now()
		claim.ConsumedAt = &now
		return tx.Save(&claim).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account created. It will be reviewed by your regional admin.",
	})
}

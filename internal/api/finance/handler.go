package finance

import (
	"errors"
	"net/http"
	"strconv"

	"membership-app/database"
	"membership-app/internal/app/http/middleware"
	"membership-app/internal/domain/audit"
	"membership-app/internal/domain/billing"
	"membership-app/internal/domain/entitlement"
	"membership-app/internal/domain/institutions"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListPayments shows activation payments awaiting or past verification.
func ListPayments(c *gin.Context) {
	var payments []billing.Payment
	if err := database.DB.Order("created_at desc").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// VerifyTransfer confirms a manual-transfer activation payment. It
// marks the institution paid and then issues its member number; the
// number issuance is reported separately because the payment
// verification itself has already succeeded.
func VerifyTransfer(c *gin.Context) {
	actor := middleware.Profile(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment id"})
		return
	}

	var payment billing.Payment
	if err := database.DB.First(&payment, paymentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	if payment.Status == "paid" {
		c.JSON(http.StatusConflict, gin.H{"error": "Payment already verified"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = "paid"
		payment.VerifiedBy = &actor.UserID
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&institutions.Institution{}).
			Where("id = ?", payment.InstitutionID).
			Update("payment_status", entitlement.PaymentPaid).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify payment"})
		return
	}

	audit.Record(database.DB, audit.Entry{
		ActorID:    actor.UserID,
		ActorRole:  actor.Role,
		Action:     audit.ActionPaymentVerified,
		TargetType: "payment",
		TargetID:   strconv.FormatUint(paymentID, 10),
	})

	resp := gin.H{"message": "Payment verified"}
	number, issueErr := institutions.IssueMemberNumber(database.DB, payment.InstitutionID)
	if issueErr != nil {
		if !errors.Is(issueErr, institutions.ErrPaymentRequired) {
			resp["warning"] = "Payment verified, but member number issuance failed"
		}
	} else {
		resp["member_number"] = number
		audit.Record(database.DB, audit.Entry{
			ActorID:    actor.UserID,
			ActorRole:  actor.Role,
			Action:     audit.ActionNumberIssued,
			TargetType: "institution",
			TargetID:   strconv.FormatUint(uint64(payment.InstitutionID), 10),
			Details:    number,
		})
	}

	c.JSON(http.StatusOK, resp)
}

package stripewebhooks

import (
	"fmt"
	"log"

	"membership-app/database"
	"membership-app/internal/domain/audit"
	"membership-app/internal/domain/billing"
	"membership-app/internal/domain/entitlement"
	"membership-app/internal/domain/institutions"
	infrastripe "membership-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleCheckoutSessionCompleted confirms an activation payment. The
// payment row is matched by session id; the institution flips to paid
// and gets its member number issued. Number issuance failure is logged
// but does not fail the webhook: the payment IS confirmed.
func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	if infrastripe.NormalizeCheckoutStatus(string(session.PaymentStatus)) != "paid" {
		return nil
	}

	var payment billing.Payment
	if err := database.DB.Where("stripe_session_id = ?", session.ID).First(&payment).Error; err != nil {
		return fmt.Errorf("payment not found for session %s: %w", session.ID, err)
	}
	if payment.Status == "paid" {
		// replayed event
		return nil
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = "paid"
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&institutions.Institution{}).
			Where("id = ?", payment.InstitutionID).
			Update("payment_status", entitlement.PaymentPaid).Error
	})
	if err != nil {
		return fmt.Errorf("failed to confirm payment: %w", err)
	}

	number, err := institutions.IssueMemberNumber(database.DB, payment.InstitutionID)
	if err != nil {
		log.Printf("stripewebhook: member number issuance for institution %d failed: %v", payment.InstitutionID, err)
		return nil
	}

	audit.Record(database.DB, audit.Entry{
		ActorID:    0, // system action
		Action:     audit.ActionNumberIssued,
		TargetType: "institution",
		TargetID:   fmt.Sprint(payment.InstitutionID),
		Details:    number,
	})
	return nil
}

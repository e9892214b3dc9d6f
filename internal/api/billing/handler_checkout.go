package billing

import (
	"fmt"
	"net/http"
	"os"

	"membership-app/database"
	"membership-app/internal/domain/billing"
	"membership-app/internal/domain/entitlement"
	"membership-app/internal/domain/institutions"
	"membership-app/internal/domain/pricing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// CreateCheckoutSession starts a one-time Stripe checkout for the
// activation fee. The amount comes from the pricing setting, never from
// the client.
func CreateCheckoutSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var inst institutions.Institution
	if err := database.DB.Where("owner_user_id = ?", userID).First(&inst).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Institution not found"})
		return
	}
	if inst.PaymentStatus == entitlement.PaymentPaid {
		c.JSON(http.StatusConflict, gin.H{"error": "Activation already paid"})
		return
	}

	setting, err := pricing.Current(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pricing"})
		return
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:5173"
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL:        stripe.String(appURL + "/payment-pending"),
		CancelURL:         stripe.String(appURL + "/payment?canceled=1"),
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(fmt.Sprint(inst.ID)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(setting.Currency),
					UnitAmount: stripe.Int64(int64(setting.ActivationPrice)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Membership activation"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	payment := billing.Payment{
		InstitutionID:   inst.ID,
		Method:          billing.MethodStripe,
		StripeSessionID: stripe.String(session.ID),
		Amount:          setting.ActivationPrice,
		Currency:        setting.Currency,
		Status:          "open",
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": session.URL})
}

// SubmitTransfer records a manual transfer awaiting finance
// verification.
func SubmitTransfer(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		ReceiptURL string `json:"receipt_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var inst institutions.Institution
	if err := database.DB.Where("owner_user_id = ?", userID).First(&inst).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Institution not found"})
		return
	}
	if inst.PaymentStatus == entitlement.PaymentPaid {
		c.JSON(http.StatusConflict, gin.H{"error": "Activation already paid"})
		return
	}

	setting, err := pricing.Current(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pricing"})
		return
	}

	payment := billing.Payment{
		InstitutionID: inst.ID,
		Method:        billing.MethodTransfer,
		Amount:        setting.ActivationPrice,
		Currency:      setting.Currency,
		Status:        "pending_verification",
		ReceiptURL:    &input.ReceiptURL,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Transfer submitted. It will be verified by the finance team.",
		"payment": payment,
	})
}

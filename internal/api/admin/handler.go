package admin

import (
	"net/http"
	"strconv"

	"membership-app/database"
	"membership-app/internal/app/http/middleware"
	"membership-app/internal/domain/access"
	"membership-app/internal/domain/audit"
	"membership-app/internal/domain/institutions"
	"membership-app/internal/domain/pricing"
	"membership-app/internal/domain/regions"

	"github.com/gin-gonic/gin"
)

// ListPendingProfiles returns pending access profiles for the admin's
// scope: a regional admin sees only its region, the central admin sees
// everything.
func ListPendingProfiles(c *gin.Context) {
	p := middleware.Profile(c)
	if p == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	q := database.DB.Where("account_status = ?", access.StatusPending)
	if p.Role == access.RoleRegionalAdmin {
		if p.RegionID == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Regional admin has no region assigned"})
			return
		}
		q = q.Where("region_id = ?", *p.RegionID)
	}

	var profiles []access.Profile
	if err := q.Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending accounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// DecideProfile applies the one-time lifecycle decision for a pending
// account: pending -> active or pending -> rejected. A decided profile
// never reverts and cannot be decided again.
func DecideProfile(c *gin.Context) {
	actor := middleware.Profile(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profileID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile id"})
		return
	}

	var input struct {
		Decision string `json:"decision" binding:"required"` // "approve" | "reject"
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target access.AccountStatus
	var action audit.Action
	switch input.Decision {
	case "approve":
		target = access.StatusActive
		action = audit.ActionClaimApproved
	case "reject":
		target = access.StatusRejected
		action = audit.ActionClaimRejected
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decision must be approve or reject"})
		return
	}

	var profile access.Profile
	if err := database.DB.First(&profile, profileID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if actor.Role == access.RoleRegionalAdmin {
		if actor.RegionID == nil || profile.RegionID == nil || *actor.RegionID != *profile.RegionID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Profile is outside your region"})
			return
		}
	}

	// Conditional update enforces decide-exactly-once even under
	// concurrent admin clicks.
	res := database.DB.Model(&access.Profile{}).
		Where("id = ? AND account_status = ?", profile.ID, access.StatusPending).
		Update("account_status", target)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account status"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Account has already been decided"})
		return
	}

	audit.Record(database.DB, audit.Entry{
		ActorID:    actor.UserID,
		ActorRole:  actor.Role,
		Action:     action,
		TargetType: "claim",
		TargetID:   strconv.FormatUint(profileID, 10),
		Details:    "status -> " + string(target),
		RegionID:   profile.RegionID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Account " + string(target)})
}

// ListInstitutions is the central-admin database view.
func ListInstitutions(c *gin.Context) {
	var insts []institutions.Institution
	if err := database.DB.Order("id").Find(&insts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list institutions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"institutions": insts})
}

// RegionalDetail is the central admin's per-region drill-down.
func RegionalDetail(c *gin.Context) {
	regionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region id"})
		return
	}

	var region regions.Region
	if err := database.DB.First(&region, regionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Region not found"})
		return
	}

	var insts []institutions.Institution
	if err := database.DB.Where("region_id = ?", regionID).Order("id").Find(&insts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list institutions"})
		return
	}

	var pending int64
	database.DB.Model(&access.Profile{}).
		Where("region_id = ? AND account_status = ?", regionID, access.StatusPending).
		Count(&pending)

	c.JSON(http.StatusOK, gin.H{
		"region":           region,
		"institutions":     insts,
		"pending_accounts": pending,
	})
}

// UpdateActivationPrice lets the central admin change the activation
// fee.
func UpdateActivationPrice(c *gin.Context) {
	actor := middleware.Profile(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Price float64 `json:"price" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting, err := pricing.Current(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pricing"})
		return
	}
	setting.ActivationPrice = input.Price
	if err := database.DB.Save(&setting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save pricing"})
		return
	}

	audit.Record(database.DB, audit.Entry{
		ActorID:    actor.UserID,
		ActorRole:  actor.Role,
		Action:     audit.ActionPriceChanged,
		TargetType: "system",
		TargetID:   "activation_price",
		Details:    strconv.FormatFloat(input.Price, 'f', 2, 64),
	})

	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

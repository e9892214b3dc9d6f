package institution

import (
	"errors"
	"net/http"
	"strconv"

	"membership-app/database"
	"membership-app/internal/app/http/middleware"
	"membership-app/internal/domain/audit"
	"membership-app/internal/domain/entitlement"
	"membership-app/internal/domain/institutions"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ownInstitution(c *gin.Context) (*institutions.Institution, bool) {
	userID := c.GetUint("user_id")
	var inst institutions.Institution
	if err := database.DB.Where("owner_user_id = ?", userID).First(&inst).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Institution not found"})
		return nil, false
	}
	return &inst, true
}

// GetProfile returns the institution's business profile for the owning
// member.
func GetProfile(c *gin.Context) {
	inst, ok := ownInstitution(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, inst)
}

// UpdateProfile saves the editable business-profile fields. Region and
// city are intentionally not bindable here: they belong to the regional
// admin.
func UpdateProfile(c *gin.Context) {
	inst, ok := ownInstitution(c)
	if !ok {
		return
	}

	var input struct {
		Name           *string `json:"name"`
		SupervisorName *string `json:"supervisor_name"`
		ShortAddress   *string `json:"short_address"`
		Instagram      *string `json:"instagram"`
		Youtube        *string `json:"youtube"`
		Tiktok         *string `json:"tiktok"`
		Website        *string `json:"website"`
		Latitude       *string `json:"latitude"`
		Longitude      *string `json:"longitude"`
		MissionVision  *string `json:"mission_vision"`
		History        *string `json:"history"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&inst.Name, input.Name)
	apply(&inst.SupervisorName, input.SupervisorName)
	apply(&inst.ShortAddress, input.ShortAddress)
	apply(&inst.Instagram, input.Instagram)
	apply(&inst.Youtube, input.Youtube)
	apply(&inst.Tiktok, input.Tiktok)
	apply(&inst.Website, input.Website)
	apply(&inst.Latitude, input.Latitude)
	apply(&inst.Longitude, input.Longitude)
	apply(&inst.MissionVision, input.MissionVision)
	apply(&inst.History, input.History)

	if err := database.DB.Save(inst).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, inst)
}

// ClaimLevel attempts a promotion to the requested tier. The candidate
// fields are the stored profile merged with any overrides in the
// request body, so a client sneaking region fields into the submission
// is rejected by the state machine, not silently ignored.
func ClaimLevel(c *gin.Context) {
	inst, ok := ownInstitution(c)
	if !ok {
		return
	}

	var input struct {
		TargetLevel string  `json:"target_level" binding:"required"`
		Region      *string `json:"region"`
		City        *string `json:"city"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := inst.PromotionFields()
	if input.Region != nil {
		fields.Region = *input.Region
	}
	if input.City != nil {
		fields.City = *input.City
	}

	prevLevel := inst.ProfileLevel
	newLevel, err := entitlement.AttemptPromotion(prevLevel, entitlement.Level(input.TargetLevel), fields)
	if err != nil {
		var missing *entitlement.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":          "Profile incomplete for this level",
				"missing_fields": missing.Fields,
			})
		case errors.Is(err, entitlement.ErrAlreadyAtOrAboveTarget):
			c.JSON(http.StatusConflict, gin.H{"error": "Level already reached"})
		case errors.Is(err, entitlement.ErrRegionImmutable):
			c.JSON(http.StatusForbidden, gin.H{"error": "Region is assigned by your regional admin and cannot be changed here"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Promotion must target the next tier"})
		}
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(inst).Update("profile_level", newLevel).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save promotion"})
		return
	}

	if p := middleware.Profile(c); p != nil {
		audit.Record(database.DB, audit.Entry{
			ActorID:    p.UserID,
			ActorRole:  p.Role,
			Action:     audit.ActionLevelPromoted,
			TargetType: "institution",
			TargetID:   strconv.FormatUint(uint64(inst.ID), 10),
			Details:    string(prevLevel) + " -> " + string(newLevel),
			RegionID:   p.RegionID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Level " + string(newLevel) + " reached",
		"profile_level": newLevel,
	})
}

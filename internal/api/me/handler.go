package me

import (
	"errors"
	"net/http"

	"membership-app/database"
	"membership-app/internal/app/http/middleware"
	"membership-app/internal/domain/access"
	"membership-app/internal/domain/crew"
	"membership-app/internal/domain/entitlement"
	"membership-app/internal/domain/institutions"
	"membership-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCurrentUser returns the identity, the access profile and, for
// members, the institution's entitlement snapshot. The access profile
// comes from the gate middleware; business data is fetched separately
// and its absence never breaks the access part of the response.
func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	profile := middleware.Profile(c)
	if profile == nil {
		p, err := access.ResolveProfile(database.DB, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Access profile not found"})
			return
		}
		profile = p
	}

	resp := MeResponse{
		User: UserDTO{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Tel:        stringPtrIfNotEmpty(user.Tel),
			IsVerified: user.IsVerified,
		},
		Access: AccessDTO{
			Role:          string(profile.Role),
			AccountStatus: string(profile.Status),
			RegionID:      profile.RegionID,
		},
	}

	if profile.Role == access.RoleMember {
		dto, err := buildInstitutionDTO(userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load institution"})
			return
		}
		resp.Institution = dto
	}

	c.JSON(http.StatusOK, resp)
}

func buildInstitutionDTO(ownerUserID uint) (*InstitutionDTO, error) {
	var inst institutions.Institution
	if err := database.DB.Where("owner_user_id = ?", ownerUserID).First(&inst).Error; err != nil {
		return nil, err
	}

	var slots int64
	if err := database.DB.Model(&crew.Member{}).
		Where("institution_id = ?", inst.ID).
		Count(&slots).Error; err != nil {
		return nil, err
	}

	st := entitlement.State{
		Payment:       inst.PaymentStatus,
		Level:         inst.ProfileLevel,
		CrewSlotCount: int(slots),
	}

	locks := map[string]LockDTO{}
	for feature, lock := range entitlement.Snapshot(st) {
		locks[string(feature)] = LockDTO{Locked: lock.Locked, Reason: string(lock.Reason)}
	}

	dto := &InstitutionDTO{
		ID:            inst.ID,
		Name:          inst.Name,
		PaymentStatus: string(inst.PaymentStatus),
		ProfileLevel:  string(inst.ProfileLevel),
		MemberNumber:  inst.MemberNumber,
		CrewSlotCount: int(slots),
		CrewSlotCap:   entitlement.FreeCrewSlots,
		Locks:         locks,
	}
	if inst.MemberNumber != nil {
		display := institutions.FormatNumber(*inst.MemberNumber, false)
		dto.MemberNumberDisplay = &display
	}
	return dto, nil
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package crew

import (
	"errors"
	"net/http"
	"strconv"

	"membership-app/database"
	"membership-app/internal/app/http/middleware"
	"membership-app/internal/domain/audit"
	"membership-app/internal/domain/crew"
	"membership-app/internal/domain/entitlement"
	"membership-app/internal/domain/institutions"

	"github.com/gin-gonic/gin"
)

// Handler carries the allocator so its per-institution locks live for
// the process lifetime instead of per request.
type Handler struct {
	Allocator *crew.Allocator
}

func NewHandler() *Handler {
	return &Handler{Allocator: crew.NewAllocator(&crew.GormStore{DB: database.DB})}
}

func (h *Handler) ownInstitution(c *gin.Context) (*institutions.Institution, bool) {
	userID := c.GetUint("user_id")
	var inst institutions.Institution
	if err := database.DB.Where("owner_user_id = ?", userID).First(&inst).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Institution not found"})
		return nil, false
	}
	return &inst, true
}

func (h *Handler) List(c *gin.Context) {
	inst, ok := h.ownInstitution(c)
	if !ok {
		return
	}
	members, err := (&crew.GormStore{DB: database.DB}).ListMembers(inst.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list crew"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"members":  members,
		"slot_cap": entitlement.FreeCrewSlots,
	})
}

// Add creates a roster member behind the entitlement lock. The lock
// reason is surfaced verbatim so the client can show the correct
// remediation: pay vs no-more-slots. A failed number issuance does not
// fail the add; it is reported as a warning on the 201 response.
func (h *Handler) Add(c *gin.Context) {
	inst, ok := h.ownInstitution(c)
	if !ok {
		return
	}

	var input struct {
		Name     string `json:"name" binding:"required"`
		Whatsapp string `json:"whatsapp" binding:"required"`
		RoleCode string `json:"role_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if denied := h.checkMutationLock(c, inst); denied {
		return
	}

	result, err := h.Allocator.Add(inst.ID, input.Name, input.Whatsapp, crew.RoleCode(input.RoleCode))
	if err != nil {
		switch {
		case errors.Is(err, crew.ErrSlotExhausted):
			c.JSON(http.StatusForbidden, gin.H{
				"error":  "All crew slots are in use",
				"reason": string(entitlement.ReasonSlotExhausted),
			})
		case errors.Is(err, crew.ErrInvalidRoleCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add crew member"})
		}
		return
	}

	if p := middleware.Profile(c); p != nil {
		audit.Record(database.DB, audit.Entry{
			ActorID:    p.UserID,
			ActorRole:  p.Role,
			Action:     audit.ActionCrewUpdated,
			TargetType: "crew",
			TargetID:   strconv.FormatUint(uint64(result.Member.ID), 10),
			Details:    "added " + result.Member.Name,
			RegionID:   p.RegionID,
		})
	}

	resp := gin.H{"member": result.Member}
	if result.Issuance.Err != nil {
		// The member exists; only the number is pending.
		resp["warning"] = "Member added, but no ID number was issued"
		if errors.Is(result.Issuance.Err, crew.ErrInstitutionNotActivated) {
			resp["issuance_reason"] = "institution_not_activated"
		} else {
			resp["issuance_reason"] = "issuance_failed"
		}
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) checkMutationLock(c *gin.Context, inst *institutions.Institution) bool {
	count, err := (&crew.GormStore{DB: database.DB}).CountMembers(inst.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count crew"})
		return true
	}
	lock := entitlement.Evaluate(entitlement.FeatureCrewMutate, entitlement.State{
		Payment:       inst.PaymentStatus,
		Level:         inst.ProfileLevel,
		CrewSlotCount: count,
	})
	if lock.Locked {
		c.JSON(http.StatusForbidden, gin.H{
			"error":  "Crew management is locked",
			"reason": string(lock.Reason),
		})
		return true
	}
	return false
}

// checkUnpaidLock gates edit/remove on payment only. The slot lock is
// about exceeding the quota and must not block operations that keep or
// free capacity.
func (h *Handler) checkUnpaidLock(c *gin.Context, inst *institutions.Institution) bool {
	lock := entitlement.Evaluate(entitlement.FeatureCrewMutate, entitlement.State{
		Payment: inst.PaymentStatus,
		Level:   inst.ProfileLevel,
	})
	if lock.Locked {
		c.JSON(http.StatusForbidden, gin.H{
			"error":  "Crew management is locked",
			"reason": string(lock.Reason),
		})
		return true
	}
	return false
}

// ChangeRole reclassifies a member. The number re-issuance this implies
// runs in the background inside the allocator; the response only
// confirms the role change.
func (h *Handler) ChangeRole(c *gin.Context) {
	inst, ok := h.ownInstitution(c)
	if !ok {
		return
	}

	memberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	var input struct {
		RoleCode string `json:"role_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.memberBelongs(c, uint(memberID), inst.ID) {
		return
	}
	if denied := h.checkUnpaidLock(c, inst); denied {
		return
	}

	member, err := h.Allocator.ChangeRole(uint(memberID), crew.RoleCode(input.RoleCode))
	if err != nil {
		switch {
		case errors.Is(err, crew.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Crew member not found"})
		case errors.Is(err, crew.ErrInvalidRoleCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change role"})
		}
		return
	}

	if p := middleware.Profile(c); p != nil {
		audit.Record(database.DB, audit.Entry{
			ActorID:    p.UserID,
			ActorRole:  p.Role,
			Action:     audit.ActionRoleChanged,
			TargetType: "crew",
			TargetID:   strconv.FormatUint(memberID, 10),
			Details:    "role -> " + input.RoleCode,
			RegionID:   p.RegionID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

func (h *Handler) Delete(c *gin.Context) {
	inst, ok := h.ownInstitution(c)
	if !ok {
		return
	}

	memberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	if !h.memberBelongs(c, uint(memberID), inst.ID) {
		return
	}
	if denied := h.checkUnpaidLock(c, inst); denied {
		return
	}

	if err := h.Allocator.Remove(uint(memberID)); err != nil {
		if errors.Is(err, crew.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Crew member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete crew member"})
		return
	}

	if p := middleware.Profile(c); p != nil {
		audit.Record(database.DB, audit.Entry{
			ActorID:    p.UserID,
			ActorRole:  p.Role,
			Action:     audit.ActionCrewDeleted,
			TargetType: "crew",
			TargetID:   strconv.FormatUint(memberID, 10),
			RegionID:   p.RegionID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Crew member removed"})
}

func (h *Handler) memberBelongs(c *gin.Context, memberID, institutionID uint) bool {
	m, err := (&crew.GormStore{DB: database.DB}).GetMember(memberID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Crew member not found"})
		return false
	}
	if m.InstitutionID != institutionID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Crew member belongs to another institution"})
		return false
	}
	return true
}

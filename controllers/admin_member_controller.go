package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SRKRCC/HackOverflow-backend/repository"
	"github.com/SRKRCC/HackOverflow-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- 成员目录接口 ---

// AdminGetMembers 按条件检索成员目录
func (h *Handlers) AdminGetMembers(c *gin.Context) {
	filter := repository.MemberFilter{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		College:    c.Query("college"),
		TShirtSize: c.Query("tShirtSize"),
	}
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "year must be a number")
			return
		}
		filter.Year = &year
	}
	if v := c.Query("hasTeam"); v != "" {
		hasTeam, err := strconv.ParseBool(v)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "hasTeam must be true or false")
			return
		}
		filter.HasTeam = &hasTeam
	}

	members, err := h.Store.Members.Search(filter)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Members fetched successfully", "data": members, "count": len(members)})
}

// AdminGetMemberFilters 目录筛选下拉的取值集合
func (h *Handlers) AdminGetMemberFilters(c *gin.Context) {
	filters := map[string][]string{}
	for key, column := range map[string]string{
		"departments": "department",
		"colleges":    "college_name",
		"years":       "year_of_study",
		"tShirtSizes": "t_shirt_size",
	} {
		values, err := h.Store.Members.DistinctValues(column)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		filters[key] = values
	}
	c.JSON(http.StatusOK, gin.H{"message": "Filters fetched successfully", "data": filters})
}

func (h *Handlers) AdminGetMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid member id")
		return
	}
	member, err := h.Store.Members.ByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Member not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member fetched successfully", "data": member})
}

// AdminUpdateMember 白名单更新，邮箱与队伍归属不在其中
func (h *Handlers) AdminUpdateMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	var req struct {
		Name         *string `json:"name"`
		PhoneNumber  *string `json:"phone_number"`
		ProfileImage *string `json:"profile_image"`
		Department   *string `json:"department"`
		CollegeName  *string `json:"college_name"`
		YearOfStudy  *int    `json:"year_of_study"`
		Location     *string `json:"location"`
		TShirtSize   *string `json:"t_shirt_size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.ProfileImage != nil {
		updates["profile_image"] = *req.ProfileImage
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.CollegeName != nil {
		updates["college_name"] = *req.CollegeName
	}
	if req.YearOfStudy != nil {
		updates["year_of_study"] = *req.YearOfStudy
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.TShirtSize != nil {
		updates["t_shirt_size"] = *req.TShirtSize
	}
	if len(updates) == 0 {
		utils.Error(c, http.StatusBadRequest, "At least one field must be provided for update")
		return
	}

	if _, err := h.Store.Members.ByID(uint(id)); errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Member not found")
		return
	}
	if err := h.Store.Members.Updates(uint(id), updates); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Audit.LogAdminAction("MEMBER_UPDATED", auditContext(c), c.FullPath(), http.StatusOK, map[string]interface{}{"member_id": id})
	utils.Success(c, "Member updated successfully", nil)
}

// AdminMarkAttendance 签到打点
func (h *Handlers) AdminMarkAttendance(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid member id")
		return
	}
	member, err := h.Store.Members.ByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Member not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := h.Store.Members.IncrementAttendance(uint(id)); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Audit.LogAdminAction("ATTENDANCE_MARKED", auditContext(c), c.FullPath(), http.StatusOK, map[string]interface{}{
		"member_id":  id,
		"attendance": member.Attendance + 1,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Attendance marked successfully", "data": gin.H{"attendance": member.Attendance + 1}})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymflow/internal/models/request_models"
	"gymflow/internal/services"
	"gymflow/pkg/utils"
)

type MemberController struct {
	memberService services.MemberServiceInterface
}

func NewMemberController(memberService services.MemberServiceInterface) *MemberController {
	return &MemberController{memberService: memberService}
}

// CreateMember godoc
// @Summary Add a member profile under the caller's account
// @Tags Members
// @Accept json
// @Produce json
// @Param request body request_models.CreateMemberRequest true "Member payload"
// @Success 200 {object} response_models.MemberResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /members [post]
func (m *MemberController) CreateMember(c *gin.Context) {
	var req request_models.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	accountID, err := currentAccountID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	resp, err := m.memberService.CreateMember(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMembers godoc
// @Summary List the caller's member profiles with their payments
// @Tags Members
// @Produce json
// @Success 200 {array} response_models.MemberResponse
// @Security BearerAuth
// @Router /members [get]
func (m *MemberController) ListMembers(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	resp, err := m.memberService.ListMembers(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

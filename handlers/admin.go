package handlers

import (
	"net/http"

	"rapstation/services/admin"
	"rapstation/utils"

	"github.com/gin-gonic/gin"
)

// RevealKeyHeader carries the key used to decrypt personal fields on the admin list.
const RevealKeyHeader = "X-Reveal-Key"

// AdminHandler encapsulates the staff panel endpoints.
type AdminHandler struct {
	Service admin.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges staff credentials for a bearer token.
func (ah *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "username and password are required")
		return
	}
	token, err := ah.Service.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ListReservations returns every reservation, decrypted when X-Reveal-Key is sent.
func (ah *AdminHandler) ListReservations(c *gin.Context) {
	rows, err := ah.Service.List(c.Request.Context(), c.Query("q"), c.GetHeader(RevealKeyHeader))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": rows})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus changes a reservation's lifecycle state.
func (ah *AdminHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "status is required")
		return
	}
	res, err := ah.Service.UpdateStatus(c.Request.Context(), c.Param("code"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ah *AdminHandler) DeleteReservation(c *gin.Context) {
	if err := ah.Service.Delete(c.Request.Context(), c.Param("code")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ah *AdminHandler) Stats(c *gin.Context) {
	stats, err := ah.Service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

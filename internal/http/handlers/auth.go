package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/http/response"
	"github.com/medtrace/medtrace-backend/internal/pkg/ctxutil"
	"github.com/medtrace/medtrace-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		Email           string `json:"email"`
		Phone           string `json:"phone"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
		Role            string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	if req.Password != req.ConfirmPassword {
		response.RespondError(c, http.StatusBadRequest, "validation_error",
			domainValidation("password and confirm_password do not match"))
		return
	}
	acct := domain.Account{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
	}
	if err := ah.authService.Register(c.Request.Context(), &acct); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"id": acct.ID, "message": "account registered successfully"})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	token, acct, err := ah.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"id":           acct.ID,
		"first_name":   acct.FirstName,
		"role":         acct.Role,
		"access_token": token,
		"expires_in":   int(ah.authService.GetAccessTTL().Seconds()),
	})
}

// CheckRole backs the per-role access endpoints. The check runs against the
// stored account, never the token claim alone.
func (ah *AuthHandler) CheckRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil {
			response.RespondDomainError(c, domain.ErrUnauthorizedRole)
			return
		}
		if err := ah.authService.CheckRole(c.Request.Context(), rd.AccountID, role); err != nil {
			response.RespondDomainError(c, err)
			return
		}
		response.RespondOK(c, gin.H{"message": "access granted"})
	}
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medtrace/medtrace-backend/internal/http/response"
	"github.com/medtrace/medtrace-backend/internal/services"
)

type ProvenanceHandler struct {
	provenanceService services.ProvenanceService
}

func NewProvenanceHandler(provenanceService services.ProvenanceService) *ProvenanceHandler {
	return &ProvenanceHandler{provenanceService: provenanceService}
}

// GetChain serves both the authenticated chain lookup and the public
// consumer alias that scanned labels redirect to.
func (ph *ProvenanceHandler) GetChain(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error",
			domainValidation("id must be a positive integer"))
		return
	}
	history, err := ph.provenanceService.Resolve(c.Request.Context(), uint(id))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, history)
}

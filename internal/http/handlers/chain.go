package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/http/response"
	"github.com/medtrace/medtrace-backend/internal/pkg/ctxutil"
	"github.com/medtrace/medtrace-backend/internal/services"
)

type ChainHandler struct {
	chainService services.ChainService
}

func NewChainHandler(chainService services.ChainService) *ChainHandler {
	return &ChainHandler{chainService: chainService}
}

func (ch *ChainHandler) CreateMaterial(c *gin.Context) {
	var in services.CreateMaterialInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	material, err := ch.chainService.CreateMaterial(c.Request.Context(), ownerID, in)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, material)
}

func (ch *ChainHandler) ListMaterials(c *gin.Context) {
	materials, err := ch.chainService.ListAvailableMaterials(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, materials)
}

func (ch *ChainHandler) CreateProduct(c *gin.Context) {
	var in services.CreateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	product, err := ch.chainService.CreateProduct(c.Request.Context(), ownerID, in)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, product)
}

func (ch *ChainHandler) ListProducts(c *gin.Context) {
	products, err := ch.chainService.ListAvailableProducts(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, products)
}

func (ch *ChainHandler) CreateShipment(c *gin.Context) {
	var in services.CreateShipmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	shipment, err := ch.chainService.CreateShipment(c.Request.Context(), ownerID, in)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, shipment)
}

func (ch *ChainHandler) ListShipments(c *gin.Context) {
	shipments, err := ch.chainService.ListAvailableShipments(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, shipments)
}

func (ch *ChainHandler) CreateSale(c *gin.Context) {
	var in services.CreateSaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	sale, err := ch.chainService.CreateSale(c.Request.Context(), ownerID, in)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, sale)
}

func (ch *ChainHandler) ListSales(c *gin.Context) {
	sales, err := ch.chainService.ListSales(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, sales)
}

func ownerFromContext(c *gin.Context) (uint, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.AccountID == 0 {
		response.RespondDomainError(c, domain.ErrUnauthorizedRole)
		return 0, false
	}
	return rd.AccountID, true
}

func domainValidation(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}

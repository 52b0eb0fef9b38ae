package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haleralex/lasercare/internal/adapters/http/common"
	"github.com/Haleralex/lasercare/internal/application/dtos"
)

// ListZonesUseCase - интерфейс для справочника зон.
type ListZonesUseCase interface {
	Execute(ctx context.Context) ([]dtos.ZoneDTO, error)
}

// ZoneHandler отдаёт справочник зон. Справочник только читается.
type ZoneHandler struct {
	listZones ListZonesUseCase
}

// NewZoneHandler создаёт новый ZoneHandler.
func NewZoneHandler(listZones ListZonesUseCase) *ZoneHandler {
	return &ZoneHandler{listZones: listZones}
}

// ListZones возвращает все зоны.
//
// @Router /api/zonas [get]
func (h *ZoneHandler) ListZones(c *gin.Context) {
	result, err := h.listZones.Execute(c.Request.Context())
	if err != nil {
		common.HandleDomainError(c, err, "Failed to fetch zones")
		return
	}

	c.JSON(http.StatusOK, result)
}

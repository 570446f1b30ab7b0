package api

import (
	"net/http"

	"TenderSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RepairHandler 历史数据修复接口（运维用，低频触发）
type RepairHandler struct {
	repairService *service.RepairService
	logger        *logrus.Logger
}

func NewRepairHandler(db *gorm.DB, logger *logrus.Logger) *RepairHandler {
	return &RepairHandler{
		repairService: service.NewRepairService(db, logger),
		logger:        logger,
	}
}

// RepairStatusHandler 从原始XML重推导全表公告状态
// POST /repair/status
func (h *RepairHandler) RepairStatusHandler(c *gin.Context) {
	repaired, err := h.repairService.RepairStatuses(c.Request.Context())
	if err != nil {
		h.logger.Errorf("状态修复失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "repaired": repaired})
		return
	}
	c.JSON(http.StatusOK, gin.H{"repaired": repaired})
}

// RepairKeysHandler 重建旧格式的无版本段source_id
// POST /repair/keys
func (h *RepairHandler) RepairKeysHandler(c *gin.Context) {
	repaired, err := h.repairService.RepairKeys(c.Request.Context())
	if err != nil {
		h.logger.Errorf("键修复失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "repaired": repaired})
		return
	}
	c.JSON(http.StatusOK, gin.H{"repaired": repaired})
}

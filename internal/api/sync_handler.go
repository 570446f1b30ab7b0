package api

import (
	"net/http"
	"time"

	"TenderSync/internal/config"
	"TenderSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SyncHandler struct {
	ingestService *service.IngestService
	logger        *logrus.Logger
}

func NewSyncHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *SyncHandler {
	return &SyncHandler{
		ingestService: service.NewIngestService(db, logger, cfg),
		logger:        logger,
	}
}

// IngestSourceHandler 采集指定数据源的公告
// @Summary 采集数据源公告
// @Param source path string true "数据源名称（germany/uk）"
// @Param date query string false "发布日期（YYYY-MM-DD，默认今天）"
// @Success 200 {object} model.RunReport
// @Failure 500 {object} map[string]string
// @Router /sync/source/{source} [post]
func (h *SyncHandler) IngestSourceHandler(c *gin.Context) {
	source := c.Param("source")
	dateStr := c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02"))

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "日期格式应为YYYY-MM-DD",
		})
		return
	}

	report, err := h.ingestService.IngestSource(c.Request.Context(), source, date)
	if err != nil {
		h.logger.Errorf("采集%s失败: %v", source, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  err.Error(),
			"report": report,
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

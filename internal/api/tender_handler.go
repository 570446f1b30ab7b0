package api

import (
	"net/http"
	"strconv"

	"TenderSync/internal/interfaces"
	"TenderSync/internal/model"
	"TenderSync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TenderHandler 提供给前端的招标/授标查询接口
type TenderHandler struct {
	db     *gorm.DB
	repo   interfaces.TenderRepository
	logger *logrus.Logger
}

func NewTenderHandler(db *gorm.DB, logger *logrus.Logger) *TenderHandler {
	return &TenderHandler{
		db:     db,
		repo:   repository.NewTenderRepository(db),
		logger: logger,
	}
}

// ListTenders 招标列表接口
// GET /api/tenders?status=Active&cpv=72&page=1&page_size=20
func (h *TenderHandler) ListTenders(c *gin.Context) {
	status := c.Query("status")
	cpv := c.Query("cpv")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := h.db.WithContext(c.Request.Context()).Model(&model.Tender{})
	if status != "" {
		query = query.Where("notice_status = ?", status)
	}
	if cpv != "" {
		query = query.Where("cpv_code LIKE ?", cpv+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		h.logger.WithError(err).Error("ListTenders count failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var rows []model.Tender
	if err := query.
		Order("publication_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		h.logger.WithError(err).Error("ListTenders query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"items":     rows,
	})
}

// ListVersions 同一公告的全部版本行（按版本号升序）
// GET /api/tenders/:notice_id/versions
func (h *TenderHandler) ListVersions(c *gin.Context) {
	noticeID := c.Param("notice_id")
	if noticeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notice_id is required"})
		return
	}

	rows, err := h.repo.FindByNoticeID(c.Request.Context(), noticeID)
	if err != nil {
		h.logger.WithError(err).Error("ListVersions failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notice_id": noticeID,
		"versions":  rows,
	})
}

// ListAwards 授标列表接口
// GET /api/awards?page=1&page_size=20
func (h *TenderHandler) ListAwards(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := h.db.WithContext(c.Request.Context()).Model(&model.UkAwardedTender{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		h.logger.WithError(err).Error("ListAwards count failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var rows []model.UkAwardedTender
	if err := query.
		Order("release_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		h.logger.WithError(err).Error("ListAwards query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"items":     rows,
	})
}

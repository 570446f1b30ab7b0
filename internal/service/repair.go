package service

import (
	"context"
	"fmt"

	"TenderSync/internal/identity"
	"TenderSync/internal/model"
	"TenderSync/internal/parser/eforms"
	"TenderSync/internal/status"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const repairBatchSize = 200

// RepairService 历史数据修复：利用行内保存的原始XML重推导状态与键。
// 两类修复均幂等，重复执行不会产生新的变更。
type RepairService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewRepairService(db *gorm.DB, logger *logrus.Logger) *RepairService {
	return &RepairService{db: db, logger: logger}
}

// RepairStatuses 对全表重推导公告状态，返回实际修正的行数。
// 早期入库的行可能用旧规则算过状态，从原始XML重新推导覆盖。
func (s *RepairService) RepairStatuses(ctx context.Context) (int64, error) {
	var repaired int64
	var batch []model.Tender
	err := s.db.WithContext(ctx).
		Where("raw_xml <> ''").
		FindInBatches(&batch, repairBatchSize, func(_ *gorm.DB, _ int) error {
			for _, row := range batch {
				want := string(status.ResolveRaw([]byte(row.RawXML)))
				if want == row.NoticeStatus {
					continue
				}
				res := s.db.WithContext(ctx).Model(&model.Tender{}).
					Where("id = ?", row.ID).
					Update("notice_status", want)
				if res.Error != nil {
					return fmt.Errorf("修正公告%s状态失败: %w", row.SourceID, res.Error)
				}
				repaired += res.RowsAffected
			}
			return nil
		}).Error
	if err != nil {
		return repaired, err
	}
	s.logger.Infof("状态修复完成，共修正%d行", repaired)
	return repaired, nil
}

// RepairKeys 修复缺少版本段的旧格式source_id：
// 从原始XML重新解析出版本号，重建版本化键后改写。
// 修复后的键若已被新行占用，说明同一版本已经重新采集过，旧行保持原样。
func (s *RepairService) RepairKeys(ctx context.Context) (int64, error) {
	var rows []model.Tender
	if err := s.db.WithContext(ctx).
		Where("raw_xml <> ''").
		Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("查询待修复行失败: %w", err)
	}

	var repaired int64
	for _, row := range rows {
		if !identity.IsLegacyKey(row.SourceID) {
			continue
		}
		notice, err := eforms.Parse([]byte(row.RawXML))
		if err != nil {
			s.logger.Warnf("旧行%s的原始XML无法重新解析，跳过: %v", row.SourceID, err)
			continue
		}
		noticeID, version, sourceID := identity.FromParsed(notice)
		if sourceID == row.SourceID {
			continue
		}

		var exists int64
		if err := s.db.WithContext(ctx).Model(&model.Tender{}).
			Where("source_id = ?", sourceID).
			Count(&exists).Error; err != nil {
			return repaired, fmt.Errorf("检查键%s占用失败: %w", sourceID, err)
		}
		if exists > 0 {
			s.logger.Warnf("旧行%s的修复键%s已被占用，保持原样", row.SourceID, sourceID)
			continue
		}

		res := s.db.WithContext(ctx).Model(&model.Tender{}).
			Where("id = ?", row.ID).
			Updates(map[string]interface{}{
				"source_id":      sourceID,
				"notice_id":      noticeID,
				"notice_version": version,
			})
		if res.Error != nil {
			return repaired, fmt.Errorf("改写旧键%s失败: %w", row.SourceID, res.Error)
		}
		repaired += res.RowsAffected
	}

	s.logger.Infof("键修复完成，共改写%d行", repaired)
	return repaired, nil
}

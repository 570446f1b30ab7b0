package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"TenderSync/internal/interfaces"
	"TenderSync/internal/model"
)

type TenderRepository struct {
	db *gorm.DB
}

func NewTenderRepository(db *gorm.DB) interfaces.TenderRepository {
	return &TenderRepository{db: db}
}

// Upsert 版本化公告的原子合并：唯一约束落在source_id（版本化键）上，
// 用ON CONFLICT DO NOTHING做存储层的查无则插，而非先查后写（并发采集同一天也安全）。
// 已存在的版本是"同版本重复采集"：不覆盖任何字段，单独的回填规则除外。
func (r *TenderRepository) Upsert(ctx context.Context, row *model.Tender) (model.MergeOutcome, error) {
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return "", fmt.Errorf("插入公告失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.OutcomeUnchanged, nil
	}
	return model.OutcomeInserted, nil
}

// BackfillBuyerNameEn 采购方英译名跨版本回填：同NoticeID的兄弟行中，
// buyer_name_en为空的统一补上；已有值的行绝不覆盖，其他列一概不动，不产生新行。
func (r *TenderRepository) BackfillBuyerNameEn(ctx context.Context, noticeID, nameEn string) (int64, error) {
	if noticeID == "" || nameEn == "" {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.Tender{}).
		Where("notice_id = ? AND (buyer_name_en IS NULL OR buyer_name_en = '')", noticeID).
		Update("buyer_name_en", nameEn)
	if res.Error != nil {
		return 0, fmt.Errorf("回填采购方英译名失败: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ApplyAnalysis LLM分析结果落库：只更新分析白名单列，随后触发英译名回填
func (r *TenderRepository) ApplyAnalysis(ctx context.Context, sourceID string, a *model.UnifiedTenderAnalysis) error {
	if a == nil {
		return nil
	}
	updates := map[string]interface{}{
		"title_en":            a.TitleEn,
		"executive_summary":   a.SummaryEn,
		"fatal_flaws":         model.JSONList(a.FatalFlaws),
		"hard_certifications": model.JSONList(a.HardCertifications),
		"tech_stack":          model.JSONList(a.TechStack),
	}
	if a.AccessibilityScore > 0 {
		updates["suitability_score"] = a.AccessibilityScore
	}
	if a.EligibilityProbability > 0 {
		updates["eligibility_probability"] = a.EligibilityProbability
	}

	var row model.Tender
	if err := r.db.WithContext(ctx).Where("source_id = ?", sourceID).First(&row).Error; err != nil {
		return fmt.Errorf("查询公告%s失败: %w", sourceID, err)
	}
	if err := r.db.WithContext(ctx).Model(&model.Tender{}).
		Where("source_id = ?", sourceID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("写入分析结果失败: %w", err)
	}
	if a.BuyerNameEn != "" {
		if _, err := r.BackfillBuyerNameEn(ctx, row.NoticeID, a.BuyerNameEn); err != nil {
			return err
		}
	}
	return nil
}

// FindByNoticeID 按裸公告ID查询全部版本行（notice_id非唯一索引支撑）
func (r *TenderRepository) FindByNoticeID(ctx context.Context, noticeID string) ([]model.Tender, error) {
	var rows []model.Tender
	if err := r.db.WithContext(ctx).
		Where("notice_id = ?", noticeID).
		Order("notice_version ASC, lot_id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询公告版本失败: %w", err)
	}
	return rows, nil
}

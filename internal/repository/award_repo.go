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

type AwardRepository struct {
	db *gorm.DB
}

func NewAwardRepository(db *gorm.DB) interfaces.AwardRepository {
	return &AwardRepository{db: db}
}

// awardOverwriteColumns ocid冲突时整体覆盖的列集合。
// 刻意不含created_at（首次入库时间永不变）与id/ocid。
var awardOverwriteColumns = []string{
	"release_id", "release_date",
	"title", "description", "cpv_code", "cpv_description",
	"additional_cpv_codes", "procurement_method", "procurement_method_details",
	"main_procurement_category",
	"tender_value_amount", "tender_value_currency", "suitable_sme", "suitable_vcse",
	"tender_deadline", "tender_contract_start", "tender_contract_end",
	"delivery_region", "delivery_postal_code", "delivery_country",
	"buyer_name", "buyer_street_address", "buyer_locality", "buyer_postal_code",
	"buyer_country", "buyer_contact_name", "buyer_contact_email", "buyer_contact_phone",
	"award_id", "award_status", "award_date", "award_date_published",
	"award_value_amount", "award_value_currency", "award_contract_start", "award_contract_end",
	"supplier_names", "supplier_ids", "supplier_scale",
	"notice_url", "raw_json",
}

// Upsert 授标release合并：唯一键是release的全局合同ID（ocid）。
// 冲突时全字段覆盖（created_at除外）——后到的授标release是权威全量替换，
// 这与tenders表按版本追加、永不覆盖的策略刻意不同。
func (r *AwardRepository) Upsert(ctx context.Context, row *model.UkAwardedTender) (model.MergeOutcome, error) {
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	// 先做原子的查无则插；冲突说明行已存在，转为整体覆盖更新。
	// Inserted/Updated口径由实际生效的语句决定，并发采集同一天不会误报
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ocid"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return "", fmt.Errorf("写入授标记录失败: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return model.OutcomeInserted, nil
	}

	res = r.db.WithContext(ctx).Model(&model.UkAwardedTender{}).
		Where("ocid = ?", row.Ocid).
		Select(awardOverwriteColumns).
		Updates(row)
	if res.Error != nil {
		return "", fmt.Errorf("覆盖授标记录失败: %w", res.Error)
	}
	return model.OutcomeUpdated, nil
}

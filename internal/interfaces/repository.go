package interfaces

import (
	"context"

	"TenderSync/internal/model"
)

// TenderRepository 版本化公告表的合并引擎接口
type TenderRepository interface {
	// Upsert 原子的查无则插：同版本化键已存在时不覆盖任何字段（Unchanged）
	Upsert(ctx context.Context, row *model.Tender) (model.MergeOutcome, error)
	// BackfillBuyerNameEn 跨版本回填采购方英译名：仅填充同NoticeID下为空的行
	BackfillBuyerNameEn(ctx context.Context, noticeID, nameEn string) (int64, error)
	// ApplyAnalysis 白名单更新LLM分析列，并触发英译名回填
	ApplyAnalysis(ctx context.Context, sourceID string, a *model.UnifiedTenderAnalysis) error
	// FindByNoticeID 查询同一公告的全部版本行
	FindByNoticeID(ctx context.Context, noticeID string) ([]model.Tender, error)
}

// AwardRepository 授标release表的合并引擎接口
type AwardRepository interface {
	// Upsert 以ocid为唯一键：冲突时整体覆盖（保留created_at）——
	// 后到的授标release是权威全量替换，与tenders表的追加策略刻意不同
	Upsert(ctx context.Context, row *model.UkAwardedTender) (model.MergeOutcome, error)
}

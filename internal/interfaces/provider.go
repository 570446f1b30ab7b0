package interfaces

import (
	"context"
	"time"

	"TenderSync/internal/model"
)

// NoticeProvider 所有公告数据源必须实现的核心接口
type NoticeProvider interface {
	GetName() string                                                          // 数据源名称
	FetchNotices(ctx context.Context, date time.Time) (*model.FetchResult, error) // 抓取指定发布日的全部公告并解析为中间表示
}

// AwardProvider 授标release数据源（OCDS游标分页API）
type AwardProvider interface {
	GetName() string
	FetchAwards(ctx context.Context, date time.Time) (*model.AwardFetchResult, error)
}

package model

import "time"

// RunReport 单次采集运行的统计报告（不可变值，逐文档fold累积，
// 替代循环内共享可变计数器，保证逐文档处理可安全并行化）
type RunReport struct {
	RunID      string     `json:"run_id"`      // 本次运行唯一ID
	Source     string     `json:"source"`      // 数据源名称
	TargetDate string     `json:"target_date"` // 采集目标日期（YYYY-MM-DD）
	StartedAt  time.Time  `json:"started_at"`  // 运行开始时间（UTC）
	Fetched    int        `json:"fetched"`     // 源端获取文档数
	Inserted   int        `json:"inserted"`    // 新插入行数
	Updated    int        `json:"updated"`     // 覆盖更新行数
	Unchanged  int        `json:"unchanged"`   // 已存在无操作行数
	Skipped    int        `json:"skipped"`     // 域过滤跳过数
	Errored    int        `json:"errored"`     // 逐文档错误数
	Errors     []DocError `json:"errors"`      // 逐文档错误明细
}

// WithFetched 返回累加了源端文档数的新报告
func (r RunReport) WithFetched(n int) RunReport {
	r.Fetched += n
	return r
}

// WithOutcome 返回累加了一次合并结果的新报告
func (r RunReport) WithOutcome(o MergeOutcome) RunReport {
	switch o {
	case OutcomeInserted:
		r.Inserted++
	case OutcomeUpdated:
		r.Updated++
	case OutcomeUnchanged:
		r.Unchanged++
	}
	return r
}

// WithSkip 返回累加了一次域过滤跳过的新报告
func (r RunReport) WithSkip() RunReport {
	r.Skipped++
	return r
}

// WithError 返回追加了一条文档错误的新报告
func (r RunReport) WithError(docID, message string) RunReport {
	r.Errored++
	errs := make([]DocError, len(r.Errors), len(r.Errors)+1)
	copy(errs, r.Errors)
	r.Errors = append(errs, DocError{DocID: docID, Message: message})
	return r
}

package model

// UnifiedTenderAnalysis LLM对单条招标的自然语言分析结果
// （可选增强：缺失或调用失败不影响基础记录入库）
type UnifiedTenderAnalysis struct {
	TitleEn                string   `json:"titleEn"`                // 标题英译
	SummaryEn              string   `json:"englishExecutiveSummary"`// 英文摘要（2-3句）
	BuyerNameEn            string   `json:"buyerNameEn"`            // 采购方名称英译（跨版本回填源）
	FatalFlaws             []string `json:"fatalFlaws"`             // 致命门槛（如必须德国本地办公室）
	HardCertifications     []string `json:"hardCertifications"`     // 硬性资质（BSI C5、ISO 27001等）
	TechStack              []string `json:"techStack"`              // 技术栈信号
	AccessibilityScore     float64  `json:"accessibilityScore"`     // 可达性评分0-10
	EligibilityProbability float64  `json:"eligibilityProbability"` // 合规概率0-1
}

package service

import (
	"strings"

	"TenderSync/internal/config"
	"TenderSync/internal/model"
)

// FilterService 行业域过滤与高价值判定
type FilterService struct {
	cpvPrefix string
	cfg       *config.FilterConfig
}

func NewFilterService(cfg *config.Config) *FilterService {
	return &FilterService{
		cpvPrefix: cfg.Ingest.CpvPrefix,
		cfg:       &cfg.Filter,
	}
}

// MatchesDomain CPV行业前缀过滤：主CPV或任一附加CPV命中前缀即保留。
// 未配置前缀时视为不过滤（全部保留）。
func (f *FilterService) MatchesDomain(p *model.ParsedNotice) bool {
	if f.cpvPrefix == "" {
		return true
	}
	if strings.HasPrefix(p.CpvCode, f.cpvPrefix) {
		return true
	}
	for _, c := range p.AdditionalCpvCodes {
		if strings.HasPrefix(c, f.cpvPrefix) {
			return true
		}
	}
	return false
}

// IsHighValue 高价值判定：
// 1. open程序直接放行（无资格预审，任何人可投）
// 2. 描述命中排除关键词直接否决
// 3. 金额达到阈值，或标题/描述命中高价值关键词
func (f *FilterService) IsHighValue(p *model.ParsedNotice) bool {
	if strings.Contains(strings.ToLower(p.ProcedureType), "open") {
		return true
	}
	for _, k := range f.cfg.ExclusionKeywords {
		if containsFold(p.Description, k) {
			return false
		}
	}
	if p.Financial != nil && f.cfg.HighValueThreshold > 0 && p.Financial.Amount >= f.cfg.HighValueThreshold {
		return true
	}
	for _, k := range f.cfg.HighValueKeywords {
		if containsFold(p.Title, k) || containsFold(p.Description, k) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

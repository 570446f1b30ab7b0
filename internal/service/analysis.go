package service

import (
	"context"

	"TenderSync/internal/config"
	"TenderSync/internal/interfaces"
	"TenderSync/internal/llm"
	"TenderSync/internal/model"
	"TenderSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AnalysisService LLM富化服务：对新入库的公告做双语分析并回写分析列。
// 整条链路是可选增强，任何失败只记日志，不影响基础记录。
type AnalysisService struct {
	logger *logrus.Logger
	cfg    *config.Config
	repo   interfaces.TenderRepository
	client *llm.Client
}

func NewAnalysisService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *AnalysisService {
	return &AnalysisService{
		logger: logger,
		cfg:    cfg,
		repo:   repository.NewTenderRepository(db),
		client: llm.NewClient(&cfg.OpenAI, logger),
	}
}

// Enrich 对单条公告做LLM分析并写回。LLM未启用或调用失败时降级为启发式评分，
// 保证高价值公告总有一个评分，不返回错误。
func (s *AnalysisService) Enrich(ctx context.Context, sourceID string, p *model.ParsedNotice) {
	var analysis *model.UnifiedTenderAnalysis
	if s.cfg.OpenAI.Enabled {
		var err error
		analysis, err = s.client.AnalyzeTender(ctx, p.Title+"\n\n"+p.Description)
		if err != nil {
			s.logger.Warnf("公告%s的LLM分析失败，降级为启发式评分: %v", sourceID, err)
			analysis = nil
		}
	}
	if analysis == nil {
		analysis = &model.UnifiedTenderAnalysis{
			AccessibilityScore: HeuristicScore(p),
		}
	}

	if err := s.repo.ApplyAnalysis(ctx, sourceID, analysis); err != nil {
		s.logger.Warnf("公告%s的分析结果写回失败: %v", sourceID, err)
	}
}

// HeuristicScore 在LLM不可用时的保底评分（0-10）：
// open程序+20分，金额落在10万-50万甜点区间+20分，百分制压到十分制
func HeuristicScore(p *model.ParsedNotice) float64 {
	score := 0.0
	if p.ProcedureType == "open" {
		score += 20
	}
	if p.Financial != nil && p.Financial.Amount >= 100000 && p.Financial.Amount <= 500000 {
		score += 20
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score / 10.0
}

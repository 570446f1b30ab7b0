package service

import (
	"context"
	"fmt"
	"time"

	"TenderSync/internal/config"
	"TenderSync/internal/identity"
	"TenderSync/internal/interfaces"
	"TenderSync/internal/metrics"
	"TenderSync/internal/model"
	"TenderSync/internal/parser/ocds"
	"TenderSync/internal/provider/germany"
	"TenderSync/internal/provider/uk"
	"TenderSync/internal/repository"
	"TenderSync/internal/status"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type IngestService struct {
	db         *gorm.DB
	logger     *logrus.Logger
	cfg        *config.Config
	tenderRepo interfaces.TenderRepository
	awardRepo  interfaces.AwardRepository
	filter     *FilterService
	analysis   *AnalysisService
	// 数据源工厂：新增数据源仅需添加此处
	noticeFactory map[string]func(srcCfg *config.SourceConfig, logger *logrus.Logger) interfaces.NoticeProvider
	awardFactory  map[string]func(srcCfg *config.SourceConfig, logger *logrus.Logger) interfaces.AwardProvider
}

func NewIngestService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *IngestService {
	return &IngestService{
		db:         db,
		logger:     logger,
		cfg:        cfg,
		tenderRepo: repository.NewTenderRepository(db),
		awardRepo:  repository.NewAwardRepository(db),
		filter:     NewFilterService(cfg),
		analysis:   NewAnalysisService(db, logger, cfg),
		noticeFactory: map[string]func(srcCfg *config.SourceConfig, logger *logrus.Logger) interfaces.NoticeProvider{
			"germany": germany.NewGermanyProvider,
		},
		awardFactory: map[string]func(srcCfg *config.SourceConfig, logger *logrus.Logger) interfaces.AwardProvider{
			"uk": uk.NewUKProvider,
		},
	}
}

// IngestSource 通用采集入口（按数据源名分发），返回本次运行的完整报告。
// 逐文档错误只累积到报告；入库层错误视为环境故障，立即中止整个运行。
func (s *IngestService) IngestSource(ctx context.Context, source string, date time.Time) (model.RunReport, error) {
	report := model.RunReport{
		RunID:      uuid.New().String(),
		Source:     source,
		TargetDate: date.Format("2006-01-02"),
		StartedAt:  time.Now().UTC(),
	}

	srcCfg, ok := s.cfg.Sources[source]
	if !ok {
		return report, fmt.Errorf("未获取到数据源配置: %s", source)
	}

	timer := time.Now()
	defer func() {
		metrics.RunDuration.WithLabelValues(source).Observe(time.Since(timer).Seconds())
	}()

	if build, ok := s.noticeFactory[source]; ok {
		return s.ingestNotices(ctx, build(&srcCfg, s.logger), date, report)
	}
	if build, ok := s.awardFactory[source]; ok {
		return s.ingestAwards(ctx, build(&srcCfg, s.logger), date, report)
	}
	return report, fmt.Errorf("未支持的数据源: %s", source)
}

// ingestNotices 公告流水线：抓取→域过滤→状态推导→版本化键→查无则插→可选富化
func (s *IngestService) ingestNotices(ctx context.Context, p interfaces.NoticeProvider, date time.Time, report model.RunReport) (model.RunReport, error) {
	result, err := p.FetchNotices(ctx, date)
	if err != nil {
		return report, fmt.Errorf("%s抓取公告失败: %w", p.GetName(), err)
	}

	report = report.WithFetched(result.Fetched)
	metrics.NoticesFetched.WithLabelValues(p.GetName()).Add(float64(result.Fetched))
	for _, e := range result.Errors {
		report = report.WithError(e.DocID, e.Message)
		metrics.DocErrors.WithLabelValues(p.GetName()).Inc()
	}

	for _, notice := range result.Notices {
		// 1. 行业域过滤
		if !s.filter.MatchesDomain(notice) {
			report = report.WithSkip()
			metrics.NoticesSkipped.WithLabelValues(p.GetName()).Inc()
			continue
		}

		// 2. 状态推导+版本化键
		st := status.Resolve(notice.StatusHint.Kind, notice.StatusHint.HasChangeMarker)
		noticeID, version, sourceID := identity.FromParsed(notice)
		row := toTenderRow(notice, noticeID, version, sourceID, st)

		// 3. 查无则插（同键重复时Unchanged，逐字段不覆盖）
		outcome, err := s.tenderRepo.Upsert(ctx, row)
		if err != nil {
			return report, fmt.Errorf("公告%s入库失败: %w", sourceID, err)
		}
		report = report.WithOutcome(outcome)
		metrics.MergeOutcomes.WithLabelValues(p.GetName(), string(outcome)).Inc()

		// 4. 新行且通过高价值闸门才值得富化；重复行已有分析列
		if outcome == model.OutcomeInserted && s.filter.IsHighValue(notice) {
			s.analysis.Enrich(ctx, sourceID, notice)
		}
	}

	s.logger.Infof("%s采集完成: 获取%d, 新增%d, 重复%d, 跳过%d, 错误%d",
		p.GetName(), report.Fetched, report.Inserted, report.Unchanged, report.Skipped, report.Errored)
	return report, nil
}

// ingestAwards 授标流水线：OCDS翻页抓取→域过滤→按ocid整体覆盖合并
func (s *IngestService) ingestAwards(ctx context.Context, p interfaces.AwardProvider, date time.Time, report model.RunReport) (model.RunReport, error) {
	result, err := p.FetchAwards(ctx, date)
	if err != nil {
		return report, fmt.Errorf("%s抓取授标失败: %w", p.GetName(), err)
	}

	report = report.WithFetched(result.Fetched)
	metrics.NoticesFetched.WithLabelValues(p.GetName()).Add(float64(result.Fetched))
	for _, e := range result.Errors {
		report = report.WithError(e.DocID, e.Message)
		metrics.DocErrors.WithLabelValues(p.GetName()).Inc()
	}

	for _, award := range result.Awards {
		// 1. 行业域过滤：回到统一中间表示，与公告流水线用同一把尺子
		notice, err := ocds.Parse([]byte(award.RawJSON))
		if err != nil {
			report = report.WithError(award.Ocid, err.Error())
			metrics.DocErrors.WithLabelValues(p.GetName()).Inc()
			continue
		}
		if !s.filter.MatchesDomain(notice) {
			report = report.WithSkip()
			metrics.NoticesSkipped.WithLabelValues(p.GetName()).Inc()
			continue
		}

		// 2. 合并落库
		outcome, err := s.awardRepo.Upsert(ctx, award)
		if err != nil {
			return report, fmt.Errorf("授标%s入库失败: %w", award.Ocid, err)
		}
		report = report.WithOutcome(outcome)
		metrics.MergeOutcomes.WithLabelValues(p.GetName(), string(outcome)).Inc()
	}

	s.logger.Infof("%s采集完成: 获取%d, 新增%d, 覆盖%d, 跳过%d, 错误%d",
		p.GetName(), report.Fetched, report.Inserted, report.Updated, report.Skipped, report.Errored)
	return report, nil
}

// toTenderRow 中间表示→数据库行的字段映射
func toTenderRow(p *model.ParsedNotice, noticeID, version, sourceID string, st model.NoticeStatus) *model.Tender {
	row := &model.Tender{
		SourceID:      sourceID,
		NoticeID:      noticeID,
		NoticeVersion: version,
		LotID:         p.LotID,
		NoticeType:    p.NoticeTypeCode,
		NoticeStatus:  string(st),

		TitleDe:       p.Title,
		DescriptionDe: p.Description,

		BuyerName:         p.Buyer.Name,
		BuyerWebsite:      p.Buyer.Website,
		BuyerContactEmail: p.Buyer.Email,
		BuyerContactPhone: p.Buyer.Phone,
		BuyerCity:         p.Buyer.City,
		BuyerCountry:      p.Buyer.Country,

		CpvCode:            p.CpvCode,
		AdditionalCpvCodes: model.JSONList(p.AdditionalCpvCodes),
		NutsCode:           p.NutsCode,
		ContractNature:     p.ContractNature,
		ProcedureType:      p.ProcedureType,

		PublicationDate:    p.PublicationDate,
		SubmissionDeadline: p.SubmissionDeadline,
		ContractStartDate:  p.ContractStartDate,
		ContractEndDate:    p.ContractEndDate,

		BuyerPortalURL: p.PortalURL,
		RawXML:         p.RawPayload,
		CreatedAt:      time.Now().UTC(),
	}
	if p.Financial != nil {
		amount := p.Financial.Amount
		row.ValueEuro = &amount
		row.Currency = p.Financial.Currency
	}
	return row
}

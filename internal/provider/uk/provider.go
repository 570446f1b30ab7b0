package uk

import (
	"TenderSync/internal/config"
	"TenderSync/internal/interfaces"
	"TenderSync/internal/model"
	"TenderSync/internal/parser/ocds"
	"TenderSync/internal/utils/httpclient"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultPageSize = 100

type Provider struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewUKProvider(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.AwardProvider {
	return &Provider{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现AwardProvider接口 ==========
func (p *Provider) GetName() string {
	return "uk"
}

// FetchAwards 按发布日拉取OCDS授标release，沿links.next翻页直到尾页
func (p *Provider) FetchAwards(ctx context.Context, date time.Time) (*model.AwardFetchResult, error) {
	pageSize := p.cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	// 1. 构建首页URL：限定发布日窗口，只要award阶段
	q := url.Values{}
	q.Set("publishedFrom", date.Format("2006-01-02T00:00:00"))
	q.Set("publishedTo", date.Format("2006-01-02T23:59:59"))
	q.Set("stages", "award")
	q.Set("limit", fmt.Sprintf("%d", pageSize))
	pageURL := fmt.Sprintf("%s?%s", p.cfg.BaseURL, q.Encode())

	result := &model.AwardFetchResult{}
	// seen防御门户翻页游标不前进：同一URL第二次出现即终止
	seen := map[string]bool{}
	for pageURL != "" {
		if seen[pageURL] {
			p.logger.Warnf("OCDS分页出现重复URL，终止翻页: %s", pageURL)
			break
		}
		seen[pageURL] = true

		page, err := p.fetchPage(ctx, pageURL)
		if err != nil {
			// 首页失败整批失败；后续页失败保留已收集的release，放弃余下翻页
			if len(result.Awards) == 0 && result.Fetched == 0 {
				return nil, err
			}
			p.logger.Warnf("OCDS翻页中断，保留已收集release: %v", err)
			result.Errors = append(result.Errors, model.DocError{DocID: pageURL, Message: err.Error()})
			break
		}

		// 2. 逐条release解析，单条失败只记录不中断
		for _, raw := range page.Releases {
			result.Fetched++
			award, err := ocds.ParseAward(raw)
			if err != nil {
				result.Errors = append(result.Errors, model.DocError{DocID: releaseDocID(raw), Message: err.Error()})
				continue
			}
			result.Awards = append(result.Awards, award)
		}

		// 3. 尾页判定：无next或本页为空
		if len(page.Releases) == 0 {
			break
		}
		pageURL = page.Links.Next
	}

	p.logger.Infof("英国授标拉取完成: release%d条, 成功%d条, 失败%d条",
		result.Fetched, len(result.Awards), len(result.Errors))
	return result, nil
}

func (p *Provider) fetchPage(ctx context.Context, pageURL string) (*model.OCDSPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构建OCDS请求失败: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("拉取OCDS页面失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			p.logger.Errorf("关闭OCDS响应体失败: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("拉取OCDS页面失败: 状态码%d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取OCDS页面失败: %w", err)
	}
	var page model.OCDSPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("解析OCDS页面失败: %w", err)
	}
	return &page, nil
}

// releaseDocID 尽力从原始release里取ocid做错误定位，取不到用占位符
func releaseDocID(raw json.RawMessage) string {
	var probe struct {
		Ocid string `json:"ocid"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Ocid != "" {
		return probe.Ocid
	}
	return "(unknown-release)"
}

package germany

import (
	"TenderSync/internal/config"
	"TenderSync/internal/interfaces"
	"TenderSync/internal/model"
	"TenderSync/internal/parser/eforms"
	"TenderSync/internal/utils/httpclient"
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// 德国采购门户的每日导出包内，正式公告文件名是GUID.xml，
// 其余条目（清单、签名文件等）一律跳过。
var guidXMLRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\.xml$`)

type Provider struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewGermanyProvider(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.NoticeProvider {
	return &Provider{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现NoticeProvider接口 ==========
func (p *Provider) GetName() string {
	return "germany"
}

// FetchNotices 下载指定发布日的eForms每日包并逐条解析
func (p *Provider) FetchNotices(ctx context.Context, date time.Time) (*model.FetchResult, error) {
	// 1. 下载当日ZIP包
	dayURL := fmt.Sprintf("%s?pubDay=%s&format=eforms.zip", p.cfg.BaseURL, date.Format("2006-01-02"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dayURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构建德国公告请求失败: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("下载德国公告包失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			p.logger.Errorf("关闭德国公告响应体失败: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("下载德国公告包失败: 状态码%d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取德国公告包失败: %w", err)
	}

	// 2. 打开ZIP并逐条解析，单条失败只记录不中断
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("解析德国公告包失败: %w", err)
	}

	result := &model.FetchResult{}
	for _, f := range zr.File {
		name := f.Name
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
		if !guidXMLRe.MatchString(name) {
			continue
		}
		result.Fetched++

		raw, err := readZipEntry(f)
		if err != nil {
			result.Errors = append(result.Errors, model.DocError{DocID: name, Message: err.Error()})
			continue
		}
		notice, err := eforms.Parse(raw)
		if err != nil {
			result.Errors = append(result.Errors, model.DocError{DocID: name, Message: err.Error()})
			continue
		}
		result.Notices = append(result.Notices, notice)
	}

	p.logger.Infof("德国公告包解析完成: 文件%d条, 成功%d条, 失败%d条",
		result.Fetched, len(result.Notices), len(result.Errors))
	return result, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("打开包内文件失败: %w", err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("读取包内文件失败: %w", err)
	}
	return raw, nil
}

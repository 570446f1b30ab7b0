package germany

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"TenderSync/internal/config"
)

func noticeXML(id string) string {
	return `<ContractNotice xmlns="urn:oasis:names:specification:ubl:schema:xsd:ContractNotice-2"
  xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>` + id + `</cbc:ID>
  <cbc:IssueDate>2026-03-05</cbc:IssueDate>
</ContractNotice>`
}

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("创建zip条目失败: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("写zip条目失败: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("关闭zip失败: %v", err)
	}
	return buf.Bytes()
}

func TestFetchNotices(t *testing.T) {
	payload := buildZip(t, map[string]string{
		// 正式公告：GUID文件名
		"11111111-2222-3333-4444-555555555555.xml": noticeXML("N-1"),
		"aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee.xml": noticeXML("N-2"),
		// 畸形公告：进错误清单，不中断批次
		"99999999-8888-7777-6666-555555555555.xml": "<broken",
		// 清单/签名等非GUID条目：直接跳过，不计入fetched
		"manifest.txt":      "ignore me",
		"export-index.xml":  "<index/>",
		"sub/checksums.sha": "x",
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pubDay"); got != "2026-03-05" {
			t.Errorf("pubDay: got=%q", got)
		}
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	cfg := &config.SourceConfig{BaseURL: srv.URL, Timeout: 5}
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	p := NewGermanyProvider(cfg, logger)

	result, err := p.FetchNotices(context.Background(), time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FetchNotices: %v", err)
	}
	if result.Fetched != 3 {
		t.Fatalf("Fetched: want=3 got=%d", result.Fetched)
	}
	if len(result.Notices) != 2 {
		t.Fatalf("Notices: want=2 got=%d", len(result.Notices))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors: want=1 got=%d", len(result.Errors))
	}
	ids := map[string]bool{}
	for _, n := range result.Notices {
		ids[n.SourceNoticeID] = true
	}
	if !ids["N-1"] || !ids["N-2"] {
		t.Fatalf("解析出的公告ID: %v", ids)
	}
}

func TestFetchNoticesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := &config.SourceConfig{BaseURL: srv.URL, Timeout: 5}
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	if _, err := NewGermanyProvider(cfg, logger).FetchNotices(context.Background(), time.Now()); err == nil {
		t.Fatal("404应向上返回error")
	}
}

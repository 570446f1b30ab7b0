package uk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"TenderSync/internal/config"
)

func release(ocid string) map[string]interface{} {
	return map[string]interface{}{
		"ocid": ocid,
		"id":   ocid + "-rel",
		"date": "2026-02-01T09:30:00Z",
		"tender": map[string]interface{}{
			"title": "Tender " + ocid,
		},
	}
}

func writePage(w http.ResponseWriter, next string, releases ...map[string]interface{}) {
	page := map[string]interface{}{
		"releases": releases,
		"links":    map[string]string{"next": next},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(page)
}

func newProvider(baseURL string) *Provider {
	cfg := &config.SourceConfig{BaseURL: baseURL, Timeout: 5, PageSize: 10}
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewUKProvider(cfg, logger).(*Provider)
}

func TestFetchAwardsFollowsPagination(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "2":
			writePage(w, "", release("ocds-2"))
		default:
			// 首页校验查询参数后给出next
			q := r.URL.Query()
			if q.Get("stages") != "award" || q.Get("limit") != "10" {
				t.Errorf("首页查询参数缺失: %s", r.URL.RawQuery)
			}
			writePage(w, srv.URL+"/?page=2", release("ocds-1"))
		}
	}))
	defer srv.Close()

	result, err := newProvider(srv.URL).FetchAwards(context.Background(), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FetchAwards: %v", err)
	}
	if result.Fetched != 2 || len(result.Awards) != 2 {
		t.Fatalf("翻页结果: fetched=%d awards=%d", result.Fetched, len(result.Awards))
	}
	if result.Awards[0].Ocid != "ocds-1" || result.Awards[1].Ocid != "ocds-2" {
		t.Fatalf("顺序: got=%q,%q", result.Awards[0].Ocid, result.Awards[1].Ocid)
	}
}

func TestFetchAwardsRepeatedNextTerminates(t *testing.T) {
	// 门户游标不前进：next反复指向同一URL，必须有限步终止
	var srv *httptest.Server
	calls := 0
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writePage(w, srv.URL+"/?page=stuck", release(fmt.Sprintf("ocds-%d", calls)))
	}))
	defer srv.Close()

	result, err := newProvider(srv.URL).FetchAwards(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("FetchAwards: %v", err)
	}
	// 首页+卡住页各访问一次，第三次命中seen守卫
	if calls != 2 {
		t.Fatalf("请求次数: want=2 got=%d", calls)
	}
	if len(result.Awards) != 2 {
		t.Fatalf("结果条数: got=%d", len(result.Awards))
	}
}

func TestFetchAwardsEmptyPageTerminates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePage(w, "http://never-followed.example/next")
	}))
	defer srv.Close()

	result, err := newProvider(srv.URL).FetchAwards(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("FetchAwards: %v", err)
	}
	if result.Fetched != 0 || len(result.Awards) != 0 {
		t.Fatalf("空页应终止: fetched=%d", result.Fetched)
	}
}

func TestFetchAwardsBadDocCollected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 一条缺ocid，一条正常：畸形条目进错误清单，批次不中断
		writePage(w, "", map[string]interface{}{"id": "no-ocid"}, release("ocds-ok"))
	}))
	defer srv.Close()

	result, err := newProvider(srv.URL).FetchAwards(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("FetchAwards: %v", err)
	}
	if result.Fetched != 2 || len(result.Awards) != 1 || len(result.Errors) != 1 {
		t.Fatalf("错误收集: fetched=%d awards=%d errors=%d", result.Fetched, len(result.Awards), len(result.Errors))
	}
}

func TestFetchAwardsMidRunFailureKeepsCollected(t *testing.T) {
	// 翻页中途失败：首页已收集的release保留，余下页放弃
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writePage(w, srv.URL+"/?page=2", release("ocds-1"))
	}))
	defer srv.Close()

	result, err := newProvider(srv.URL).FetchAwards(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("FetchAwards: %v", err)
	}
	if len(result.Awards) != 1 || result.Awards[0].Ocid != "ocds-1" {
		t.Fatalf("已收集release丢失: awards=%d", len(result.Awards))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("翻页失败应进错误清单: errors=%d", len(result.Errors))
	}
}

func TestFetchAwardsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := newProvider(srv.URL).FetchAwards(context.Background(), time.Now()); err == nil {
		t.Fatal("网关错误应向上返回error")
	}
}

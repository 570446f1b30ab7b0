package service

import (
	"testing"

	"TenderSync/internal/config"
	"TenderSync/internal/model"
)

func newFilter() *FilterService {
	return NewFilterService(&config.Config{
		Ingest: config.IngestConfig{CpvPrefix: "72"},
		Filter: config.FilterConfig{
			HighValueThreshold: 250000,
			ExclusionKeywords:  []string{"Druckerpatronen"},
			HighValueKeywords:  []string{"Cloud", "Sicherheit"},
		},
	})
}

func TestMatchesDomain(t *testing.T) {
	f := newFilter()

	if !f.MatchesDomain(&model.ParsedNotice{CpvCode: "72000000"}) {
		t.Fatal("主CPV命中前缀应保留")
	}
	if !f.MatchesDomain(&model.ParsedNotice{CpvCode: "45000000", AdditionalCpvCodes: []string{"72500000"}}) {
		t.Fatal("附加CPV命中前缀应保留")
	}
	if f.MatchesDomain(&model.ParsedNotice{CpvCode: "45000000"}) {
		t.Fatal("建筑类CPV应过滤")
	}

	// 未配置前缀即不过滤
	open := NewFilterService(&config.Config{})
	if !open.MatchesDomain(&model.ParsedNotice{CpvCode: "45000000"}) {
		t.Fatal("无前缀配置应全部保留")
	}
}

func TestIsHighValue(t *testing.T) {
	f := newFilter()

	// open程序无条件放行
	if !f.IsHighValue(&model.ParsedNotice{ProcedureType: "open"}) {
		t.Fatal("open程序应放行")
	}

	// 排除关键词一票否决
	if f.IsHighValue(&model.ParsedNotice{Description: "Lieferung von Druckerpatronen und Cloud"}) {
		t.Fatal("排除关键词应否决")
	}

	// 金额达到阈值
	if !f.IsHighValue(&model.ParsedNotice{Financial: &model.Financial{Amount: 300000}}) {
		t.Fatal("高金额应放行")
	}

	// 关键词命中（大小写不敏感）
	if !f.IsHighValue(&model.ParsedNotice{Title: "IT-SICHERHEIT Rahmenvertrag"}) {
		t.Fatal("关键词应放行")
	}

	if f.IsHighValue(&model.ParsedNotice{Title: "Gebäudereinigung", Description: "Reinigung"}) {
		t.Fatal("无信号应拒绝")
	}
}

func TestHeuristicScore(t *testing.T) {
	if got := HeuristicScore(&model.ParsedNotice{ProcedureType: "open", Financial: &model.Financial{Amount: 200000}}); got != 4.0 {
		t.Fatalf("双命中: want=4.0 got=%v", got)
	}
	if got := HeuristicScore(&model.ParsedNotice{ProcedureType: "restricted"}); got != 0 {
		t.Fatalf("无命中: want=0 got=%v", got)
	}
}

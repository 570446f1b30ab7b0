// Package status 从公告的结构信号推导生命周期状态。
package status

import (
	"bytes"
	"encoding/xml"
	"io"

	"TenderSync/internal/model"
)

// Resolve 纯函数状态推导，对NoticeKind穷尽匹配：
// 授标公告种类 ⇒ Awarded；否则带变更标记 ⇒ Amendment；否则 Active。
func Resolve(kind model.NoticeKind, hasChangeMarker bool) model.NoticeStatus {
	switch kind {
	case model.KindContractAwardNotice:
		return model.StatusAwarded
	case model.KindContractNotice, model.KindUnknown:
		if hasChangeMarker {
			return model.StatusAmendment
		}
		return model.StatusActive
	}
	return model.StatusActive
}

// ResolveRaw 直接对已存储的原始XML重推导状态，供修复作业在不做完整
// 重解析的前提下回填历史行。全函数：任何畸形输入都映射到Active，永不报错。
// 只做一遍token扫描：首个起始元素定根种类，其后扫描变更标记。
func ResolveRaw(raw []byte) model.NoticeStatus {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	kind := model.KindUnknown
	hasChangeMarker := false
	seenRoot := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 畸形输入：用已扫到的信号收尾，不向上抛错
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !seenRoot {
			seenRoot = true
			switch start.Name.Local {
			case "ContractAwardNotice":
				kind = model.KindContractAwardNotice
			case "ContractNotice":
				kind = model.KindContractNotice
			}
			continue
		}
		// 限定名与历史无前缀写法都按局部名命中
		if start.Name.Local == "ChangedNoticeIdentifier" {
			hasChangeMarker = true
		}
		if kind == model.KindContractAwardNotice {
			// 授标状态已定，无需继续扫描
			break
		}
		if hasChangeMarker {
			break
		}
	}

	return Resolve(kind, hasChangeMarker)
}

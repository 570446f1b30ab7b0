package eforms

import (
	"fmt"
	"strings"
	"time"

	"TenderSync/internal/model"
	"TenderSync/internal/normalize"
	"TenderSync/internal/parser"
)

// Parse 将一份eForms XML公告解析为统一中间表示。
// 纯函数，无共享状态，可跨文档并行调用。
// 单文档畸形只影响自身：返回error由调用方记入批次报告，不中断批次。
func Parse(raw []byte) (*model.ParsedNotice, error) {
	root, err := decodeTree(raw)
	if err != nil {
		return nil, fmt.Errorf("XML解码失败: %w", err)
	}
	ns := buildNSTable(root.attrs)

	// 身份字段：根级cbc:ID（GUID）必填，缺失即丢弃该文档
	noticeID := root.childText(ns.CBC, "ID")
	if noticeID == "" {
		return nil, parser.ErrMissingIdentity
	}

	version := root.childText(ns.CBC, "VersionID")
	if version == "" {
		version = model.DefaultVersion
	}

	// 同名元素会出现在过程级与标段级两个深度：
	// 过程级字段只认根的直接子ProcurementProject，标段级字段只认首个Lot
	proc := root.child(ns.CAC, "ProcurementProject")
	lot := root.child(ns.CAC, "ProcurementProjectLot")

	lotID := model.DefaultLotID
	if lot != nil {
		if id := lot.childText(ns.CBC, "ID"); id != "" {
			lotID = id
		}
	}

	p := &model.ParsedNotice{
		SourceNoticeID: noticeID,
		LotID:          lotID,
		VersionToken:   version,
		NoticeTypeCode: root.childText(ns.CBC, "NoticeTypeCode"),
		Title:          "Untitled",
		RawPayload:     string(raw),
		StatusHint: model.StatusHint{
			Kind:            rootKind(root),
			HasChangeMarker: hasChangeMarker(root, ns),
		},
	}

	// 发布日期：解析失败回退为采集时间，保证排序字段非空（唯一允许的缺省回填）
	pub, ok := normalize.ToUTCDateTime(root.childText(ns.CBC, "IssueDate"), root.childText(ns.CBC, "IssueTime"))
	if !ok {
		pub = time.Now().UTC()
	}
	p.PublicationDate = pub

	if proc != nil {
		if t := proc.childText(ns.CBC, "Name"); t != "" {
			p.Title = t
		}
		p.Description = proc.childText(ns.CBC, "Description")
		p.ContractNature = proc.childText(ns.CBC, "ProcurementTypeCode")
		if n := proc.descendant(ns.CBC, "CountrySubentityCode"); n != nil {
			p.NutsCode = strings.TrimSpace(n.text)
		}
		p.CpvCode, p.AdditionalCpvCodes = extractClassifications(proc, ns)
	}

	// 采购程序类型：只取过程级TenderingProcess，标段级的同名元素含义不同
	if tp := root.child(ns.CAC, "TenderingProcess"); tp != nil {
		p.ProcedureType = tp.childText(ns.CBC, "ProcedureCode")
	}

	p.Financial = extractFinancial(root, ns)
	p.Buyer = extractBuyer(root, ns)

	if lot != nil {
		extractLotFields(lot, ns, p)
	}
	if p.PortalURL == "" {
		// 门户链接兜底：采购方官网
		p.PortalURL = normalize.CanonicalURL(p.Buyer.Website)
	}

	return p, nil
}

// rootKind 根元素种类判定：局部名+命名空间（历史文档允许无命名空间）
func rootKind(root *node) model.NoticeKind {
	switch root.name.Local {
	case "ContractNotice":
		if root.name.Space == nsContractNotice || root.name.Space == "" {
			return model.KindContractNotice
		}
	case "ContractAwardNotice":
		if root.name.Space == nsContractAwardNotice || root.name.Space == "" {
			return model.KindContractAwardNotice
		}
	}
	return model.KindUnknown
}

// hasChangeMarker 检测变更公告标记：efac/efbc限定名与历史无前缀写法都要认
func hasChangeMarker(root *node, ns nsTable) bool {
	return root.descendant(ns.EFAC, "ChangedNoticeIdentifier") != nil ||
		root.descendant(ns.EFBC, "ChangedNoticeIdentifier") != nil
}

// extractClassifications 过程级CPV分类：listName=cpv的首个为主分类，其余为附加
func extractClassifications(proc *node, ns nsTable) (string, []string) {
	var primary string
	var additional []string
	for _, c := range proc.descendants(ns.CBC, "ItemClassificationCode") {
		code := strings.TrimSpace(c.text)
		if code == "" {
			continue
		}
		if list := c.attr("listName"); list != "" && !strings.EqualFold(list, "cpv") {
			continue
		}
		if primary == "" {
			primary = code
		} else if code != primary {
			additional = append(additional, code)
		}
	}
	return primary, additional
}

// extractFinancial 金额提取：按字段优先级回退。
// 预估总金额优先，但低于可信阈值（近零的占位值）时放弃；
// 回退到框架协议上限金额；两者都无效则整体缺失，绝不传播0值。
func extractFinancial(root *node, ns nsTable) *model.Financial {
	if n := root.descendant(ns.CBC, "EstimatedOverallContractAmount"); n != nil {
		if v, ok := normalize.ParseAmount(n.text); ok && v > normalize.MinPlausibleAmount {
			return &model.Financial{Amount: v, Currency: n.attr("currencyID")}
		}
	}
	if n := root.descendant(ns.CBC, "FrameworkMaximumAmount"); n != nil {
		if v, ok := normalize.ParseAmount(n.text); ok {
			return &model.Financial{Amount: v, Currency: n.attr("currencyID")}
		}
	}
	return nil
}

// extractBuyer 采购方解析：ContractingParty里只有组织引用ID，
// 实体信息要到UBL扩展里的efac:Organizations侧表按ID解析；
// 引用缺失或未命中时回退到侧表首个组织。各字段相互独立可缺失。
func extractBuyer(root *node, ns nsTable) model.BuyerInfo {
	var ref string
	if cp := root.child(ns.CAC, "ContractingParty"); cp != nil {
		if pi := cp.descendant(ns.CAC, "PartyIdentification"); pi != nil {
			ref = pi.childText(ns.CBC, "ID")
		}
	}

	var matched, first *node
	for _, org := range root.descendants(ns.EFAC, "Organization") {
		company := org.child(ns.EFAC, "Company")
		if company == nil {
			continue
		}
		if first == nil {
			first = company
		}
		if ref != "" {
			if pi := company.descendant(ns.CAC, "PartyIdentification"); pi != nil &&
				pi.childText(ns.CBC, "ID") == ref {
				matched = company
				break
			}
		}
	}
	company := matched
	if company == nil {
		company = first
	}
	if company == nil {
		return model.BuyerInfo{}
	}

	b := model.BuyerInfo{
		Website: company.childText(ns.CBC, "WebsiteURI"),
	}
	if pn := company.child(ns.CAC, "PartyName"); pn != nil {
		b.Name = pn.childText(ns.CBC, "Name")
	}
	if contact := company.child(ns.CAC, "Contact"); contact != nil {
		b.Email = contact.childText(ns.CBC, "ElectronicMail")
		b.Phone = contact.childText(ns.CBC, "Telephone")
	}
	if addr := company.child(ns.CAC, "PostalAddress"); addr != nil {
		b.City = addr.childText(ns.CBC, "CityName")
		if country := addr.child(ns.CAC, "Country"); country != nil {
			b.Country = country.childText(ns.CBC, "IdentificationCode")
		}
	}
	return b
}

// extractLotFields 标段级字段：投标截止、计划合同期、招标文件门户链接，
// 一律取首个标段内的出现，不与过程级同名元素混淆
func extractLotFields(lot *node, ns nsTable, p *model.ParsedNotice) {
	if tp := lot.child(ns.CAC, "TenderingProcess"); tp != nil {
		if period := tp.child(ns.CAC, "TenderSubmissionDeadlinePeriod"); period != nil {
			if t, ok := normalize.ToUTCDateTime(
				period.childText(ns.CBC, "EndDate"),
				period.childText(ns.CBC, "EndTime"),
			); ok {
				p.SubmissionDeadline = &t
			}
		}
	}
	if lp := lot.child(ns.CAC, "ProcurementProject"); lp != nil {
		if period := lp.child(ns.CAC, "PlannedPeriod"); period != nil {
			if t, ok := normalize.ToUTC(period.childText(ns.CBC, "StartDate")); ok {
				p.ContractStartDate = &t
			}
			if t, ok := normalize.ToUTC(period.childText(ns.CBC, "EndDate")); ok {
				p.ContractEndDate = &t
			}
		}
	}
	if terms := lot.child(ns.CAC, "TenderingTerms"); terms != nil {
		if ref := terms.child(ns.CAC, "CallForTendersDocumentReference"); ref != nil {
			if uri := ref.descendant(ns.CBC, "URI"); uri != nil {
				p.PortalURL = normalize.CanonicalURL(uri.text)
			}
		}
	}
}

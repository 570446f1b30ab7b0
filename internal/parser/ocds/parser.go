package ocds

import (
	"encoding/json"
	"fmt"
	"time"

	"TenderSync/internal/model"
	"TenderSync/internal/normalize"
	"TenderSync/internal/parser"
)

// Parse 将一条OCDS release解析为统一中间表示。
// ocid缺失即丢弃该条，批次继续；其余字段缺失均视为"字段不存在"。
func Parse(raw []byte) (*model.ParsedNotice, error) {
	rel, err := decode(raw)
	if err != nil {
		return nil, err
	}

	p := &model.ParsedNotice{
		SourceNoticeID: rel.Ocid,
		LotID:          model.DefaultLotID, // OCDS release无标段概念，使用哨兵值
		VersionToken:   model.DefaultVersion,
		Title:          "Untitled",
		RawPayload:     string(raw),
		StatusHint: model.StatusHint{
			// 授标release来源：按授标公告处理
			Kind: model.KindContractAwardNotice,
		},
	}

	pub, ok := normalize.ToUTC(rel.Date)
	if !ok {
		pub = time.Now().UTC()
	}
	p.PublicationDate = pub

	if t := rel.Tender; t != nil {
		if t.Title != "" {
			p.Title = t.Title
		}
		p.Description = t.Description
		if t.Classification != nil {
			p.CpvCode = t.Classification.ID
		}
		for _, c := range t.AdditionalClassifications {
			if c.ID != "" {
				p.AdditionalCpvCodes = append(p.AdditionalCpvCodes, c.ID)
			}
		}
		p.ProcedureType = t.ProcurementMethod
		p.ContractNature = t.MainProcurementCategory
		if t.Value != nil && t.Value.Amount != nil && *t.Value.Amount > 0 {
			p.Financial = &model.Financial{Amount: *t.Value.Amount, Currency: t.Value.Currency}
		}
		if t.TenderPeriod != nil {
			if d, ok := normalize.ToUTC(t.TenderPeriod.EndDate); ok {
				p.SubmissionDeadline = &d
			}
		}
		if t.ContractPeriod != nil {
			if d, ok := normalize.ToUTC(t.ContractPeriod.StartDate); ok {
				p.ContractStartDate = &d
			}
			if d, ok := normalize.ToUTC(t.ContractPeriod.EndDate); ok {
				p.ContractEndDate = &d
			}
		}
	}

	if buyer := resolveBuyer(rel); buyer != nil {
		p.Buyer.Name = buyer.Name
		if buyer.Address != nil {
			p.Buyer.City = buyer.Address.Locality
			p.Buyer.Country = buyer.Address.CountryName
		}
		if buyer.ContactPoint != nil {
			p.Buyer.Email = buyer.ContactPoint.Email
			p.Buyer.Phone = buyer.ContactPoint.Telephone
		}
	}

	return p, nil
}

// ParseAward 将一条授标release解析为持久化行（uk_awarded_tenders投影）
func ParseAward(raw []byte) (*model.UkAwardedTender, error) {
	rel, err := decode(raw)
	if err != nil {
		return nil, err
	}

	row := &model.UkAwardedTender{
		Ocid:        rel.Ocid,
		ReleaseID:   rel.ID,
		ReleaseDate: utcPtr(rel.Date),
		RawJSON:     string(raw),
	}

	if t := rel.Tender; t != nil {
		row.Title = t.Title
		row.Description = t.Description
		if t.Classification != nil {
			row.CpvCode = t.Classification.ID
			row.CpvDescription = t.Classification.Description
		}
		row.AdditionalCpvCodes = model.JSONList(classificationIDs(t.AdditionalClassifications))
		row.ProcurementMethod = t.ProcurementMethod
		row.ProcurementMethodDetails = t.ProcurementMethodDetails
		row.MainProcurementCategory = t.MainProcurementCategory
		if t.Value != nil {
			row.TenderValueAmount = t.Value.Amount
			row.TenderValueCurrency = t.Value.Currency
		}
		if t.Suitability != nil {
			row.SuitableSme = t.Suitability.Sme
			row.SuitableVcse = t.Suitability.Vcse
		}
		if t.TenderPeriod != nil {
			row.TenderDeadline = utcPtr(t.TenderPeriod.EndDate)
		}
		if t.ContractPeriod != nil {
			row.TenderContractStart = utcPtr(t.ContractPeriod.StartDate)
			row.TenderContractEnd = utcPtr(t.ContractPeriod.EndDate)
		}
		// 交付地：首个item的首个地址
		if len(t.Items) > 0 && len(t.Items[0].DeliveryAddresses) > 0 {
			addr := t.Items[0].DeliveryAddresses[0]
			row.DeliveryRegion = addr.Region
			row.DeliveryPostalCode = addr.PostalCode
			row.DeliveryCountry = addr.CountryName
		}
	}

	if buyer := resolveBuyer(rel); buyer != nil {
		row.BuyerName = buyer.Name
		if buyer.Address != nil {
			row.BuyerStreetAddress = buyer.Address.StreetAddress
			row.BuyerLocality = buyer.Address.Locality
			row.BuyerPostalCode = buyer.Address.PostalCode
			row.BuyerCountry = buyer.Address.CountryName
		}
		if buyer.ContactPoint != nil {
			row.BuyerContactName = buyer.ContactPoint.Name
			row.BuyerContactEmail = buyer.ContactPoint.Email
			row.BuyerContactPhone = buyer.ContactPoint.Telephone
		}
	} else if rel.Buyer != nil {
		row.BuyerName = rel.Buyer.Name
	}

	// 主授标取首条；供应商名单跨全部award聚合去重
	if len(rel.Awards) > 0 {
		award := rel.Awards[0]
		row.AwardID = award.ID
		row.AwardStatus = award.Status
		row.AwardDate = utcPtr(award.Date)
		row.AwardDatePublished = utcPtr(award.DatePublished)
		if award.Value != nil {
			row.AwardValueAmount = award.Value.Amount
			row.AwardValueCurrency = award.Value.Currency
		}
		if award.ContractPeriod != nil {
			row.AwardContractStart = utcPtr(award.ContractPeriod.StartDate)
			row.AwardContractEnd = utcPtr(award.ContractPeriod.EndDate)
		}
		row.NoticeURL = noticeURL(award.Documents)
	}
	names, ids := collectSuppliers(rel.Awards)
	row.SupplierNames = model.JSONList(names)
	row.SupplierIDs = model.JSONList(ids)
	row.SupplierScale = supplierScale(rel.Parties)

	return row, nil
}

func decode(raw []byte) (*model.OCDSRelease, error) {
	var rel model.OCDSRelease
	if err := json.Unmarshal(raw, &rel); err != nil {
		return nil, fmt.Errorf("release JSON解码失败: %w", err)
	}
	if rel.Ocid == "" {
		return nil, parser.ErrMissingIdentity
	}
	return &rel, nil
}

// resolveBuyer 采购方解析：buyer.id在parties中按ID匹配；
// 引用缺失或未命中时回退到首个带buyer角色的party
func resolveBuyer(rel *model.OCDSRelease) *model.OCDSParty {
	if rel.Buyer != nil && rel.Buyer.ID != "" {
		for i := range rel.Parties {
			if rel.Parties[i].ID == rel.Buyer.ID {
				return &rel.Parties[i]
			}
		}
	}
	for i := range rel.Parties {
		if hasRole(rel.Parties[i].Roles, "buyer") {
			return &rel.Parties[i]
		}
	}
	return nil
}

// collectSuppliers 跨全部award聚合供应商名称与ID（保序去重）
func collectSuppliers(awards []model.OCDSAward) ([]string, []string) {
	var names, ids []string
	seenName := make(map[string]bool)
	seenID := make(map[string]bool)
	for _, a := range awards {
		for _, s := range a.Suppliers {
			if s.Name != "" && !seenName[s.Name] {
				seenName[s.Name] = true
				names = append(names, s.Name)
			}
			if s.ID != "" && !seenID[s.ID] {
				seenID[s.ID] = true
				ids = append(ids, s.ID)
			}
		}
	}
	return names, ids
}

// noticeURL 授标公告链接：优先documentType=awardNotice，兜底取首个文档
func noticeURL(docs []model.OCDSDocument) string {
	for _, d := range docs {
		if d.DocumentType == "awardNotice" && d.URL != "" {
			return d.URL
		}
	}
	if len(docs) > 0 {
		return docs[0].URL
	}
	return ""
}

// supplierScale 首个supplier角色party的规模标记
func supplierScale(parties []model.OCDSParty) string {
	for _, p := range parties {
		if hasRole(p.Roles, "supplier") && p.Details != nil {
			return p.Details.Scale
		}
	}
	return ""
}

func hasRole(roles []string, want string) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}

func classificationIDs(cs []model.OCDSClassification) []string {
	var out []string
	for _, c := range cs {
		if c.ID != "" {
			out = append(out, c.ID)
		}
	}
	return out
}

func utcPtr(s string) *time.Time {
	if t, ok := normalize.ToUTC(s); ok {
		return &t
	}
	return nil
}

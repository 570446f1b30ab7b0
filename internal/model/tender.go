package model

import (
	"time"

	"gorm.io/datatypes"
)

// Tender eForms来源的版本化招标公告表：同一公告的每个版本+标段各占一行
// source_id 即版本化唯一键 {NoticeID}-{LotID}-v{NoticeVersion}
type Tender struct {
	ID            uint64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	SourceID      string  `gorm:"column:source_id;type:varchar(120);uniqueIndex:uk_tenders_source_id;not null;comment:版本化唯一键"`
	NoticeID      string  `gorm:"column:notice_id;type:varchar(100);index:idx_tenders_notice_id;comment:裸公告GUID（跨版本共享）"`
	NoticeVersion string  `gorm:"column:notice_version;type:varchar(10);comment:版本号如01/02"`
	LotID         string  `gorm:"column:lot_id;type:varchar(50);comment:标段ID"`
	NoticeType    string  `gorm:"column:notice_type;type:varchar(20);comment:公告类型代码"`
	NoticeStatus  string  `gorm:"column:notice_status;type:varchar(20);comment:状态：Active/Amendment/Awarded"`

	TitleDe       string `gorm:"column:title_de;type:text;comment:标题（德语原文）"`
	TitleEn       string `gorm:"column:title_en;type:text;comment:标题（英译，LLM产出）"`
	DescriptionDe string `gorm:"column:description_de;type:text;comment:描述（德语原文）"`
	DescriptionEn string `gorm:"column:description_en;type:text;comment:描述（英译，LLM产出）"`

	BuyerName         string `gorm:"column:buyer_name;type:varchar(500);comment:采购方名称（原文）"`
	BuyerNameEn       string `gorm:"column:buyer_name_en;type:varchar(500);comment:采购方名称（英译，跨版本回填）"`
	BuyerWebsite      string `gorm:"column:buyer_website;type:varchar(500);comment:采购方官网"`
	BuyerContactEmail string `gorm:"column:buyer_contact_email;type:varchar(255);comment:联系邮箱"`
	BuyerContactPhone string `gorm:"column:buyer_contact_phone;type:varchar(50);comment:联系电话"`
	BuyerCity         string `gorm:"column:buyer_city;type:varchar(100);comment:采购方城市"`
	BuyerCountry      string `gorm:"column:buyer_country;type:varchar(10);comment:国家代码"`

	CpvCode            string         `gorm:"column:cpv_code;type:varchar(20);index;comment:主CPV代码"`
	AdditionalCpvCodes datatypes.JSON `gorm:"column:additional_cpv_codes;comment:附加CPV代码列表"`
	NutsCode           string         `gorm:"column:nuts_code;type:varchar(20);comment:NUTS地区代码"`
	ContractNature     string         `gorm:"column:contract_nature;type:varchar(50);comment:合同性质"`
	ProcedureType      string         `gorm:"column:procedure_type;type:varchar(50);comment:采购程序类型"`

	ValueEuro *float64 `gorm:"column:value_euro;type:numeric(18,2);comment:预估金额（EUR）"`
	Currency  string   `gorm:"column:currency;type:varchar(10);comment:货币代码"`

	PublicationDate    time.Time  `gorm:"column:publication_date;type:timestamp;comment:发布日期（UTC）"`
	SubmissionDeadline *time.Time `gorm:"column:submission_deadline;type:timestamp;comment:投标截止（UTC）"`
	ContractStartDate  *time.Time `gorm:"column:contract_start_date;type:timestamp;comment:计划合同开始（UTC）"`
	ContractEndDate    *time.Time `gorm:"column:contract_end_date;type:timestamp;comment:计划合同结束（UTC）"`

	BuyerPortalURL string `gorm:"column:buyer_portal_url;type:varchar(2048);comment:招标文件门户链接"`

	// LLM分析产出（可选增强，缺失不阻塞入库）
	SuitabilityScore       *float64       `gorm:"column:suitability_score;type:numeric(3,1);comment:适配度评分0-10"`
	EligibilityProbability *float64       `gorm:"column:eligibility_probability;type:numeric(3,2);comment:合规概率0-1"`
	ExecutiveSummary       string         `gorm:"column:executive_summary;type:text;comment:英文摘要"`
	FatalFlaws             datatypes.JSON `gorm:"column:fatal_flaws;comment:致命门槛列表"`
	HardCertifications     datatypes.JSON `gorm:"column:hard_certifications;comment:硬性资质要求列表"`
	TechStack              datatypes.JSON `gorm:"column:tech_stack;comment:技术栈信号列表"`

	RawXML    string    `gorm:"column:raw_xml;type:text;comment:原始XML（审计与重推导用）"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;comment:首次入库时间（仅插入时写，永不更新）"`
}

func (Tender) TableName() string { return "tenders" }

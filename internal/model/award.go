package model

import (
	"time"

	"gorm.io/datatypes"
)

// UkAwardedTender OCDS授标release表：以ocid全局唯一，后到的release整体覆盖旧值
// （与tenders表的按版本追加策略刻意不同：授标release是权威全量替换）
type UkAwardedTender struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Ocid        string    `gorm:"column:ocid;type:varchar(100);uniqueIndex:uk_awards_ocid;not null;comment:OCDS全局合同ID"`
	ReleaseID   string    `gorm:"column:release_id;type:varchar(100);comment:release自身ID"`
	ReleaseDate *time.Time `gorm:"column:release_date;type:timestamp;comment:release发布时间（UTC）"`

	Title          string `gorm:"column:title;type:text;comment:招标标题"`
	Description    string `gorm:"column:description;type:text;comment:招标描述"`
	CpvCode        string `gorm:"column:cpv_code;type:varchar(20);index;comment:主CPV代码"`
	CpvDescription string `gorm:"column:cpv_description;type:varchar(500);comment:CPV描述"`

	AdditionalCpvCodes       datatypes.JSON `gorm:"column:additional_cpv_codes;comment:附加CPV代码列表"`
	ProcurementMethod        string         `gorm:"column:procurement_method;type:varchar(50);comment:采购方式"`
	ProcurementMethodDetails string         `gorm:"column:procurement_method_details;type:varchar(255);comment:采购方式细节"`
	MainProcurementCategory  string         `gorm:"column:main_procurement_category;type:varchar(50);comment:采购大类"`

	TenderValueAmount   *float64 `gorm:"column:tender_value_amount;type:numeric(18,2);comment:招标金额"`
	TenderValueCurrency string   `gorm:"column:tender_value_currency;type:varchar(10);comment:招标币种"`
	SuitableSme         *bool    `gorm:"column:suitable_sme;comment:是否适合中小企业"`
	SuitableVcse        *bool    `gorm:"column:suitable_vcse;comment:是否适合社会企业"`

	TenderDeadline      *time.Time `gorm:"column:tender_deadline;type:timestamp;comment:投标截止（UTC）"`
	TenderContractStart *time.Time `gorm:"column:tender_contract_start;type:timestamp;comment:合同开始（UTC）"`
	TenderContractEnd   *time.Time `gorm:"column:tender_contract_end;type:timestamp;comment:合同结束（UTC）"`

	DeliveryRegion     string `gorm:"column:delivery_region;type:varchar(100);comment:交付地区"`
	DeliveryPostalCode string `gorm:"column:delivery_postal_code;type:varchar(20);comment:交付邮编"`
	DeliveryCountry    string `gorm:"column:delivery_country;type:varchar(100);comment:交付国家"`

	BuyerName          string `gorm:"column:buyer_name;type:varchar(500);comment:采购方名称"`
	BuyerStreetAddress string `gorm:"column:buyer_street_address;type:varchar(500);comment:采购方地址"`
	BuyerLocality      string `gorm:"column:buyer_locality;type:varchar(100);comment:采购方城市"`
	BuyerPostalCode    string `gorm:"column:buyer_postal_code;type:varchar(20);comment:采购方邮编"`
	BuyerCountry       string `gorm:"column:buyer_country;type:varchar(100);comment:采购方国家"`
	BuyerContactName   string `gorm:"column:buyer_contact_name;type:varchar(255);comment:联系人"`
	BuyerContactEmail  string `gorm:"column:buyer_contact_email;type:varchar(255);comment:联系邮箱"`
	BuyerContactPhone  string `gorm:"column:buyer_contact_phone;type:varchar(50);comment:联系电话"`

	AwardID            string     `gorm:"column:award_id;type:varchar(100);comment:主授标ID（首条award）"`
	AwardStatus        string     `gorm:"column:award_status;type:varchar(50);comment:授标状态"`
	AwardDate          *time.Time `gorm:"column:award_date;type:timestamp;comment:授标日期（UTC）"`
	AwardDatePublished *time.Time `gorm:"column:award_date_published;type:timestamp;comment:授标公示日期（UTC）"`
	AwardValueAmount   *float64   `gorm:"column:award_value_amount;type:numeric(18,2);comment:授标金额"`
	AwardValueCurrency string     `gorm:"column:award_value_currency;type:varchar(10);comment:授标币种"`
	AwardContractStart *time.Time `gorm:"column:award_contract_start;type:timestamp;comment:授标合同开始（UTC）"`
	AwardContractEnd   *time.Time `gorm:"column:award_contract_end;type:timestamp;comment:授标合同结束（UTC）"`

	// 供应商跨全部award聚合（去重），主授标只取第一条但名单取全量
	SupplierNames datatypes.JSON `gorm:"column:supplier_names;comment:全部供应商名称列表"`
	SupplierIDs   datatypes.JSON `gorm:"column:supplier_ids;comment:全部供应商ID列表"`
	SupplierScale string         `gorm:"column:supplier_scale;type:varchar(50);comment:首个供应商规模"`

	NoticeURL string    `gorm:"column:notice_url;type:varchar(2048);comment:授标公告链接"`
	RawJSON   string    `gorm:"column:raw_json;type:text;comment:原始release JSON"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;comment:首次入库时间（覆盖更新时保留）"`
}

func (UkAwardedTender) TableName() string { return "uk_awarded_tenders" }

// AwardFetchResult 授标数据源单次抓取的产物
type AwardFetchResult struct {
	Awards  []*UkAwardedTender // 解析成功的授标行
	Fetched int                // 源端release总数（含解析失败的）
	Errors  []DocError         // 逐条解析错误（不中断批次）
}

package model

import "time"

// NoticeKind 公告根元素种类（封闭枚举，避免调用方散落字符串比较）
type NoticeKind int

const (
	KindUnknown             NoticeKind = iota // 无法识别的根元素
	KindContractNotice                        // 招标公告（ContractNotice）
	KindContractAwardNotice                   // 授标公告（ContractAwardNotice）
)

// NoticeStatus 公告生命周期状态
type NoticeStatus string

const (
	StatusActive    NoticeStatus = "Active"    // 有效招标
	StatusAmendment NoticeStatus = "Amendment" // 变更公告
	StatusAwarded   NoticeStatus = "Awarded"   // 已授标
)

// DefaultLotID 无标段公告的哨兵标段ID
const DefaultLotID = "LOT-0000"

// DefaultVersion 源文档缺少版本标记时的默认版本号
const DefaultVersion = "01"

// StatusHint 解析阶段提取的状态结构信号（非最终状态，由status包推导）
type StatusHint struct {
	Kind            NoticeKind // 根元素种类
	HasChangeMarker bool       // 是否携带ChangedNoticeIdentifier标记
}

// BuyerInfo 采购方信息（各字段相互独立，均可缺失）
type BuyerInfo struct {
	Name    string // 采购方名称（原文）
	Website string // 采购方官网
	Email   string // 联系邮箱
	Phone   string // 联系电话
	City    string // 所在城市
	Country string // 国家代码
}

// Financial 金额信息（缺失时整体为nil，绝不回填0值）
type Financial struct {
	Amount   float64 // 预估/授标金额（已通过正数校验）
	Currency string  // 货币代码
}

// ParsedNotice 各格式解析器的统一中间表示（产出后不可变）
// 不变式：已填充字段必经过格式级校验；无法校验的字段保持零值缺失，
// 唯一例外是PublicationDate，解析失败时回退为采集时间以保证排序字段非空。
type ParsedNotice struct {
	SourceNoticeID string // 源系统公告ID（eForms为GUID，OCDS为ocid），必填
	LotID          string // 标段ID，无标段时为DefaultLotID
	NoticeTypeCode string // 公告类型代码（BT-02），可缺失
	VersionToken   string // 版本号字符串（如"01"/"02"），缺失时为DefaultVersion

	Title       string // 标题（原文），必填
	Description string // 描述（原文），可缺失

	CpvCode            string   // 主CPV分类代码
	AdditionalCpvCodes []string // 附加CPV代码

	Buyer     BuyerInfo  // 采购方信息
	Financial *Financial // 金额，可缺失

	PublicationDate    time.Time  // 发布日期（UTC，必填，解析失败回退为now）
	SubmissionDeadline *time.Time // 投标截止时间（UTC）
	ContractStartDate  *time.Time // 计划合同开始（UTC）
	ContractEndDate    *time.Time // 计划合同结束（UTC）

	ProcedureType  string // 采购程序类型（open/restricted等）
	ContractNature string // 合同性质（services/supplies/works）
	NutsCode       string // NUTS地区代码

	PortalURL string // 招标文件门户链接，尽力提取

	RawPayload string // 原始文档全文（审计与事后重推导用）

	StatusHint StatusHint // 状态推导的结构信号
}

// DocError 单文档处理错误（文档标识+原因），随RunReport上报
type DocError struct {
	DocID   string `json:"doc_id"`
	Message string `json:"message"`
}

// FetchResult Provider单次抓取的产物：成功解析的公告+逐文档错误
type FetchResult struct {
	Notices []*ParsedNotice // 解析成功的公告
	Fetched int             // 源端文档总数（含解析失败的）
	Errors  []DocError      // 逐文档解析错误（不中断批次）
}

// MergeOutcome 合并引擎单条写入的结果
type MergeOutcome string

const (
	OutcomeInserted  MergeOutcome = "Inserted"  // 新插入
	OutcomeUpdated   MergeOutcome = "Updated"   // 已存在且被覆盖更新
	OutcomeUnchanged MergeOutcome = "Unchanged" // 已存在，本次无操作
)

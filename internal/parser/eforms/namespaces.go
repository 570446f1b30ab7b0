package eforms

import "encoding/xml"

// ========== eForms/UBL 默认命名空间URI ==========
// 仅当文档自身未声明对应前缀时才使用这些缺省值；
// 禁止按前缀字符串硬匹配（发布方/年代不同前缀绑定会变）。
const (
	nsContractNotice      = "urn:oasis:names:specification:ubl:schema:xsd:ContractNotice-2"
	nsContractAwardNotice = "urn:oasis:names:specification:ubl:schema:xsd:ContractAwardNotice-2"

	defaultCBC   = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	defaultCAC   = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	defaultExt   = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	defaultEFAC  = "http://data.europa.eu/p27/eforms-ubl-extension-aggregate-components/1"
	defaultEFBC  = "http://data.europa.eu/p27/eforms-ubl-extension-basic-components/1"
)

// nsTable 单文档命名空间查找表：由根元素的xmlns声明构建一次，
// 未声明的前缀回退到缺省URI
type nsTable struct {
	CBC  string // 基础组件（ID、日期、金额等叶子元素）
	CAC  string // 聚合组件（ProcurementProject、Lot等）
	Ext  string // UBL扩展容器
	EFAC string // eForms扩展聚合组件（Organizations侧表等）
	EFBC string // eForms扩展基础组件
}

// buildNSTable 从根元素属性收集xmlns前缀声明，构建本文档的命名空间表
func buildNSTable(rootAttrs []xml.Attr) nsTable {
	declared := make(map[string]string)
	for _, a := range rootAttrs {
		if a.Name.Space == "xmlns" {
			declared[a.Name.Local] = a.Value
		}
	}
	pick := func(prefix, fallback string) string {
		if uri, ok := declared[prefix]; ok && uri != "" {
			return uri
		}
		return fallback
	}
	return nsTable{
		CBC:  pick("cbc", defaultCBC),
		CAC:  pick("cac", defaultCAC),
		Ext:  pick("ext", defaultExt),
		EFAC: pick("efac", defaultEFAC),
		EFBC: pick("efbc", defaultEFBC),
	}
}

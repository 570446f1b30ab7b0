package model

import "encoding/json"

// ========== Contracts Finder OCDS API 响应结构 ==========

// OCDSPage 搜索接口单页响应：releases数组+links.next游标
type OCDSPage struct {
	Releases []json.RawMessage `json:"releases"`
	Links    struct {
		Next string `json:"next"` // 下一页URL，缺失即最后一页
	} `json:"links"`
}

// OCDSRelease 单条release（tender/award阶段通用）
type OCDSRelease struct {
	Ocid    string      `json:"ocid"`
	ID      string      `json:"id"`
	Date    string      `json:"date"`
	Tender  *OCDSTender `json:"tender"`
	Buyer   *OCDSRef    `json:"buyer"`
	Parties []OCDSParty `json:"parties"`
	Awards  []OCDSAward `json:"awards"`
}

type OCDSRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OCDSTender struct {
	Title                     string               `json:"title"`
	Description               string               `json:"description"`
	Classification            *OCDSClassification  `json:"classification"`
	AdditionalClassifications []OCDSClassification `json:"additionalClassifications"`
	ProcurementMethod         string               `json:"procurementMethod"`
	ProcurementMethodDetails  string               `json:"procurementMethodDetails"`
	MainProcurementCategory   string               `json:"mainProcurementCategory"`
	Value                     *OCDSValue           `json:"value"`
	Suitability               *OCDSSuitability     `json:"suitability"`
	TenderPeriod              *OCDSPeriod          `json:"tenderPeriod"`
	ContractPeriod            *OCDSPeriod          `json:"contractPeriod"`
	Items                     []OCDSItem           `json:"items"`
}

type OCDSClassification struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type OCDSValue struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
}

type OCDSSuitability struct {
	Sme  *bool `json:"sme"`
	Vcse *bool `json:"vcse"`
}

type OCDSPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type OCDSItem struct {
	DeliveryAddresses []OCDSAddress `json:"deliveryAddresses"`
}

type OCDSAddress struct {
	StreetAddress string `json:"streetAddress"`
	Locality      string `json:"locality"`
	Region        string `json:"region"`
	PostalCode    string `json:"postalCode"`
	CountryName   string `json:"countryName"`
}

type OCDSParty struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Roles        []string     `json:"roles"`
	Address      *OCDSAddress `json:"address"`
	ContactPoint *OCDSContact `json:"contactPoint"`
	Details      *struct {
		Scale string `json:"scale"`
	} `json:"details"`
}

type OCDSContact struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}

type OCDSAward struct {
	ID             string         `json:"id"`
	Status         string         `json:"status"`
	Date           string         `json:"date"`
	DatePublished  string         `json:"datePublished"`
	Value          *OCDSValue     `json:"value"`
	ContractPeriod *OCDSPeriod    `json:"contractPeriod"`
	Suppliers      []OCDSRef      `json:"suppliers"`
	Documents      []OCDSDocument `json:"documents"`
}

type OCDSDocument struct {
	DocumentType string `json:"documentType"`
	URL          string `json:"url"`
}

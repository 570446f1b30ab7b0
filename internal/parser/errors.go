// Package parser 定义各格式解析器共享的错误分类。
// 具体格式实现见子包 eforms（XML）与 ocds（JSON）。
package parser

import "errors"

// ErrMissingIdentity 必填身份字段（公告ID/ocid）缺失：该文档被丢弃，批次继续。
// 其余字段缺失一律视为"字段不存在"，不构成解析失败。
var ErrMissingIdentity = errors.New("notice identity missing")

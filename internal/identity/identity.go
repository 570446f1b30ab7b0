// Package identity 构造公告的稳定去重身份与版本化唯一键。
package identity

import (
	"fmt"
	"regexp"

	"TenderSync/internal/model"
)

// VersionedKey 版本化唯一键：{NoticeID}-{LotID}-v{Version}，
// 同一公告的每个已发布版本+标段对应一行
func VersionedKey(noticeID, lotID, version string) string {
	if lotID == "" {
		lotID = model.DefaultLotID
	}
	if version == "" {
		version = model.DefaultVersion
	}
	return fmt.Sprintf("%s-%s-v%s", noticeID, lotID, version)
}

// FromParsed 从中间表示解出(公告ID, 版本号, 版本化键)三元组
func FromParsed(p *model.ParsedNotice) (string, string, string) {
	version := p.VersionToken
	if version == "" {
		version = model.DefaultVersion
	}
	return p.SourceNoticeID, version, VersionedKey(p.SourceNoticeID, p.LotID, version)
}

// 版本后缀形如 -v01 / -v7 / -v02a
var versionSuffixRe = regexp.MustCompile(`-v[0-9A-Za-z]+$`)

// IsLegacyKey 识别版本化改造前的旧键格式{NoticeID}-{LotID}（无-v后缀），
// 此类行需要修复作业重写为版本化格式
func IsLegacyKey(sourceID string) bool {
	return sourceID != "" && !versionSuffixRe.MatchString(sourceID)
}

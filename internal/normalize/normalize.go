package normalize

import (
	"strconv"
	"strings"
	"time"
)

// MinPlausibleAmount 金额回退链的最低可信阈值：主字段金额≤该值时视为无效，
// 转而尝试次级字段。启发式策略常量，可按数据源质量调整，非严格不变式。
const MinPlausibleAmount = 1.0

// 日期解析候选布局：带时区偏移的格式优先（显式偏移为权威），
// 无偏移的裸日期/时间一律按UTC处理
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02-07:00",
	"2006-01-02",
	"2006-01-02Z",
}

// ToUTC 将日期字符串归一到UTC绝对时间。
// 解析失败返回ok=false，调用方自行决定缺省策略（除发布日期外一律置空）。
func ToUTC(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ToUTCDateTime 拼接独立的日期与时间元素（eForms中EndDate/EndTime分列）后归一到UTC。
// 时间部分缺失或无法解析时仅用日期部分。
func ToUTCDateTime(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, false
	}
	if clock != "" {
		// 日期可能自带偏移后缀（如2026-05-01+02:00），拆出裸日期与偏移再拼时间
		bare, offset := splitDateOffset(date)
		candidate := bare + "T" + clock
		if offset != "" && !strings.ContainsAny(clock, "Z+") && !strings.Contains(clock[1:], "-") {
			candidate += offset
		}
		if t, ok := ToUTC(candidate); ok {
			return t, true
		}
	}
	return ToUTC(date)
}

// splitDateOffset 拆分"2026-05-01+02:00"/"2026-05-01Z"为裸日期与偏移后缀
func splitDateOffset(date string) (string, string) {
	if len(date) <= 10 {
		return date, ""
	}
	return date[:10], date[10:]
}

// ParseAmount 解析金额字符串：容忍千分位逗号；非正数与不可解析值一律拒绝，
// 绝不向下游传播0值或垃圾值。
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// CanonicalURL 规范化URL：去空白，缺协议时补https://（采购门户常见裸域名）
func CanonicalURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	return s
}

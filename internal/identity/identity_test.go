package identity

import (
	"testing"

	"TenderSync/internal/model"
)

func TestVersionedKey(t *testing.T) {
	if got := VersionedKey("ABC-1", "LOT-01", "01"); got != "ABC-1-LOT-01-v01" {
		t.Fatalf("VersionedKey: got=%q", got)
	}
	// 标段与版本缺省
	if got := VersionedKey("ABC-1", "", ""); got != "ABC-1-LOT-0000-v01" {
		t.Fatalf("VersionedKey 缺省: got=%q", got)
	}
}

func TestFromParsed(t *testing.T) {
	p := &model.ParsedNotice{
		SourceNoticeID: "11111111-2222-3333-4444-555555555555",
		LotID:          "LOT-0002",
		VersionToken:   "03",
	}
	noticeID, version, key := FromParsed(p)
	if noticeID != p.SourceNoticeID || version != "03" {
		t.Fatalf("FromParsed: noticeID=%q version=%q", noticeID, version)
	}
	if want := p.SourceNoticeID + "-LOT-0002-v03"; key != want {
		t.Fatalf("FromParsed: key want=%q got=%q", want, key)
	}

	// 版本缺失时落到默认版本，保证键的确定性
	p.VersionToken = ""
	_, version, key = FromParsed(p)
	if version != model.DefaultVersion {
		t.Fatalf("FromParsed 默认版本: got=%q", version)
	}
	if want := p.SourceNoticeID + "-LOT-0002-v01"; key != want {
		t.Fatalf("FromParsed 默认版本键: want=%q got=%q", want, key)
	}
}

func TestIsLegacyKey(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"ABC-1-LOT-01-v01", false},
		{"ABC-1-LOT-01-v7", false},
		{"ABC-1-LOT-01-v02a", false},
		{"ABC-1-LOT-01", true},
		{"ABC-1-LOT-0000", true},
		{"", false},
	}
	for _, c := range cases {
		if got := IsLegacyKey(c.in); got != c.want {
			t.Fatalf("IsLegacyKey(%q): want=%v got=%v", c.in, c.want, got)
		}
	}
}

package normalize

import (
	"testing"
	"time"
)

func TestToUTC(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2026-05-01T10:30:00+02:00", "2026-05-01T08:30:00Z", true},
		{"2026-05-01T10:30:00Z", "2026-05-01T10:30:00Z", true},
		{"2026-05-01T10:30:00", "2026-05-01T10:30:00Z", true},
		{"2026-05-01", "2026-05-01T00:00:00Z", true},
		{"2026-05-01+02:00", "2026-04-30T22:00:00Z", true},
		{"  2026-05-01  ", "2026-05-01T00:00:00Z", true},
		{"", "", false},
		{"not-a-date", "", false},
	}
	for _, c := range cases {
		got, ok := ToUTC(c.in)
		if ok != c.ok {
			t.Fatalf("ToUTC(%q): ok want=%v got=%v", c.in, c.ok, ok)
		}
		if !ok {
			continue
		}
		if got.Format(time.RFC3339) != c.want {
			t.Fatalf("ToUTC(%q): want=%q got=%q", c.in, c.want, got.Format(time.RFC3339))
		}
		if got.Location() != time.UTC {
			t.Fatalf("ToUTC(%q): 结果不是UTC", c.in)
		}
	}
}

func TestToUTCDateTime(t *testing.T) {
	// 日期自带偏移，时间裸值：偏移要拼回去
	got, ok := ToUTCDateTime("2026-05-01+02:00", "12:00:00")
	if !ok {
		t.Fatal("ToUTCDateTime: 期望解析成功")
	}
	if want := "2026-05-01T10:00:00Z"; got.Format(time.RFC3339) != want {
		t.Fatalf("ToUTCDateTime: want=%q got=%q", want, got.Format(time.RFC3339))
	}

	// 时间缺失：退化为裸日期
	got, ok = ToUTCDateTime("2026-05-01", "")
	if !ok || got.Format(time.RFC3339) != "2026-05-01T00:00:00Z" {
		t.Fatalf("ToUTCDateTime 仅日期: got=%v ok=%v", got, ok)
	}

	// 时间畸形：回退到日期部分而不是整体失败
	got, ok = ToUTCDateTime("2026-05-01", "garbage")
	if !ok || got.Format(time.RFC3339) != "2026-05-01T00:00:00Z" {
		t.Fatalf("ToUTCDateTime 畸形时间: got=%v ok=%v", got, ok)
	}

	// 日期缺失：整体失败
	if _, ok := ToUTCDateTime("", "12:00:00"); ok {
		t.Fatal("ToUTCDateTime: 无日期应失败")
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1234.56", 1234.56, true},
		{"1,234,567.89", 1234567.89, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseAmount(%q): want=(%v,%v) got=(%v,%v)", c.in, c.want, c.ok, got, ok)
		}
	}
}

func TestCanonicalURL(t *testing.T) {
	if got := CanonicalURL("www.vergabe.example.de/tender/1"); got != "https://www.vergabe.example.de/tender/1" {
		t.Fatalf("CanonicalURL 裸域名: got=%q", got)
	}
	if got := CanonicalURL("http://example.de"); got != "http://example.de" {
		t.Fatalf("CanonicalURL 已带协议: got=%q", got)
	}
	if got := CanonicalURL("  "); got != "" {
		t.Fatalf("CanonicalURL 空白: got=%q", got)
	}
}

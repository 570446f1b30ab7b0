package status

import (
	"testing"

	"TenderSync/internal/model"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		kind   model.NoticeKind
		marker bool
		want   model.NoticeStatus
	}{
		{model.KindContractAwardNotice, false, model.StatusAwarded},
		// 授标种类优先于变更标记
		{model.KindContractAwardNotice, true, model.StatusAwarded},
		{model.KindContractNotice, true, model.StatusAmendment},
		{model.KindContractNotice, false, model.StatusActive},
		{model.KindUnknown, true, model.StatusAmendment},
		{model.KindUnknown, false, model.StatusActive},
	}
	for _, c := range cases {
		if got := Resolve(c.kind, c.marker); got != c.want {
			t.Fatalf("Resolve(%v,%v): want=%q got=%q", c.kind, c.marker, c.want, got)
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	// 同输入重复推导必须恒等（修复作业依赖该性质做幂等回填）
	for i := 0; i < 3; i++ {
		if got := Resolve(model.KindContractNotice, true); got != model.StatusAmendment {
			t.Fatalf("第%d次推导结果漂移: %q", i, got)
		}
	}
}

func TestResolveRaw(t *testing.T) {
	award := []byte(`<ContractAwardNotice xmlns="urn:oasis:names:specification:ubl:schema:xsd:ContractAwardNotice-2"><cbc:ID xmlns:cbc="urn:x">X</cbc:ID></ContractAwardNotice>`)
	if got := ResolveRaw(award); got != model.StatusAwarded {
		t.Fatalf("ResolveRaw 授标: got=%q", got)
	}

	amendment := []byte(`<ContractNotice><efac:ChangedNoticeIdentifier xmlns:efac="urn:x">GUID</efac:ChangedNoticeIdentifier></ContractNotice>`)
	if got := ResolveRaw(amendment); got != model.StatusAmendment {
		t.Fatalf("ResolveRaw 变更: got=%q", got)
	}

	// 无前缀的历史写法同样命中
	legacy := []byte(`<ContractNotice><ChangedNoticeIdentifier>GUID</ChangedNoticeIdentifier></ContractNotice>`)
	if got := ResolveRaw(legacy); got != model.StatusAmendment {
		t.Fatalf("ResolveRaw 无前缀变更: got=%q", got)
	}

	plain := []byte(`<ContractNotice><cbc:ID xmlns:cbc="urn:x">X</cbc:ID></ContractNotice>`)
	if got := ResolveRaw(plain); got != model.StatusActive {
		t.Fatalf("ResolveRaw 普通招标: got=%q", got)
	}

	// 全函数：畸形输入不报错，映射到Active
	for _, raw := range [][]byte{nil, []byte(""), []byte("not xml at all"), []byte("<unclosed")} {
		if got := ResolveRaw(raw); got != model.StatusActive {
			t.Fatalf("ResolveRaw 畸形输入%q: got=%q", raw, got)
		}
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"TenderSync/internal/model"
)

func newRepairService(t *testing.T) (*RepairService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Tender{}); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	lg := logrus.New()
	lg.SetLevel(logrus.ErrorLevel)
	return NewRepairService(db, lg), db
}

const repairNoticeXML = `<ContractNotice xmlns="urn:oasis:names:specification:ubl:schema:xsd:ContractNotice-2"
  xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
  xmlns:efac="http://data.europa.eu/p27/eforms-ubl-extension-aggregate-components/1">
  <cbc:ID>R-1</cbc:ID>
  <cbc:VersionID>02</cbc:VersionID>
  <efac:Changes><efac:ChangedNoticeIdentifier>R-1</efac:ChangedNoticeIdentifier></efac:Changes>
</ContractNotice>`

func TestRepairStatuses(t *testing.T) {
	svc, db := newRepairService(t)

	// 旧规则误标为Active的变更公告
	db.Create(&model.Tender{
		SourceID:        "R-1-LOT-0000-v02",
		NoticeID:        "R-1",
		NoticeVersion:   "02",
		NoticeStatus:    "Active",
		PublicationDate: time.Now().UTC(),
		RawXML:          repairNoticeXML,
	})
	// 状态正确的行不应被动
	db.Create(&model.Tender{
		SourceID:        "R-2-LOT-0000-v01",
		NoticeID:        "R-2",
		NoticeVersion:   "01",
		NoticeStatus:    "Active",
		PublicationDate: time.Now().UTC(),
		RawXML:          `<ContractNotice><ID>R-2</ID></ContractNotice>`,
	})

	repaired, err := svc.RepairStatuses(context.Background())
	if err != nil {
		t.Fatalf("RepairStatuses: %v", err)
	}
	if repaired != 1 {
		t.Fatalf("修正行数: want=1 got=%d", repaired)
	}

	var row model.Tender
	db.Where("notice_id = ?", "R-1").First(&row)
	if row.NoticeStatus != "Amendment" {
		t.Fatalf("状态: got=%q", row.NoticeStatus)
	}

	// 幂等：再跑一遍无变更
	repaired, err = svc.RepairStatuses(context.Background())
	if err != nil || repaired != 0 {
		t.Fatalf("重复修复: repaired=%d err=%v", repaired, err)
	}
}

func TestRepairKeys(t *testing.T) {
	svc, db := newRepairService(t)

	// 版本化改造前的旧键：缺-v后缀
	db.Create(&model.Tender{
		SourceID:        "R-1-LOT-0000",
		NoticeID:        "R-1",
		NoticeStatus:    "Active",
		PublicationDate: time.Now().UTC(),
		RawXML:          repairNoticeXML,
	})
	// 已是版本化键的行不应被动
	db.Create(&model.Tender{
		SourceID:        "R-3-LOT-0000-v01",
		NoticeID:        "R-3",
		NoticeVersion:   "01",
		NoticeStatus:    "Active",
		PublicationDate: time.Now().UTC(),
		RawXML:          repairNoticeXML,
	})

	repaired, err := svc.RepairKeys(context.Background())
	if err != nil {
		t.Fatalf("RepairKeys: %v", err)
	}
	if repaired != 1 {
		t.Fatalf("改写行数: want=1 got=%d", repaired)
	}

	var row model.Tender
	db.Where("notice_id = ?", "R-1").First(&row)
	if row.SourceID != "R-1-LOT-0000-v02" || row.NoticeVersion != "02" {
		t.Fatalf("修复后键: source=%q version=%q", row.SourceID, row.NoticeVersion)
	}
}

func TestRepairKeysOccupiedKept(t *testing.T) {
	svc, db := newRepairService(t)

	// 修复目标键已被重新采集的新行占用：旧行保持原样
	db.Create(&model.Tender{
		SourceID:        "R-1-LOT-0000",
		NoticeID:        "R-1",
		NoticeStatus:    "Active",
		PublicationDate: time.Now().UTC(),
		RawXML:          repairNoticeXML,
	})
	db.Create(&model.Tender{
		SourceID:        "R-1-LOT-0000-v02",
		NoticeID:        "R-1",
		NoticeVersion:   "02",
		NoticeStatus:    "Amendment",
		PublicationDate: time.Now().UTC(),
		RawXML:          repairNoticeXML,
	})

	repaired, err := svc.RepairKeys(context.Background())
	if err != nil {
		t.Fatalf("RepairKeys: %v", err)
	}
	if repaired != 0 {
		t.Fatalf("占用时不应改写: got=%d", repaired)
	}

	var count int64
	db.Model(&model.Tender{}).Where("source_id = ?", "R-1-LOT-0000").Count(&count)
	if count != 1 {
		t.Fatal("旧行应保持原样")
	}
}

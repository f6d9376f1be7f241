package services

import (
	"sync"
	"testing"

	"greensnap/internal/db"
	"greensnap/internal/models"
)

func TestAddStrikeEscalatesToBan(t *testing.T) {
	setupTestDB(t)

	// 连续五次违规，第五次返回 banned=true
	for i := 1; i <= 5; i++ {
		count, banned, err := AddStrike("c1", "fake location")
		if err != nil {
			t.Fatalf("AddStrike %d failed: %v", i, err)
		}
		if count != i {
			t.Errorf("Strike %d: expected count %d, got %d", i, i, count)
		}
		wantBanned := i >= 5
		if banned != wantBanned {
			t.Errorf("Strike %d: expected banned=%t, got %t", i, wantBanned, banned)
		}
	}

	// 封禁是终态：继续违规计数单调增加，banned 保持 true
	count, banned, err := AddStrike("c1", "still at it")
	if err != nil {
		t.Fatalf("AddStrike after ban failed: %v", err)
	}
	if count != 6 || !banned {
		t.Errorf("Expected count=6 banned=true, got count=%d banned=%t", count, banned)
	}
}

func TestAddStrikeConcurrent(t *testing.T) {
	setupTestDB(t)

	// 八路并发违规同一个承诺：原子自增不丢计数，封禁时间只写一次
	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := AddStrike("c-burst", "burst"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Concurrent AddStrike failed: %v", err)
	}

	count, banned, err := CheckStatus("c-burst")
	if err != nil {
		t.Fatalf("CheckStatus failed: %v", err)
	}
	if count != n || !banned {
		t.Errorf("Expected count=%d banned=true, got count=%d banned=%t", n, count, banned)
	}

	// 只有一条计数行，banned_at 已落；每次违规各留一条明细
	var rec models.StrikeRecord
	if err := db.DB.Where("commitment = ?", "c-burst").First(&rec).Error; err != nil {
		t.Fatalf("Failed to load strike record: %v", err)
	}
	if rec.BannedAt == nil {
		t.Errorf("Expected banned_at to be set")
	}
	var logs int64
	db.DB.Model(&models.StrikeLog{}).Where("commitment = ?", "c-burst").Count(&logs)
	if logs != n {
		t.Errorf("Expected %d strike log rows, got %d", n, logs)
	}
}

func TestCheckStatus(t *testing.T) {
	setupTestDB(t)

	// 未知承诺：0 次，不封禁
	count, banned, err := CheckStatus("never-seen")
	if err != nil {
		t.Fatalf("CheckStatus failed: %v", err)
	}
	if count != 0 || banned {
		t.Errorf("Expected clean status, got count=%d banned=%t", count, banned)
	}

	if _, _, err := AddStrike("c2", "spam"); err != nil {
		t.Fatalf("AddStrike failed: %v", err)
	}
	count, banned, err = CheckStatus("c2")
	if err != nil {
		t.Fatalf("CheckStatus failed: %v", err)
	}
	if count != 1 || banned {
		t.Errorf("Expected warned status, got count=%d banned=%t", count, banned)
	}
}

func TestStrikeReasonsSanitized(t *testing.T) {
	setupTestDB(t)

	if _, _, err := AddStrike("c3", `<script>alert(1)</script>duplicate photo`); err != nil {
		t.Fatalf("AddStrike failed: %v", err)
	}

	reasons, err := StrikeReasons("c3")
	if err != nil {
		t.Fatalf("StrikeReasons failed: %v", err)
	}
	if len(reasons) != 1 {
		t.Fatalf("Expected 1 reason, got %d", len(reasons))
	}
	if reasons[0] != "duplicate photo" {
		t.Errorf("Expected sanitized reason, got %q", reasons[0])
	}
}

func TestAddStrikeEmptyCommitment(t *testing.T) {
	setupTestDB(t)

	if _, _, err := AddStrike("", "whatever"); err == nil {
		t.Errorf("Expected validation error for empty commitment")
	}
}

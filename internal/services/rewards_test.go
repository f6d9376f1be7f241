package services

import (
	"testing"

	"greensnap/internal/db"
	"greensnap/internal/models"
)

func TestCreditRewardUpsert(t *testing.T) {
	setupTestDB(t)

	if err := CreditReward("c-reward", 10, ActionSubmissionAccepted); err != nil {
		t.Fatalf("CreditReward failed: %v", err)
	}
	if err := CreditReward("c-reward", 20, ActionSubmissionAccepted); err != nil {
		t.Fatalf("CreditReward failed: %v", err)
	}

	account, err := GetRewardAccount("c-reward")
	if err != nil {
		t.Fatalf("GetRewardAccount failed: %v", err)
	}
	if account.TotalPoints != 30 {
		t.Errorf("Expected 30 points, got %d", account.TotalPoints)
	}
	if account.TotalSubmissions != 2 {
		t.Errorf("Expected 2 submissions, got %d", account.TotalSubmissions)
	}
	if account.LastActivityAt.IsZero() {
		t.Errorf("Expected last_activity_at to be set")
	}

	// 明细账本逐笔记录
	var logs int64
	db.DB.Model(&models.RewardLog{}).Where("commitment = ?", "c-reward").Count(&logs)
	if logs != 2 {
		t.Errorf("Expected 2 reward logs, got %d", logs)
	}
}

func TestGetRewardAccountUnknown(t *testing.T) {
	setupTestDB(t)

	account, err := GetRewardAccount("unknown")
	if err != nil {
		t.Fatalf("GetRewardAccount failed: %v", err)
	}
	if account.TotalPoints != 0 || account.TotalSubmissions != 0 {
		t.Errorf("Expected zero-value account, got %+v", account)
	}
}

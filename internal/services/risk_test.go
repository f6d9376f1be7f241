package services

import (
	"testing"
)

func TestScoreRiskScenarioHigh(t *testing.T) {
	// itemCount=60, avgPoints=16, 位置高度集中 → 封顶 100，HIGH
	h := RiskHistory{
		ItemCount:           60,
		AvgPointsPerItem:    16,
		UniqueLocationCount: 1,
		SubmissionsLast24h:  40,
		TotalPoints:         960,
	}
	score, level, action := ScoreRisk(h)
	if score != 100 {
		t.Errorf("Expected capped score 100, got %d", score)
	}
	if level != RiskLevelHigh {
		t.Errorf("Expected HIGH, got %s", level)
	}
	if action != RiskActionImmediateReview {
		t.Errorf("Expected immediate_review, got %s", action)
	}
}

func TestScoreRiskMedium(t *testing.T) {
	// 50 件、单一位置、普通均分 → 15+25+15=55，MEDIUM
	h := RiskHistory{
		ItemCount:           50,
		AvgPointsPerItem:    10,
		UniqueLocationCount: 1,
		TotalPoints:         500,
	}
	score, level, action := ScoreRisk(h)
	if score != 55 {
		t.Errorf("Expected 55, got %d", score)
	}
	if level != RiskLevelMedium || action != RiskActionManualReview {
		t.Errorf("Expected MEDIUM/manual_review, got %s/%s", level, action)
	}
}

func TestScoreRiskLow(t *testing.T) {
	h := RiskHistory{
		ItemCount:           5,
		AvgPointsPerItem:    10,
		UniqueLocationCount: 4,
		TotalPoints:         50,
	}
	score, level, action := ScoreRisk(h)
	if score != 0 {
		t.Errorf("Expected 0, got %d", score)
	}
	if level != RiskLevelLow || action != RiskActionMonitor {
		t.Errorf("Expected LOW/monitor, got %s/%s", level, action)
	}
}

func TestScoreRiskAvgTiers(t *testing.T) {
	// avg > 15 只计高档 35，不叠加中档 20
	h := RiskHistory{ItemCount: 5, AvgPointsPerItem: 16, UniqueLocationCount: 4}
	if score, _, _ := ScoreRisk(h); score != 35 {
		t.Errorf("Expected 35 for avg>15, got %d", score)
	}

	h.AvgPointsPerItem = 13
	if score, _, _ := ScoreRisk(h); score != 20 {
		t.Errorf("Expected 20 for avg>12, got %d", score)
	}
}

func TestScoreRiskPurity(t *testing.T) {
	// 纯函数：同样的历史重复评分结果完全一致
	h := RiskHistory{
		ItemCount:           35,
		AvgPointsPerItem:    13,
		UniqueLocationCount: 2,
		SubmissionsLast24h:  12,
		TotalPoints:         455,
	}
	s1, l1, a1 := ScoreRisk(h)
	s2, l2, a2 := ScoreRisk(h)
	if s1 != s2 || l1 != l2 || a1 != a2 {
		t.Errorf("Scoring is not pure: (%d,%s,%s) vs (%d,%s,%s)", s1, l1, a1, s2, l2, a2)
	}
}

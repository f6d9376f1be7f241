package services

import (
	"fmt"
	"time"

	"greensnap/internal/db"
	"greensnap/internal/models"
)

// 风险等级与处置方式
const (
	RiskLevelHigh   = "HIGH"
	RiskLevelMedium = "MEDIUM"
	RiskLevelLow    = "LOW"

	RiskActionImmediateReview = "immediate_review"
	RiskActionManualReview    = "manual_review"
	RiskActionMonitor         = "monitor"
)

// RiskHistory 评分输入：候选提交所属承诺的窗口化历史
type RiskHistory struct {
	ItemCount           int     // 累计提交数
	AvgPointsPerItem    float64 // 平均单件积分
	UniqueLocationCount int     // 最近窗口内的去重区域数
	SubmissionsLast24h  int     // 24 小时内提交数
	TotalPoints         int     // 累计积分
}

// RiskConfig 加权阈值配置
type RiskConfig struct {
	MaxScore            int // 100
	HighThreshold       int // 70，超过进 immediate_review
	MediumThreshold     int // 40，超过进 manual_review
	WindowSize          int // 取最近多少条提交算区域分布
	WeightAvgHigh       int // avgPoints > 15
	WeightAvgMedium     int // avgPoints > 12 且未计入上一档
	WeightVolumeHigh    int // itemCount > 50
	WeightVolumeMedium  int // itemCount > 30
	WeightLocationTight int // uniqueLocations < 2 且 itemCount > 10
	WeightLocationLow   int // uniqueLocations < 3 且 itemCount > 20
	WeightTotalPoints   int // totalPoints > 500
}

var DefaultRiskConfig = RiskConfig{
	MaxScore:            100,
	HighThreshold:       70,
	MediumThreshold:     40,
	WindowSize:          20,
	WeightAvgHigh:       35,
	WeightAvgMedium:     20,
	WeightVolumeHigh:    30,
	WeightVolumeMedium:  15,
	WeightLocationTight: 25,
	WeightLocationLow:   15,
	WeightTotalPoints:   10,
}

// ScoreRisk 确定性加权阈值评分，封顶 100
// 纯函数：同样的历史永远得到同样的分数和等级
// 结果只做提示用途，路由到人工复核队列，永远不会直接拦截提交
func ScoreRisk(h RiskHistory) (score int, level string, action string) {
	cfg := DefaultRiskConfig

	// 平均积分异常偏高（刷高价值分类）
	if h.AvgPointsPerItem > 15 {
		score += cfg.WeightAvgHigh
	} else if h.AvgPointsPerItem > 12 {
		score += cfg.WeightAvgMedium
	}

	// 提交量
	if h.ItemCount > 50 {
		score += cfg.WeightVolumeHigh
	}
	if h.ItemCount > 30 {
		score += cfg.WeightVolumeMedium
	}

	// 位置过于集中（大量提交来自同一两个区域）
	if h.UniqueLocationCount < 2 && h.ItemCount > 10 {
		score += cfg.WeightLocationTight
	}
	if h.UniqueLocationCount < 3 && h.ItemCount > 20 {
		score += cfg.WeightLocationLow
	}

	// 累计积分
	if h.TotalPoints > 500 {
		score += cfg.WeightTotalPoints
	}

	if score > cfg.MaxScore {
		score = cfg.MaxScore
	}

	switch {
	case score > cfg.HighThreshold:
		return score, RiskLevelHigh, RiskActionImmediateReview
	case score > cfg.MediumThreshold:
		return score, RiskLevelMedium, RiskActionManualReview
	default:
		return score, RiskLevelLow, RiskActionMonitor
	}
}

// BuildRiskHistory 从存储层汇总承诺的窗口化历史
// 账户口径取自积分账本，区域分布取最近 WindowSize 条提交
func BuildRiskHistory(commitment string) (RiskHistory, error) {
	var h RiskHistory

	account, err := GetRewardAccount(commitment)
	if err != nil {
		return h, err
	}
	h.ItemCount = account.TotalSubmissions
	h.TotalPoints = account.TotalPoints
	if account.TotalSubmissions > 0 {
		h.AvgPointsPerItem = float64(account.TotalPoints) / float64(account.TotalSubmissions)
	}

	// 最近窗口内的提交，算区域去重数
	var recent []models.Submission
	if err := db.DB.Select("center_lat", "center_lng", "created_at").
		Where("commitment = ?", commitment).
		Order("created_at DESC").
		Limit(DefaultRiskConfig.WindowSize).
		Find(&recent).Error; err != nil {
		return h, wrapStorage("build_risk_history", err)
	}

	seen := make(map[string]bool)
	dayAgo := time.Now().Add(-24 * time.Hour)
	for _, s := range recent {
		seen[fmt.Sprintf("%.6f,%.6f", s.CenterLat, s.CenterLng)] = true
		if s.CreatedAt.After(dayAgo) {
			h.SubmissionsLast24h++
		}
	}
	h.UniqueLocationCount = len(seen)

	return h, nil
}

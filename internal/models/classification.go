package models

import "strings"

// Classification 照片分类的封闭变体集合
// 外部分类服务返回的标签必须先归一化到这个集合，禁止裸字符串分支
type Classification string

const (
	ClassificationRecyclable Classification = "recyclable" // 可回收
	ClassificationOrganic    Classification = "organic"    // 有机/可堆肥
	ClassificationHazardous  Classification = "hazardous"  // 有害垃圾
	ClassificationEWaste     Classification = "ewaste"     // 电子垃圾
	ClassificationLitter     Classification = "litter"     // 普通丢弃物
	ClassificationBulky      Classification = "bulky"      // 大件垃圾

	// ClassificationPendingCustom 待人工审核的自定义分类
	// 未知标签不直接入库，统一挂到这个变体并保留清洗后的原始标签
	ClassificationPendingCustom Classification = "pending_custom"
)

// 每个分类对应的积分值
const (
	PointsDefault   = 10
	PointsHazardous = 20
	PointsEWaste    = 15
)

var knownClassifications = map[string]Classification{
	"recyclable": ClassificationRecyclable,
	"organic":    ClassificationOrganic,
	"compost":    ClassificationOrganic, // 分类服务的旧标签
	"hazardous":  ClassificationHazardous,
	"ewaste":     ClassificationEWaste,
	"e-waste":    ClassificationEWaste,
	"litter":     ClassificationLitter,
	"bulky":      ClassificationBulky,
}

// ParseClassification 把外部标签解析为封闭变体
// 返回值 custom=true 表示标签不在集合内，归入 pending_custom
func ParseClassification(label string) (Classification, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	if c, ok := knownClassifications[key]; ok {
		return c, false
	}
	return ClassificationPendingCustom, true
}

// Points 返回该分类的基础积分
func (c Classification) Points() int {
	switch c {
	case ClassificationHazardous:
		return PointsHazardous
	case ClassificationEWaste:
		return PointsEWaste
	default:
		return PointsDefault
	}
}

package models

// PrivacyLevel 位置隐私级别
type PrivacyLevel string

const (
	PrivacyPublic      PrivacyLevel = "public"      // 不模糊，仅限管理端使用
	PrivacyApproximate PrivacyLevel = "approximate" // 1km 网格
	PrivacyAnonymous   PrivacyLevel = "anonymous"   // 10km 网格，普通提交默认
)

// Valid 检查隐私级别是否合法
func (p PrivacyLevel) Valid() bool {
	switch p {
	case PrivacyPublic, PrivacyApproximate, PrivacyAnonymous:
		return true
	}
	return false
}

// RadiusKm 返回该级别对应的模糊半径（公里）
func (p PrivacyLevel) RadiusKm() float64 {
	switch p {
	case PrivacyPublic:
		return 0
	case PrivacyApproximate:
		return 1
	default:
		return 10
	}
}

// LocationZone 匿名化后的位置区域，替代精确坐标
// 匿名化边界之后的任何组件都只允许看到 Zone，不允许接触原始经纬度
type LocationZone struct {
	CenterLat    float64      `json:"centerLat"`
	CenterLng    float64      `json:"centerLng"`
	RadiusKm     float64      `json:"radiusKm"`
	PrivacyLevel PrivacyLevel `json:"privacyLevel"`
}

package services

import (
	"encoding/hex"
	"fmt"
	"greensnap/internal/models"
	"greensnap/internal/utils"

	"golang.org/x/crypto/sha3"
)

// 承诺派生参数
const (
	// SessionWindowMs 承诺的时间桶宽度（24 小时）
	// 同一会话一天内的活动映射到同一个承诺，保证违规记录能接上
	SessionWindowMs = int64(24 * 60 * 60 * 1000)

	// FallbackSessionID 缺失会话密钥时的公共标识
	// 所有无密钥流量会被并入同一个承诺桶，这会削弱该部分流量的
	// 不可关联性，属于有意保留的已知限制，见 AnonymousPoolNote
	FallbackSessionID = "anonymous-pool-v1"

	commitmentPrefix = "commit|v1"
	nullifierPrefix  = "null|v1"
)

// AnonymousPoolNote 对外文档引用的限制说明
const AnonymousPoolNote = "submissions without a session secret share one pooled commitment; " +
	"strikes and rewards for that pool are collective, not individual"

// AnonymizeLocation 把精确坐标模糊成隐私级别对应的区域
// 网格边长 = radiusKm / 111.0 度，向下对齐；public 级别原样透传
// 约定：真实坐标一定落在返回中心 radiusKm 范围内
func AnonymizeLocation(lat, lng float64, level models.PrivacyLevel) (models.LocationZone, error) {
	if lat < -90 || lat > 90 {
		return models.LocationZone{}, &ValidationError{Field: "latitude", Message: "must be within [-90, 90]"}
	}
	if lng < -180 || lng > 180 {
		return models.LocationZone{}, &ValidationError{Field: "longitude", Message: "must be within [-180, 180]"}
	}
	if !level.Valid() {
		return models.LocationZone{}, &ValidationError{Field: "privacyLevel", Message: "unknown privacy level"}
	}

	radius := level.RadiusKm()
	cell := utils.CellSizeDegrees(radius)

	// 对齐到网格后取格子中点作为区域中心：
	// 取格子角点时远角的点到中心最远可达 radius·√2，会破坏
	// 「真实坐标一定在 radiusKm 内」的约定，中点最远只有 radius/√2
	centerLat := utils.SnapToGrid(lat, cell)
	centerLng := utils.SnapToGrid(lng, cell)
	if cell > 0 {
		centerLat += cell / 2
		centerLng += cell / 2
		// 极点 / 对向子午线附近中点可能越过 ±90/±180，夹回合法范围
		// 真实坐标还在同一个格子里，包含约定不受影响
		if centerLat > 90 {
			centerLat = 90
		}
		if centerLng > 180 {
			centerLng = 180
		}
	}

	return models.LocationZone{
		CenterLat:    centerLat,
		CenterLng:    centerLng,
		RadiusKm:     radius,
		PrivacyLevel: level,
	}, nil
}

// GenerateCommitment 从 (内容哈希, 区域, 时间桶, 会话密钥) 派生匿名承诺
// 同样的输入永远得到同样的承诺；不同会话密钥之间计算上不可关联
func GenerateCommitment(contentHash string, zone models.LocationZone, timestampMs int64, sessionSecret string) string {
	if sessionSecret == "" {
		sessionSecret = FallbackSessionID
	}
	bucket := timestampMs / SessionWindowMs

	// 规范化编码：字段定长格式化后用 | 拼接，避免歧义
	payload := fmt.Sprintf("%s|%s|%.6f|%.6f|%.1f|%d|%s",
		commitmentPrefix, contentHash,
		zone.CenterLat, zone.CenterLng, zone.RadiusKm,
		bucket, sessionSecret)

	sum := sha3.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// GenerateNullifier 从 (内容哈希, 会话密钥) 派生去重作废符
// 故意不含区域和时间：同一件被拍的物品换地点、换时间重交也会命中
// 限制：去重只在同一会话密钥内有效，跨会话的近重复图片识别不在这里做
func GenerateNullifier(contentHash, sessionSecret string) string {
	if sessionSecret == "" {
		sessionSecret = FallbackSessionID
	}

	payload := fmt.Sprintf("%s|%s|%s", nullifierPrefix, contentHash, sessionSecret)

	sum := sha3.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// HashToken 管理令牌入库前的哈希，明文令牌不落库
func HashToken(token string) string {
	sum := sha3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

package utils

import (
	"math"
)

// 地理常量
const (
	EarthRadiusKm = 6371.0 // 地球平均半径
	KmPerDegree   = 111.0  // 纬度一度约等于 111km
)

// CellSizeDegrees 把模糊半径换算成网格边长（度）
func CellSizeDegrees(radiusKm float64) float64 {
	return radiusKm / KmPerDegree
}

// SnapToGrid 把坐标向下对齐到网格，cellSize 为 0 时原样返回
func SnapToGrid(value, cellSize float64) float64 {
	if cellSize <= 0 {
		return value
	}
	return math.Floor(value/cellSize) * cellSize
}

// HaversineKm 计算两点间的大圆距离（公里）
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180.0
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

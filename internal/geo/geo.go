// Package geoは配達圏判定に使う球面距離の計算だけを持つ。
// 状態は持たず、DBにも触らない
package geo

import "math"

// 地球半径（km）
const earthRadiusKM = 6371

// 2点間の大円距離をHaversine公式で求める（km）
func DistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

// 配達ETA（分）。調理ベース時間 + 距離×分/km（小数切り捨て）
func ETAMinutes(distanceKM float64, baseMinutes, minutesPerKM int) int {
	return baseMinutes + int(distanceKM*float64(minutesPerKM))
}

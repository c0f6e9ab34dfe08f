package geo_test

import (
	"testing"

	"app/internal/geo"

	"github.com/stretchr/testify/assert"
)

const (
	originLat = -33.4489
	originLon = -70.6693
)

func TestDistanceKM_SamePoint(t *testing.T) {
	d := geo.DistanceKM(originLat, originLon, originLat, originLon)
	assert.InDelta(t, 0, d, 1e-9)
}

func TestDistanceKM_Symmetric(t *testing.T) {
	a := geo.DistanceKM(originLat, originLon, -33.52, -70.60)
	b := geo.DistanceKM(-33.52, -70.60, originLat, originLon)
	assert.InDelta(t, a, b, 1e-9)
}

func TestDistanceKM_KnownDistance(t *testing.T) {
	// サンティアゴ中心部〜プロビデンシア近辺。おおよそ5km前後
	d := geo.DistanceKM(originLat, originLon, -33.4263, -70.6200)
	assert.Greater(t, d, 4.0)
	assert.Less(t, d, 6.5)
}

func TestDistanceKM_FarPoint(t *testing.T) {
	// バルパライソは半径15kmの圏外
	d := geo.DistanceKM(originLat, originLon, -33.0472, -71.6127)
	assert.Greater(t, d, 90.0)
}

func TestETAMinutes_ZeroDistance(t *testing.T) {
	assert.Equal(t, 25, geo.ETAMinutes(0, 25, 3))
}

func TestETAMinutes_TruncatesFraction(t *testing.T) {
	// 2.9km × 3 = 8.7 → 8（切り捨て）
	assert.Equal(t, 33, geo.ETAMinutes(2.9, 25, 3))
}

func TestETAMinutes_FiveKM(t *testing.T) {
	assert.Equal(t, 40, geo.ETAMinutes(5, 25, 3))
}

func TestETAMinutes_Monotonic(t *testing.T) {
	prev := -1
	for _, d := range []float64{0, 1, 2.5, 5, 7.3, 10, 14.9} {
		eta := geo.ETAMinutes(d, 25, 3)
		assert.GreaterOrEqual(t, eta, prev)
		prev = eta
	}
}

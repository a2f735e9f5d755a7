package geo

import (
	"crypto/md5"
	"math"
	"math/big"
)

var big360 = big.NewInt(360)

// SeedHash interprets the MD5 digest of seed as an unsigned 128-bit integer.
func SeedHash(seed string) *big.Int {
	sum := md5.Sum([]byte(seed))
	return new(big.Int).SetBytes(sum[:])
}

// DeterministicOffset derives a point near origin from seed.
//
// The bearing is hash mod 360 degrees and the distance is
// minKm + ((hash div 360) mod int(maxKm-minKm+1)) kilometres, converted to
// degrees at 111 km per degree and applied as cos(bearing) to latitude and
// sin(bearing) to longitude.  The same seed always yields the same point, and
// the result never equals origin when minKm > 0.
func DeterministicOffset(origin Point, seed string, minKm, maxKm float64) Point {
	h := SeedHash(seed)

	quo, bearing := new(big.Int).QuoRem(h, big360, new(big.Int))

	span := int64(maxKm - minKm + 1)
	if span < 1 {
		span = 1
	}
	steps := new(big.Int).Mod(quo, big.NewInt(span))

	distanceKm := minKm + float64(steps.Int64())
	deg := distanceKm / KmPerDegree
	rad := toRadians(float64(bearing.Int64()))

	return Point{
		Lat: origin.Lat + deg*math.Cos(rad),
		Lng: origin.Lng + deg*math.Sin(rad),
	}
}

//Personal.AI order the ending

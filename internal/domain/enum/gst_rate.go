package enum

// GSTRate is a flat GST percentage applied to the post-discount subtotal.
// Only the standard slabs are accepted; zero means GST does not apply.
type GSTRate float64

const (
	GSTRateNone        GSTRate = 0
	GSTRateThree       GSTRate = 3
	GSTRateFive        GSTRate = 5
	GSTRateTwelve      GSTRate = 12
	GSTRateEighteen    GSTRate = 18
	GSTRateTwentyEight GSTRate = 28
)

// Valid reports whether the rate is one of the accepted slabs.
func (r GSTRate) Valid() bool {
	switch r {
	case GSTRateNone, GSTRateThree, GSTRateFive, GSTRateTwelve, GSTRateEighteen, GSTRateTwentyEight:
		return true
	}
	return false
}

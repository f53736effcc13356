package uavenv

import "math"

// Comm holds the channel model parameters. The achievable rate between the
// UAV and a receiver is the Shannon rate over a distance-based pathloss with
// a shadowing attenuation that depends on line-of-sight: cells whose sight
// line to a receiver crosses an obstacle use BetaNLOS, which is markedly
// smaller than BetaLOS.
type Comm struct {
	// FreqHz is the operating frequency. Informational; the pathloss model
	// below is distance-only.
	FreqHz float64

	// PathlossExp is the pathloss exponent alpha.
	PathlossExp float64

	// BetaLOS and BetaNLOS are the shadowing attenuation factors applied to
	// line-of-sight and blocked cells respectively.
	BetaLOS  float64
	BetaNLOS float64

	// NoiseDBmPerHz is the thermal noise density in dBm/Hz.
	NoiseDBmPerHz float64

	// TxPowerDBm is the transmit power in dBm.
	TxPowerDBm float64
}

// DefaultComm returns the 2.4 GHz parameters of the reference scenario.
func DefaultComm() Comm {
	return Comm{
		FreqHz:        2.4e9,
		PathlossExp:   2,
		BetaLOS:       1,
		BetaNLOS:      0.01,
		NoiseDBmPerHz: -174,
		TxPowerDBm:    15,
	}
}

// Rate returns the Shannon rate in bps/Hz at distance d meters.
func (c Comm) Rate(d float64, blocked bool) float64 {
	beta := c.BetaLOS
	if blocked {
		beta = c.BetaNLOS
	}
	pathloss := math.Pow(d, -c.PathlossExp) * beta
	noise := dbmToLinear(c.NoiseDBmPerHz)
	tx := dbmToLinear(c.TxPowerDBm)
	snr := tx * pathloss / noise
	return math.Log2(1 + snr)
}

func dbmToLinear(dbm float64) float64 {
	return math.Pow(10, dbm/10) / 1000
}

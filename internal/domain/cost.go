package domain

// Monetary cost model: a per-kilometer rate plus a fixed amount for every
// truck dispatched.
type CostParams struct {
	PerKm    float64
	PerTruck float64
}

// TripCost converts accumulated route distance and dispatched truck count
// into money.
func (p CostParams) TripCost(distance float64, trucks int) float64 {
	return distance*p.PerKm + float64(trucks)*p.PerTruck
}

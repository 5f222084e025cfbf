package model

// ChargeRequest is emitted by the EV engine when a vehicle's state of
// charge drops to the configured threshold. It is immutable once created
// and consumed exactly once by being enqueued in a region environment.
type ChargeRequest struct {
	ID        string   // unique request id
	VehicleID string
	Location  GeoPoint
	Region    string // empty when no region contains the location
	Timestamp string
	SoC       float64 // state of charge at creation, in [0,1]
}

// Routed reports whether the request resolved to a region.
func (r ChargeRequest) Routed() bool { return r.Region != "" }

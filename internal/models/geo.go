package models

// GeoStatus is the response of the geoblock status endpoint. String fields
// may be empty when the endpoint cannot attribute the request.
type GeoStatus struct {
	Blocked bool   `json:"blocked"`
	IP      string `json:"ip"`
	Country string `json:"country"`
	Region  string `json:"region"`
}

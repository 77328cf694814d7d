package model

// RouteRequest carries the free-text endpoints typed by the user
type RouteRequest struct {
	Origin      string
	Destination string
}

// RouteResult is the read-only answer from the mapping service
type RouteResult struct {
	DistanceText   string   `json:"distance"`
	DurationText   string   `json:"duration"`
	DistanceMeters float64  `json:"distanceMeters"`
	DurationSecs   float64  `json:"durationSeconds"`
	Path           []LatLng `json:"path,omitempty"`
}

// MapView is the starting viewport handed to map renderers
type MapView struct {
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom"`
}

// DefaultMapView centers on the Eiffel Tower at street zoom
func DefaultMapView() MapView {
	return MapView{Center: LatLng{Lat: 48.8584, Lng: 2.2945}, Zoom: 15}
}

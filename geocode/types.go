package geocode

import "fmt"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports the degenerate (0,0) sentinel.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lng)
}

// Source names the tier that produced a result.
type Source string

const (
	SourceSaved         Source = "saved"
	SourceLocalDatabase Source = "localDatabase"
	SourceProviderA     Source = "externalProviderA"
	SourceProviderB     Source = "externalProviderB"
	SourceFallback      Source = "fallback"
)

// Accuracy grades a result.
type Accuracy string

const (
	AccuracyExact       Accuracy = "exact"
	AccuracyDistrict    Accuracy = "district"
	AccuracyRegion      Accuracy = "region"
	AccuracyApproximate Accuracy = "approximate"
)

// Result is a resolved coordinate with its provenance.
type Result struct {
	Coordinates Coordinates `json:"coordinates"`
	Source      Source      `json:"source"`
	Accuracy    Accuracy    `json:"accuracy"`
}

// LowAccuracy reports results coarser than district level.
func (r Result) LowAccuracy() bool {
	return r.Accuracy == AccuracyRegion || r.Accuracy == AccuracyApproximate
}

// Location is an address descriptor. No field is required.
type Location struct {
	Region   string `json:"region,omitempty"`
	District string `json:"district,omitempty"`
	Ward     string `json:"ward,omitempty"`
	Street   string `json:"street,omitempty"`
}

// BoundingBox is a lat/lng rectangle.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Contains reports whether c lies inside the box, edges included.
func (b BoundingBox) Contains(c Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lng >= b.MinLng && c.Lng <= b.MaxLng
}

// TanzaniaBounds encloses mainland Tanzania, Zanzibar and Pemba.
var TanzaniaBounds = BoundingBox{MinLat: -11.75, MaxLat: -0.95, MinLng: 29.3, MaxLng: 40.5}

// DarEsSalaam is the default coordinate: Dar es Salaam city centre.
var DarEsSalaam = Coordinates{Lat: -6.7924, Lng: 39.2083}

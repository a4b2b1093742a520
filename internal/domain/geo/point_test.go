package geo

import (
	"math"
	"testing"
)

func almost(a, b, eps float64) bool {
	if a > b {
		return a-b < eps
	}
	return b-a < eps
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in     string
		want   Point
		wantOK bool
	}{
		{"(121.0244,14.5547)", Point{Lat: 14.5547, Lng: 121.0244}, true},
		{"( 123.8854 , 10.3157 )", Point{Lat: 10.3157, Lng: 123.8854}, true},
		{"125.6128,7.0731", Point{Lat: 7.0731, Lng: 125.6128}, true},
		{"(-74.006,40.7128)", Point{Lat: 40.7128, Lng: -74.006}, true},
		{"POINT(121,14)", Point{Lat: 14, Lng: 121}, true},
		{"", Point{}, false},
		{"(abc,def)", Point{}, false},
		{"(121.0)", Point{}, false},
		{"(10,95)", Point{}, false}, // latitude out of range
	}
	for _, tt := range tests {
		got, ok := ParsePoint(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParsePoint(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && (!almost(got.Lat, tt.want.Lat, 1e-9) || !almost(got.Lng, tt.want.Lng, 1e-9)) {
			t.Errorf("ParsePoint(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPointString_Roundtrip(t *testing.T) {
	p := Point{Lat: 14.5547, Lng: 121.0244}
	if p.String() != "(121.0244,14.5547)" {
		t.Fatalf("unexpected format %q", p.String())
	}
	back, ok := ParsePoint(p.String())
	if !ok || back != p {
		t.Fatalf("roundtrip: got %+v ok=%v", back, ok)
	}
}

func TestHaversineKm_SamePoint(t *testing.T) {
	p := Point{Lat: 14.5995, Lng: 120.9842}
	if d := HaversineKm(p, p); d != 0 {
		t.Fatalf("want 0, got %f", d)
	}
}

func TestHaversineKm_ManilaCebu(t *testing.T) {
	// Manila to Cebu City: ~570 km
	manila := Point{Lat: 14.5995, Lng: 120.9842}
	cebu := Point{Lat: 10.3157, Lng: 123.8854}
	d := HaversineKm(manila, cebu)
	if !almost(d, 570, 15) {
		t.Fatalf("want ~570km, got %.1fkm", d)
	}
}

func TestHaversineKm_Antipodal(t *testing.T) {
	d := HaversineKm(Point{Lat: 0, Lng: 0}, Point{Lat: 0, Lng: 180})
	if !almost(d, math.Pi*EarthRadiusKm, 1e-6) {
		t.Fatalf("want ~%.3fkm, got %.3fkm", math.Pi*EarthRadiusKm, d)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := Point{Lat: 14.5547, Lng: 121.0244}
	b := Point{Lat: 14.6760, Lng: 121.0437}
	if !almost(HaversineKm(a, b), HaversineKm(b, a), 1e-9) {
		t.Fatal("distance should be symmetric")
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		lat, lng float64
		valid    bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{0, 181, false},
		{-91, 0, false},
		{0, -181, false},
	}
	for _, tt := range tests {
		if got := ValidateCoordinates(tt.lat, tt.lng); got != tt.valid {
			t.Errorf("ValidateCoordinates(%f, %f) = %v, want %v", tt.lat, tt.lng, got, tt.valid)
		}
	}
}

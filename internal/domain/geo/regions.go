package geo

import "strings"

// Region codes for the Philippine administrative regions.
const (
	RegionNCR      = "NCR"
	RegionCAR      = "CAR"
	RegionI        = "Region I"
	RegionII       = "Region II"
	RegionIII      = "Region III"
	RegionIVA      = "Region IV-A"
	RegionMIMAROPA = "MIMAROPA"
	RegionV        = "Region V"
	RegionVI       = "Region VI"
	RegionVII      = "Region VII"
	RegionVIII     = "Region VIII"
	RegionIX       = "Region IX"
	RegionX        = "Region X"
	RegionXI       = "Region XI"
	RegionXII      = "Region XII"
	RegionXIII     = "Region XIII"
	RegionBARMM    = "BARMM"
)

// regionPlaces lists, per region, the region aliases, provinces and major cities
// that resolve to it. Entries are lower case.
var regionPlaces = map[string][]string{
	RegionNCR: {
		"ncr", "metro manila", "national capital region",
		"manila", "quezon city", "makati", "makati city", "taguig", "taguig city",
		"pasig", "pasig city", "mandaluyong", "san juan", "pasay", "paranaque", "parañaque",
		"las pinas", "las piñas", "muntinlupa", "marikina", "caloocan", "malabon",
		"navotas", "valenzuela", "pateros", "bgc",
	},
	RegionCAR: {
		"car", "cordillera", "cordillera administrative region",
		"abra", "apayao", "benguet", "ifugao", "kalinga", "mountain province", "baguio", "baguio city",
	},
	RegionI: {
		"region i", "region 1", "ilocos", "ilocos region",
		"ilocos norte", "ilocos sur", "la union", "pangasinan", "laoag", "vigan",
		"san fernando, la union", "dagupan",
	},
	RegionII: {
		"region ii", "region 2", "cagayan valley",
		"batanes", "cagayan", "isabela", "nueva vizcaya", "quirino", "tuguegarao",
	},
	RegionIII: {
		"region iii", "region 3", "central luzon",
		"aurora", "bataan", "bulacan", "nueva ecija", "pampanga", "tarlac", "zambales",
		"angeles", "angeles city", "olongapo", "malolos", "san fernando, pampanga", "clark",
	},
	RegionIVA: {
		"region iv-a", "region 4a", "region 4-a", "calabarzon",
		"cavite", "laguna", "batangas", "rizal", "quezon", "lucena",
		"antipolo", "calamba", "santa rosa", "bacoor", "dasmarinas", "dasmariñas", "imus",
		"lipa", "batangas city", "tagaytay", "san pablo",
	},
	RegionMIMAROPA: {
		"mimaropa", "region iv-b", "region 4b", "region 4-b",
		"marinduque", "occidental mindoro", "oriental mindoro", "palawan", "romblon",
		"puerto princesa", "calapan",
	},
	RegionV: {
		"region v", "region 5", "bicol", "bicol region",
		"albay", "camarines norte", "camarines sur", "catanduanes", "masbate", "sorsogon",
		"legazpi", "naga", "naga city",
	},
	RegionVI: {
		"region vi", "region 6", "western visayas",
		"aklan", "antique", "capiz", "guimaras", "iloilo", "negros occidental",
		"iloilo city", "bacolod", "bacolod city", "boracay",
	},
	RegionVII: {
		"region vii", "region 7", "central visayas",
		"bohol", "cebu", "negros oriental", "siquijor",
		"cebu city", "mandaue", "lapu-lapu", "lapu-lapu city", "dumaguete", "tagbilaran",
	},
	RegionVIII: {
		"region viii", "region 8", "eastern visayas",
		"biliran", "eastern samar", "leyte", "northern samar", "samar", "southern leyte",
		"tacloban", "ormoc",
	},
	RegionIX: {
		"region ix", "region 9", "zamboanga peninsula",
		"zamboanga del norte", "zamboanga del sur", "zamboanga sibugay", "zamboanga city",
		"dipolog", "pagadian",
	},
	RegionX: {
		"region x", "region 10", "northern mindanao",
		"bukidnon", "camiguin", "lanao del norte", "misamis occidental", "misamis oriental",
		"cagayan de oro", "iligan",
	},
	RegionXI: {
		"region xi", "region 11", "davao region",
		"davao de oro", "davao del norte", "davao del sur", "davao occidental", "davao oriental",
		"davao", "davao city", "tagum",
	},
	RegionXII: {
		"region xii", "region 12", "soccsksargen",
		"cotabato", "sarangani", "south cotabato", "sultan kudarat",
		"general santos", "koronadal",
	},
	RegionXIII: {
		"region xiii", "region 13", "caraga",
		"agusan del norte", "agusan del sur", "dinagat islands", "surigao del norte", "surigao del sur",
		"butuan", "surigao city",
	},
	RegionBARMM: {
		"barmm", "bangsamoro", "armm",
		"basilan", "lanao del sur", "maguindanao", "sulu", "tawi-tawi",
		"cotabato city", "marawi",
	},
}

var placeToRegion = buildPlaceIndex()

func buildPlaceIndex() map[string]string {
	idx := make(map[string]string, 256)
	for region, places := range regionPlaces {
		idx[strings.ToLower(region)] = region
		for _, p := range places {
			idx[p] = region
		}
	}
	return idx
}

// RegionOf resolves a free-text place (province, city or region name) to a region code.
// The full string is tried first, then each comma-separated part from the most
// specific one, so "Makati City, Metro Manila" resolves to NCR.
func RegionOf(place string) (string, bool) {
	key := normalizePlace(place)
	if key == "" {
		return "", false
	}
	if r, ok := placeToRegion[key]; ok {
		return r, true
	}
	for _, part := range strings.Split(key, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if r, ok := placeToRegion[part]; ok {
			return r, true
		}
	}
	return "", false
}

// SameRegion reports whether two region labels name the same region,
// accepting either a region code or any alias RegionOf understands.
func SameRegion(a, b string) bool {
	ra, okA := RegionOf(a)
	rb, okB := RegionOf(b)
	if okA && okB {
		return ra == rb
	}
	na, nb := normalizePlace(a), normalizePlace(b)
	return na != "" && na == nb
}

func normalizePlace(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

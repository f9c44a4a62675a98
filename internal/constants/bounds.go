package constants

// Input bounds for the profile and log forms.
const (
	MinLogCount = 1
	MaxLogCount = 20

	MinAvgPerDay = 1
	MaxAvgPerDay = 100

	MinNicotineMg = 0.1
	MaxNicotineMg = 2.0

	MinTarMg = 1
	MaxTarMg = 20

	MinStartYear = 1970

	// Draft profile shown before the first save
	DraftStartMonth = 0
	DraftStartYear  = 2015
	DraftAvgPerDay  = 10
	DraftPerPack    = 20
	DraftNicotineMg = 0.8
	DraftTarMg      = 8
)

// PackSizes lists the supported units-per-pack values.
var PackSizes = []int{10, 20}

package bird

// Sentinel state codes, outside the range of real protocol states.
const (
	StateUnknown  = 90000
	StateNoRoutes = 90001
)

var stateCodes = map[string]int{
	"down":  0,
	"start": 1,
	"wait":  2,
	"feed":  3,
	"up":    4,
	"stop":  5,
	"flush": 6,
}

// LookupState maps a protocol state string to its numeric code.
func LookupState(s string) (int, bool) {
	code, ok := stateCodes[s]
	return code, ok
}

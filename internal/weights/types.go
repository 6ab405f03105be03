package weights

import (
	"fmt"
	"math"
	"strconv"
)

// Record is one side (old or new) of one extrinsic's declared weight.
// A zero RefTime means no base term was found; a nil MinExecTime means
// no measured execution time was found. The multiplier maps hold only
// strictly positive values: zero-valued matches are dropped during
// extraction, not stored.
type Record struct {
	RefTime          uint64            `json:"refTime"`
	ProofSize        uint64            `json:"proofSize"`
	MinExecTime      *uint64           `json:"minExecTime,omitempty"`
	RefMultipliers   map[string]uint64 `json:"refMultipliers,omitempty"`
	ProofMultipliers map[string]uint64 `json:"proofMultipliers,omitempty"`
	Reads            uint64            `json:"reads,omitempty"`
	ReadMultipliers  map[string]uint64 `json:"readMultipliers,omitempty"`
}

// hasWeightData reports whether the record carries anything worth
// comparing: a base ref_time, a measured execution time, or at least
// one per-variable ref_time multiplier.
func (r Record) hasWeightData() bool {
	return r.RefTime > 0 || r.MinExecTime != nil || len(r.RefMultipliers) > 0
}

// Change identifies one extrinsic in one runtime's weight file,
// together with its old and new weight declarations.
type Change struct {
	Runtime  string `json:"runtime"`
	Pallet   string `json:"pallet"`
	Function string `json:"function"`
	Old      Record `json:"old"`
	New      Record `json:"new"`
}

// Label renders the conventional "[runtime] pallet::function"
// identifier used both in report sections and as a stable sort key.
func (c Change) Label() string {
	return fmt.Sprintf("[%s] %s::%s", c.Runtime, c.Pallet, c.Function)
}

// Percent is a relative change between an old and a new value. A
// weight term that appears where none existed before has no finite
// percent; it is represented as +Inf and sorts as maximal.
type Percent float64

// Appeared marks a term with no prior value.
var Appeared = Percent(math.Inf(1))

// Removed is the percent assigned to a multiplier present on the old
// side and absent from the new one.
const Removed = Percent(-100)

// IsAppeared reports whether p is the appeared sentinel.
func (p Percent) IsAppeared() bool {
	return math.IsInf(float64(p), 1)
}

// magnitude is the absolute change used for significance ordering.
// Appeared is +Inf and therefore always ranks first.
func (p Percent) magnitude() float64 {
	return math.Abs(float64(p))
}

// MarshalJSON renders the appeared sentinel as the string "new", since
// JSON has no infinity literal.
func (p Percent) MarshalJSON() ([]byte, error) {
	if p.IsAppeared() {
		return []byte(`"new"`), nil
	}
	return []byte(strconv.FormatFloat(float64(p), 'f', -1, 64)), nil
}

// PercentChange computes the relative change from oldVal to newVal.
// When oldVal is zero the result is Appeared for any positive newVal
// and 0 otherwise: a newly introduced cost term is always flagged,
// regardless of the numeric threshold.
func PercentChange(oldVal, newVal uint64) Percent {
	if oldVal == 0 {
		if newVal > 0 {
			return Appeared
		}
		return 0
	}
	return Percent((float64(newVal) - float64(oldVal)) / float64(oldVal) * 100)
}

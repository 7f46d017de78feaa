package domain

type FeatureKind string

const (
	KindEpic    FeatureKind = "epic"
	KindFeature FeatureKind = "feature"
)

// ValidFeatureKinds is the canonical set of accepted feature kind strings.
var ValidFeatureKinds = map[string]bool{
	"epic": true, "feature": true,
}

// EpicMode selects how an epic's own allocations are accounted for when the
// epic has children.
type EpicMode string

const (
	// EpicIgnoreChildren skips an epic entirely whenever it has at least one
	// known child; the children are assumed to carry the load.
	EpicIgnoreChildren EpicMode = "ignore-if-has-children"
	// EpicGapFill lets an epic contribute load on days not covered by any of
	// its children.
	EpicGapFill EpicMode = "gap-fill"
)

// ValidEpicModes is the canonical set of accepted epic mode strings.
var ValidEpicModes = map[string]bool{
	string(EpicIgnoreChildren): true,
	string(EpicGapFill):        true,
}

// FieldName identifies an overridable feature field.
type FieldName string

const (
	FieldStart FieldName = "start"
	FieldEnd   FieldName = "end"
)

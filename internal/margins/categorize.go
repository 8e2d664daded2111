package margins

// Competitiveness category labels, widest margin first.
const (
	CategoryAnnihilation = "Annihilation"
	CategoryDominant     = "Dominant"
	CategoryStronghold   = "Stronghold"
	CategorySafe         = "Safe"
	CategoryLikely       = "Likely"
	CategoryLean         = "Lean"
	CategoryTilt         = "Tilt"
	CategoryTossup       = "Tossup"
)

// threshold pairs an inclusive lower bound with its label. A value sitting
// exactly on a boundary takes the larger category (5.50 is Likely, not
// Lean).
type threshold struct {
	min   float64
	label string
}

var thresholds = []threshold{
	{40.0, CategoryAnnihilation},
	{30.0, CategoryDominant},
	{20.0, CategoryStronghold},
	{10.0, CategorySafe},
	{5.5, CategoryLikely},
	{1.0, CategoryLean},
	{0.5, CategoryTilt},
	{0.0, CategoryTossup},
}

// codes and colors per category and side. Colors are the display layer's
// blue/red ramps; Tossup is shared.
var (
	demRamp = map[string]string{
		CategoryTilt:         "#e1f5fe",
		CategoryLean:         "#c6dbef",
		CategoryLikely:       "#9ecae1",
		CategorySafe:         "#6baed6",
		CategoryStronghold:   "#3182bd",
		CategoryDominant:     "#08519c",
		CategoryAnnihilation: "#08306b",
	}
	repRamp = map[string]string{
		CategoryTilt:         "#fee8c8",
		CategoryLean:         "#fcae91",
		CategoryLikely:       "#fb6a4a",
		CategorySafe:         "#ef3b2c",
		CategoryStronghold:   "#cb181d",
		CategoryDominant:     "#a50f15",
		CategoryAnnihilation: "#67000d",
	}
	demCodes = map[string]string{
		CategoryTilt:         "D_TILT",
		CategoryLean:         "D_LEAN",
		CategoryLikely:       "D_LIKELY",
		CategorySafe:         "D_SAFE",
		CategoryStronghold:   "D_STRONGHOLD",
		CategoryDominant:     "D_DOMINANT",
		CategoryAnnihilation: "D_ANNIHILATION",
	}
	repCodes = map[string]string{
		CategoryTilt:         "R_TILT",
		CategoryLean:         "R_LEAN",
		CategoryLikely:       "R_LIKELY",
		CategorySafe:         "R_SAFE",
		CategoryStronghold:   "R_STRONGHOLD",
		CategoryDominant:     "R_DOMINANT",
		CategoryAnnihilation: "R_ANNIHILATION",
	}
)

// Categorize maps an absolute margin percentage to its label. Total over
// [0, +inf): every input maps to exactly one label.
func Categorize(absMarginPct float64) string {
	if absMarginPct < 0 {
		absMarginPct = -absMarginPct
	}

	for _, t := range thresholds {
		if absMarginPct >= t.min {
			return t.label
		}
	}

	return CategoryTossup
}

// Categories returns the fixed label set, widest margin first.
func Categories() []string {
	out := make([]string, len(thresholds))
	for i, t := range thresholds {
		out[i] = t.label
	}

	return out
}

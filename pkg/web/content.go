package web

// Static demo content. None of it is derived from the loaded dataset.

// AgeGroupRow is one row of the illustrative age-group table.
type AgeGroupRow struct {
	Group                 string
	AverageCellSize       float64
	TissueTexture         float64
	CellSymmetry          float64
	CellShapeIrregularity float64
}

var ageGroups = []AgeGroupRow{
	{"20-40", 14, 18, 0.15, 0.20},
	{"40-60", 17, 21, 0.18, 0.25},
	{"60-80", 19, 24, 0.22, 0.30},
}

var regions = []string{"North America", "Europe", "Asia", "Africa", "South America"}

// casesPer100k is aligned with regions.
var casesPer100k = []float64{90, 85, 60, 45, 70}

var (
	years         = []float64{2000, 2005, 2010, 2015, 2020}
	globalCasesMM = []float64{1.0, 1.3, 1.6, 2.0, 2.3}
)

var funFacts = []string{
	"💡 Early detection of breast cancer increases survival rates by 95%.",
	"🌸 Regular check-ups and screenings are super important!",
	"🥦 A healthy lifestyle lowers breast cancer risk.",
	"👩‍⚕️ 1 in 8 women will be diagnosed with breast cancer in their lifetime.",
	"🧪 AI helps doctors analyze thousands of cases quickly!",
}

// Age slider bounds.
const (
	ageMin     = 20
	ageMax     = 90
	ageDefault = 40
)

// Package resfile loads KMA result (.res) files into detection records.
package resfile

// DefaultPattern and DefaultSuffix match the layout written by the upstream
// alignment step: results/<sample>_megares.res.
const (
	DefaultPattern = "results/*_megares.res"
	DefaultSuffix  = "_megares.res"
)

// Record is one gene hit for one sample. Values are copied out of the source
// row; a Record is never mutated after Read returns it.
type Record struct {
	Template         string
	Score            float64
	Expected         float64
	TemplateLength   int
	TemplateIdentity float64
	TemplateCoverage float64
	QueryIdentity    float64
	QueryCoverage    float64
	Depth            float64
	QValue           float64
	PValue           float64
	Sample           string
}

// Kind is the value type of a schema column.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	default:
		return "unknown"
	}
}

// Column describes one positional field of a .res row.
type Column struct {
	Name string
	Kind Kind
}

// Schema is the fixed column order of a .res row.
var Schema = []Column{
	{"Template", KindText},
	{"Score", KindFloat},
	{"Expected", KindFloat},
	{"Template_length", KindInt},
	{"Template_Identity", KindFloat},
	{"Template_Coverage", KindFloat},
	{"Query_Identity", KindFloat},
	{"Query_Coverage", KindFloat},
	{"Depth", KindFloat},
	{"q_value", KindFloat},
	{"p_value", KindFloat},
}

// NumFields is the exact number of tab-separated fields per data row.
var NumFields = len(Schema)

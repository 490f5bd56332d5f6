package weights

// ProjectType selects a preset weight distribution.
type ProjectType string

const (
	ProjectTypeRFP ProjectType = "RFP" // balanced
	ProjectTypeRFQ ProjectType = "RFQ" // economic-heavy
	ProjectTypeRFI ProjectType = "RFI" // informational only
)

// CategoryColors is the fixed rotating palette assigned to new categories.
var CategoryColors = []string{
	"#12b5b0", // teal
	"#f59e0b", // amber
	"#3b82f6", // blue
	"#8b5cf6", // purple
	"#ec4899", // pink
	"#10b981", // emerald
	"#f97316", // orange
	"#6366f1", // indigo
}

// NextColor returns the palette color for the n-th category.
func NextColor(n int) string {
	return CategoryColors[n%len(CategoryColors)]
}

// DefaultConfiguration returns the built-in balanced rubric. Criterion
// weights are relative (each category's criteria sum to 100).
func DefaultConfiguration() []Category {
	return Clone(defaultCategories)
}

// PresetConfiguration returns the rubric skewed toward a project type's
// priorities. RFQ reweights toward the economic category; RFI keeps only the
// informational categories. Unknown types fall back to the balanced default.
func PresetConfiguration(projectType ProjectType) []Category {
	switch projectType {
	case ProjectTypeRFQ:
		cats := Clone(defaultCategories)
		rfqWeights := map[string]float64{
			"technical":          25,
			"economic":           45,
			"execution":          10,
			"hse_compliance":     10,
			"esg_sustainability": 10,
		}
		for i := range cats {
			if w, ok := rfqWeights[cats[i].Name]; ok {
				cats[i].Weight = w
			}
		}
		return cats
	case ProjectTypeRFI:
		var cats []Category
		for _, c := range Clone(defaultCategories) {
			switch c.Name {
			case "technical":
				c.Weight = 60
			case "execution":
				c.Weight = 40
			default:
				continue
			}
			c.SortOrder = len(cats) + 1
			cats = append(cats, c)
		}
		return cats
	default:
		return DefaultConfiguration()
	}
}

var defaultCategories = []Category{
	{
		Name:                 "technical",
		DisplayName:          "Technical Completeness",
		DisplayNameLocalized: "Completitud Técnica",
		Weight:               30,
		Color:                "#12b5b0",
		SortOrder:            1,
		Criteria: []Criterion{
			{Name: "scope_facilities", DisplayName: "Scope of Facilities", DisplayNameLocalized: "Alcance de Instalaciones",
				Description: "Evaluation of the facilities and equipment included in the proposal",
				Weight:      33.33, Keywords: []string{"facilities", "plant", "equipment", "infrastructure"}, SortOrder: 1},
			{Name: "scope_work", DisplayName: "Scope of Work", DisplayNameLocalized: "Alcance de Trabajo",
				Description: "Evaluation of the work scope coverage and completeness",
				Weight:      33.33, Keywords: []string{"scope", "work", "activities", "tasks"}, SortOrder: 2},
			{Name: "deliverables_quality", DisplayName: "Deliverables Quality", DisplayNameLocalized: "Calidad de Entregables",
				Description: "Quality and completeness of proposed deliverables",
				Weight:      33.34, Keywords: []string{"deliverables", "documents", "quality", "standards"}, SortOrder: 3},
		},
	},
	{
		Name:                 "economic",
		DisplayName:          "Economic Competitiveness",
		DisplayNameLocalized: "Competitividad Económica",
		Weight:               30,
		Color:                "#f59e0b",
		SortOrder:            2,
		Criteria: []Criterion{
			{Name: "total_price", DisplayName: "Total Price", DisplayNameLocalized: "Precio Total",
				Description: "Competitiveness of the total proposed price",
				Weight:      42.86, Keywords: []string{"price", "cost", "total", "budget"}, SortOrder: 1},
			{Name: "price_breakdown", DisplayName: "Price Breakdown", DisplayNameLocalized: "Desglose de Precio",
				Description: "Transparency and detail of price breakdown",
				Weight:      22.86, Keywords: []string{"breakdown", "detail", "itemized", "line items"}, SortOrder: 2},
			{Name: "optionals_included", DisplayName: "Optionals Included", DisplayNameLocalized: "Opcionales Incluidos",
				Description: "Optional items included in base price",
				Weight:      20.00, Keywords: []string{"optionals", "extras", "additions", "included"}, SortOrder: 3},
			{Name: "capex_opex_methodology", DisplayName: "CAPEX/OPEX Methodology", DisplayNameLocalized: "Metodología CAPEX/OPEX",
				Description: "Clarity of CAPEX/OPEX classification methodology",
				Weight:      14.28, Keywords: []string{"capex", "opex", "methodology", "classification"}, SortOrder: 4},
		},
	},
	{
		Name:                 "execution",
		DisplayName:          "Execution Capability",
		DisplayNameLocalized: "Capacidad de Ejecución",
		Weight:               15,
		Color:                "#3b82f6",
		SortOrder:            3,
		Criteria: []Criterion{
			{Name: "schedule", DisplayName: "Schedule", DisplayNameLocalized: "Cronograma",
				Description: "Realism and achievability of proposed schedule",
				Weight:      40.00, Keywords: []string{"schedule", "timeline", "milestones", "planning"}, SortOrder: 1},
			{Name: "resources_allocation", DisplayName: "Resources Allocation", DisplayNameLocalized: "Asignación de Recursos",
				Description: "Adequacy of resources allocated per discipline",
				Weight:      30.00, Keywords: []string{"resources", "team", "staff", "personnel"}, SortOrder: 2},
			{Name: "exceptions", DisplayName: "Exceptions & Deviations", DisplayNameLocalized: "Excepciones y Desviaciones",
				Description: "Number and severity of exceptions and deviations",
				Weight:      30.00, Keywords: []string{"exceptions", "deviations", "exclusions", "clarifications"}, SortOrder: 3},
		},
	},
	{
		Name:                 "hse_compliance",
		DisplayName:          "HSE & Compliance",
		DisplayNameLocalized: "HSE y Cumplimiento",
		Weight:               15,
		Color:                "#8b5cf6",
		SortOrder:            4,
		Criteria: []Criterion{
			{Name: "safety_studies", DisplayName: "Safety Studies", DisplayNameLocalized: "Estudios de Seguridad",
				Description: "Inclusion and quality of safety studies",
				Weight:      53.33, Keywords: []string{"safety", "hazop", "risk", "studies"}, SortOrder: 1},
			{Name: "regulatory_compliance", DisplayName: "Regulatory Compliance", DisplayNameLocalized: "Cumplimiento Normativo",
				Description: "Compliance with regulatory requirements",
				Weight:      46.67, Keywords: []string{"regulatory", "compliance", "permits", "legal"}, SortOrder: 2},
		},
	},
	{
		Name:                 "esg_sustainability",
		DisplayName:          "ESG & Sustainability",
		DisplayNameLocalized: "ESG y Sostenibilidad",
		Weight:               10,
		Color:                "#10b981",
		SortOrder:            5,
		Criteria: []Criterion{
			{Name: "environmental_management", DisplayName: "Environmental Management", DisplayNameLocalized: "Gestión Ambiental",
				Description: "Environmental certifications (ISO 14001), carbon footprint reduction, energy efficiency",
				Weight:      40.00, Keywords: []string{"environmental", "iso 14001", "carbon", "emissions", "energy"}, SortOrder: 1},
			{Name: "social_responsibility", DisplayName: "Social Responsibility", DisplayNameLocalized: "Responsabilidad Social",
				Description: "Labor practices, diversity & inclusion, community impact",
				Weight:      30.00, Keywords: []string{"social", "labor", "diversity", "inclusion", "community"}, SortOrder: 2},
			{Name: "governance_ethics", DisplayName: "Governance & Ethics", DisplayNameLocalized: "Gobernanza y Ética",
				Description: "Anti-corruption policies, transparency, ethical supply chain",
				Weight:      30.00, Keywords: []string{"governance", "ethics", "anti-corruption", "transparency"}, SortOrder: 3},
		},
	},
}

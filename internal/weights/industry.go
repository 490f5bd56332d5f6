package weights

// IndustryTemplate is a named starting rubric skewed toward one sector's
// evaluation priorities.
type IndustryTemplate struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Categories  []Category `json:"categories"`
}

// IndustryTemplates returns the built-in sector rubrics. Criterion weights
// are relative, like every stored configuration.
func IndustryTemplates() []IndustryTemplate {
	out := make([]IndustryTemplate, len(industryTemplates))
	for i, t := range industryTemplates {
		out[i] = t
		out[i].Categories = Clone(t.Categories)
	}
	return out
}

func industryCategory(sortOrder int, name, displayName string, weight float64, color string, criteria ...Criterion) Category {
	for i := range criteria {
		criteria[i].SortOrder = i + 1
	}
	return Category{
		Name:        name,
		DisplayName: displayName,
		Weight:      weight,
		Color:       color,
		SortOrder:   sortOrder,
		Criteria:    criteria,
	}
}

func industryCriterion(name, displayName string, weight Relative, keywords ...string) Criterion {
	return Criterion{Name: name, DisplayName: displayName, Weight: weight, Keywords: keywords}
}

var industryTemplates = []IndustryTemplate{
	{
		ID:          "oil_gas",
		Name:        "Oil & Gas / Energy",
		Description: "HSE-heavy evaluation for energy sector projects",
		Categories: []Category{
			industryCategory(1, "technical", "Technical Completeness", 30, "#12b5b0",
				industryCriterion("scope_facilities", "Scope of Facilities", 35, "facilities", "plant", "equipment"),
				industryCriterion("scope_work", "Scope of Work", 35, "scope", "work", "activities"),
				industryCriterion("deliverables_quality", "Deliverables Quality", 30, "deliverables", "quality"),
			),
			industryCategory(2, "economic", "Economic Competitiveness", 25, "#f59e0b",
				industryCriterion("total_price", "Total Price", 40, "price", "cost"),
				industryCriterion("price_breakdown", "Price Breakdown", 30, "breakdown", "detail"),
				industryCriterion("capex_opex", "CAPEX/OPEX Methodology", 30, "capex", "opex"),
			),
			industryCategory(3, "hse_compliance", "HSE & Compliance", 25, "#ef4444",
				industryCriterion("safety_studies", "Safety Studies (HAZOP, SIL)", 40, "hazop", "safety", "sil"),
				industryCriterion("regulatory_compliance", "Regulatory Compliance", 30, "regulatory", "permits"),
				industryCriterion("environmental_plan", "Environmental Plan", 30, "environmental", "emissions", "waste"),
			),
			industryCategory(4, "execution", "Execution & Experience", 20, "#3b82f6",
				industryCriterion("schedule", "Schedule & Milestones", 35, "schedule", "milestones"),
				industryCriterion("resources", "Resources & Team", 35, "resources", "team", "personnel"),
				industryCriterion("track_record", "Track Record in O&G", 30, "experience", "references"),
			),
		},
	},
	{
		ID:          "telecom",
		Name:        "Telecommunications",
		Description: "SLA and technology-focused evaluation",
		Categories: []Category{
			industryCategory(1, "technical", "Technical Solution", 35, "#12b5b0",
				industryCriterion("architecture", "Architecture & Design", 30, "architecture", "design", "network"),
				industryCriterion("scalability", "Scalability & Performance", 25, "scalability", "performance", "capacity"),
				industryCriterion("technology_stack", "Technology Stack", 25, "technology", "stack", "5G", "fiber"),
				industryCriterion("integration", "Integration Capability", 20, "integration", "API", "interoperability"),
			),
			industryCategory(2, "economic", "Economic Competitiveness", 25, "#f59e0b",
				industryCriterion("total_price", "Total Cost of Ownership", 50, "tco", "price", "cost"),
				industryCriterion("licensing_model", "Licensing Model", 25, "license", "subscription"),
				industryCriterion("payment_terms", "Payment Terms", 25, "payment", "terms", "financing"),
			),
			industryCategory(3, "sla_support", "SLA & Support", 25, "#8b5cf6",
				industryCriterion("sla_availability", "Availability SLA", 40, "availability", "uptime", "sla"),
				industryCriterion("response_time", "Response & Resolution Time", 30, "response", "resolution"),
				industryCriterion("support_model", "Support Model (24/7)", 30, "support", "noc"),
			),
			industryCategory(4, "execution", "Deployment & Execution", 15, "#3b82f6",
				industryCriterion("deployment_plan", "Deployment Plan", 50, "deployment", "rollout", "migration"),
				industryCriterion("team_experience", "Team & References", 50, "team", "references", "experience"),
			),
		},
	},
	{
		ID:          "aerospace_defense",
		Name:        "Aerospace & Defense",
		Description: "Quality and certification-heavy evaluation",
		Categories: []Category{
			industryCategory(1, "technical", "Technical Compliance", 35, "#12b5b0",
				industryCriterion("technical_solution", "Technical Solution", 30, "solution", "design", "engineering"),
				industryCriterion("certifications", "Certifications (AS9100, NADCAP)", 25, "AS9100", "NADCAP", "certification"),
				industryCriterion("quality_system", "Quality Management System", 25, "quality", "QMS", "inspection"),
				industryCriterion("configuration_mgmt", "Configuration Management", 20, "configuration", "traceability"),
			),
			industryCategory(2, "economic", "Economic Offer", 20, "#f59e0b",
				industryCriterion("unit_price", "Unit Price", 50, "price", "unit", "cost"),
				industryCriterion("nrc_rc", "NRC/RC Breakdown", 30, "nrc", "recurring"),
				industryCriterion("payment_milestones", "Payment Milestones", 20, "milestones", "payment"),
			),
			industryCategory(3, "supply_chain", "Supply Chain & Logistics", 20, "#ec4899",
				industryCriterion("lead_time", "Lead Time", 40, "lead time", "delivery"),
				industryCriterion("supply_chain_risk", "Supply Chain Risk", 35, "supply", "risk", "single source"),
				industryCriterion("logistics", "Logistics & Packaging", 25, "logistics", "packaging", "shipping"),
			),
			industryCategory(4, "compliance", "Regulatory & Export Control", 25, "#8b5cf6",
				industryCriterion("export_control", "Export Control (ITAR/EAR)", 35, "ITAR", "EAR", "export"),
				industryCriterion("regulatory", "Regulatory Compliance", 35, "regulatory", "EASA", "FAA"),
				industryCriterion("security_clearance", "Security Clearance", 30, "security", "clearance", "classified"),
			),
		},
	},
	{
		ID:          "construction",
		Name:        "Construction & Infrastructure",
		Description: "Schedule and safety-focused evaluation",
		Categories: []Category{
			industryCategory(1, "technical", "Technical Proposal", 30, "#12b5b0",
				industryCriterion("methodology", "Construction Methodology", 35, "methodology", "construction"),
				industryCriterion("design_quality", "Design Quality", 35, "design", "quality", "engineering"),
				industryCriterion("materials", "Materials & Equipment", 30, "materials", "equipment"),
			),
			industryCategory(2, "economic", "Economic Offer", 30, "#f59e0b",
				industryCriterion("total_price", "Total Price", 40, "price", "budget", "cost"),
				industryCriterion("unit_rates", "Unit Rates", 30, "unit", "rates", "breakdown"),
				industryCriterion("contingency", "Contingency & Variations", 30, "contingency", "variations", "claims"),
			),
			industryCategory(3, "schedule", "Schedule & Planning", 20, "#3b82f6",
				industryCriterion("master_schedule", "Master Schedule", 50, "schedule", "gantt", "timeline"),
				industryCriterion("critical_path", "Critical Path Analysis", 50, "critical path", "milestones", "float"),
			),
			industryCategory(4, "hse", "HSE & Quality", 20, "#ef4444",
				industryCriterion("safety_plan", "Safety Plan", 40, "safety", "plan", "risk"),
				industryCriterion("environmental", "Environmental Management", 30, "environmental", "waste", "emissions"),
				industryCriterion("quality_plan", "Quality Plan (ITP/ITR)", 30, "quality", "ITP", "inspection"),
			),
		},
	},
	{
		ID:          "pharma_healthcare",
		Name:        "Pharmaceutical & Healthcare",
		Description: "GxP compliance and validation-focused evaluation",
		Categories: []Category{
			industryCategory(1, "technical", "Technical & Scientific", 30, "#12b5b0",
				industryCriterion("technical_approach", "Technical Approach", 35, "technical", "approach", "solution"),
				industryCriterion("validation", "Validation Strategy (IQ/OQ/PQ)", 35, "validation", "qualification"),
				industryCriterion("documentation", "Documentation & Traceability", 30, "documentation", "traceability", "audit trail"),
			),
			industryCategory(2, "regulatory", "Regulatory & GxP", 25, "#8b5cf6",
				industryCriterion("gmp_compliance", "GMP Compliance", 40, "GMP", "compliance", "FDA", "EMA"),
				industryCriterion("regulatory_experience", "Regulatory Experience", 30, "regulatory", "approval", "submission"),
				industryCriterion("data_integrity", "Data Integrity (ALCOA+)", 30, "data integrity", "ALCOA", "electronic records"),
			),
			industryCategory(3, "economic", "Economic Offer", 25, "#f59e0b",
				industryCriterion("total_price", "Total Price", 45, "price", "cost", "total"),
				industryCriterion("cost_breakdown", "Cost Breakdown", 30, "breakdown", "detail", "itemized"),
				industryCriterion("lifecycle_cost", "Lifecycle Cost", 25, "lifecycle", "maintenance"),
			),
			industryCategory(4, "execution", "Project Execution", 20, "#3b82f6",
				industryCriterion("project_plan", "Project Plan", 35, "plan", "schedule", "milestones"),
				industryCriterion("team_qualifications", "Team Qualifications", 35, "team", "qualifications", "experience"),
				industryCriterion("change_control", "Change Control Process", 30, "change control", "deviation", "CAPA"),
			),
		},
	},
}

package static

import "github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"

var homeStats = []domain.Stat{
	{Title: "Total Inspections", Value: "15,432", Change: 12.5},
	{Title: "High-Risk Properties", Value: "1,845", Change: 3.2},
	{Title: "Avg. Risk Score", Value: "42", Change: -5.1},
	{Title: "Active Alerts", Value: "127", Change: 8.7},
}

var recentInspections = []domain.RecentInspection{
	{PropertyID: "PROP-2023-001", Address: "12 Lotus Street, Bengaluru", Date: "2023-05-15", RiskScore: 72, Status: "High Risk", StatusSeverity: "high"},
	{PropertyID: "PROP-2023-002", Address: "9 River View, Hyderabad", Date: "2023-05-14", RiskScore: 88, Status: "Critical", StatusSeverity: "critical"},
	{PropertyID: "PROP-2023-003", Address: "78 Green Apartments, Mumbai", Date: "2023-05-13", RiskScore: 18, Status: "Low Risk", StatusSeverity: "low"},
	{PropertyID: "PROP-2023-004", Address: "45 Tech Park, Electronic City", Date: "2023-05-12", RiskScore: 45, Status: "Medium Risk", StatusSeverity: "medium"},
	{PropertyID: "PROP-2023-005", Address: "23 Villa Heights, Whitefield", Date: "2023-05-10", RiskScore: 5, Status: "Safe", StatusSeverity: "low"},
}

var propertyReports = []domain.PropertyReport{
	{
		ID:             "1",
		Name:           "Sunrise Apartments",
		Address:        "123 Main St, Bengaluru",
		Type:           "Apartment",
		YearBuilt:      2015,
		LastInspection: "2023-10-15",
		RiskScore:      78,
		RiskLevel:      "Medium",
		Issues: []domain.ReportIssue{
			{ID: 1, Category: "Electrical", Severity: "High", Description: "Exposed wiring in common area", Status: "Open"},
			{ID: 2, Category: "Structural", Severity: "Medium", Description: "Minor cracks in foundation", Status: "In Progress"},
			{ID: 3, Category: "Plumbing", Severity: "Low", Description: "Leaking pipe in basement", Status: "Open"},
		},
		Rooms: []domain.RoomRisk{
			{Room: "Living Room", Risk: "Low", Issues: 1},
			{Room: "Kitchen", Risk: "Medium", Issues: 2},
			{Room: "Bathroom", Risk: "High", Issues: 3},
			{Room: "Bedroom", Risk: "Low", Issues: 0},
			{Room: "Balcony", Risk: "Medium", Issues: 1},
		},
		Summary: "The property is in generally good condition but requires attention to electrical and plumbing issues. " +
			"The foundation shows minor settling but is not an immediate concern.",
		EstimatedCost:  125000,
		NextInspection: "2024-04-15",
		Documents: []domain.Document{
			{Name: "Full Inspection Report.pdf", Date: "2023-10-15", Size: "2.4 MB"},
			{Name: "Structural Analysis.pdf", Date: "2023-10-10", Size: "1.8 MB"},
			{Name: "Electrical Report.pdf", Date: "2023-10-05", Size: "1.2 MB"},
		},
	},
}

var reportRiskDistribution = []domain.RiskSlice{
	{Name: "Critical", Value: 2, Color: "#F44336"},
	{Name: "High", Value: 5, Color: "#FF9800"},
	{Name: "Medium", Value: 8, Color: "#FFC107"},
	{Name: "Low", Value: 12, Color: "#4CAF50"},
}

var cities = []domain.City{
	{Name: "Bengaluru", Inspections: 2847, HighRisk: 427, Violations: 182, Unsafe: 12},
	{Name: "Mumbai", Inspections: 3421, HighRisk: 512, Violations: 245, Unsafe: 18},
	{Name: "Delhi", Inspections: 3987, HighRisk: 678, Violations: 321, Unsafe: 25},
	{Name: "Hyderabad", Inspections: 2156, HighRisk: 289, Violations: 134, Unsafe: 8},
	{Name: "Chennai", Inspections: 1876, HighRisk: 256, Violations: 98, Unsafe: 5},
}

var regulatorRiskDistribution = []domain.RiskSlice{
	{Name: "Safe", Value: 45, Color: "#4CAF50"},
	{Name: "Low Risk", Value: 25, Color: "#8BC34A"},
	{Name: "Medium Risk", Value: 15, Color: "#FFC107"},
	{Name: "High Risk", Value: 10, Color: "#FF9800"},
	{Name: "Critical", Value: 5, Color: "#F44336"},
}

var builders = []domain.Builder{
	{ID: 1, Name: "Prestige Group", Score: 92, Projects: 234, HighRisk: 5, Status: "Compliant"},
	{ID: 2, Name: "Brigade Group", Score: 88, Projects: 156, HighRisk: 8, Status: "Compliant"},
	{ID: 3, Name: "Sobha Limited", Score: 85, Projects: 198, HighRisk: 12, Status: "Compliant"},
	{ID: 4, Name: "XYZ Builders", Score: 45, Projects: 67, HighRisk: 18, Status: "Under Review"},
	{ID: 5, Name: "ABC Construction", Score: 28, Projects: 89, HighRisk: 34, Status: "Flagged"},
}

var trendingIssues = []domain.TrendingIssue{
	{Issue: "Structural Cracks", CurrentMonth: 245, Change: 12.5},
	{Issue: "Electrical Hazards", CurrentMonth: 198, Change: 8.2},
	{Issue: "Plumbing Leaks", CurrentMonth: 167, Change: -3.4},
	{Issue: "Fire Safety Violations", CurrentMonth: 132, Change: 5.7},
	{Issue: "Ventilation Issues", CurrentMonth: 98, Change: -2.1},
}

var actionItems = []domain.ActionItem{
	{ID: 1, Title: "Issue notices to 5 non-compliant builders", Priority: domain.PriorityHigh},
	{ID: 2, Title: "Schedule safety audit for high-risk zones", Priority: domain.PriorityMedium},
	{ID: 3, Title: "Review 12 pending inspection reports", Priority: domain.PriorityHigh},
	{ID: 4, Title: "Update safety guidelines document", Priority: domain.PriorityLow},
	{ID: 5, Title: "Conduct training for new inspectors", Priority: domain.PriorityMedium},
}

var about = domain.About{
	Team: []domain.TeamMember{
		{Name: "Dr. Ananya Sharma", Role: "Chief Technology Officer", Bio: "PhD in Structural Engineering with 15+ years of experience in building safety assessment and risk analysis."},
		{Name: "Rahul Mehta", Role: "Lead AI Engineer", Bio: "Machine Learning expert specializing in computer vision applications for structural defect detection."},
		{Name: "Priya Patel", Role: "Head of Product", Bio: "Product management professional with a passion for creating user-centric solutions in the proptech space."},
		{Name: "Arjun Kumar", Role: "Senior Civil Engineer", Bio: "Licensed civil engineer with expertise in building codes and construction safety standards."},
	},
	Features: []domain.Feature{
		{Title: "Advanced AI Detection", Description: "Our proprietary algorithms can identify potential structural issues with 95% accuracy, long before they become visible to the naked eye."},
		{Title: "Comprehensive Reports", Description: "Get detailed, easy-to-understand reports with prioritized action items and estimated repair costs."},
		{Title: "Predictive Analytics", Description: "Our system predicts future maintenance needs based on current conditions and historical data."},
		{Title: "Regulatory Compliance", Description: "Stay compliant with local building codes and safety regulations with our up-to-date compliance tracking."},
	},
	Stats: []domain.AboutStat{
		{Value: "10,000+", Label: "Properties Assessed"},
		{Value: "98%", Label: "Accuracy Rate"},
		{Value: "50+", Label: "Cities Covered"},
		{Value: "4.9/5", Label: "User Rating"},
	},
}

package domain

import "errors"

var ErrNotFound = errors.New("catalog entry not found")

// Stat is one headline figure on the home page.
type Stat struct {
	Title  string  `json:"title" bson:"title"`
	Value  string  `json:"value" bson:"value"`
	Change float64 `json:"change" bson:"change"` // signed percentage
}

// RecentInspection is a row of the home page's latest inspections table.
type RecentInspection struct {
	PropertyID     string `json:"property_id" bson:"propertyId"`
	Address        string `json:"address" bson:"address"`
	Date           string `json:"date" bson:"date"`
	RiskScore      int    `json:"risk_score" bson:"riskScore"`
	Status         string `json:"status" bson:"status"`
	StatusSeverity string `json:"status_severity" bson:"statusSeverity"`
}

type HomeSummary struct {
	Stats             []Stat             `json:"stats"`
	RecentInspections []RecentInspection `json:"recent_inspections"`
}

// ReportIssue is a finding listed on a property report.
type ReportIssue struct {
	ID          int    `json:"id" bson:"id"`
	Category    string `json:"category" bson:"category"`
	Severity    string `json:"severity" bson:"severity"`
	Description string `json:"description" bson:"description"`
	Status      string `json:"status" bson:"status"`
}

type RoomRisk struct {
	Room   string `json:"room" bson:"room"`
	Risk   string `json:"risk" bson:"risk"`
	Issues int    `json:"issues" bson:"issues"`
}

type Document struct {
	Name string `json:"name" bson:"name"`
	Date string `json:"date" bson:"date"`
	Size string `json:"size" bson:"size"`
}

// PropertyReport is the detailed report of one inspected property. RiskScore
// is a condition score: higher is better.
type PropertyReport struct {
	ID             string        `json:"id" bson:"reportId"`
	Name           string        `json:"name" bson:"name"`
	Address        string        `json:"address" bson:"address"`
	Type           string        `json:"type" bson:"type"`
	YearBuilt      int           `json:"year_built" bson:"yearBuilt"`
	LastInspection string        `json:"last_inspection" bson:"lastInspection"`
	RiskScore      int           `json:"risk_score" bson:"riskScore"`
	RiskLevel      string        `json:"risk_level" bson:"riskLevel"`
	Issues         []ReportIssue `json:"issues" bson:"issues"`
	Rooms          []RoomRisk    `json:"rooms" bson:"rooms"`
	Summary        string        `json:"summary" bson:"summary"`
	EstimatedCost  float64       `json:"estimated_cost" bson:"estimatedCost"`
	NextInspection string        `json:"next_inspection" bson:"nextInspection"`
	Documents      []Document    `json:"documents" bson:"documents"`
}

// RiskSlice is one segment of a risk distribution chart.
type RiskSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// City holds regulator statistics for one city.
type City struct {
	Name        string `json:"name"`
	Inspections int    `json:"inspections"`
	HighRisk    int    `json:"high_risk"`
	Violations  int    `json:"violations"`
	Unsafe      int    `json:"unsafe"`
}

type Builder struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Projects int    `json:"projects"`
	HighRisk int    `json:"high_risk"`
	Status   string `json:"status"`
}

type TrendingIssue struct {
	Issue        string  `json:"issue"`
	CurrentMonth int     `json:"current_month"`
	Change       float64 `json:"change"`
}

// Action item priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

type ActionItem struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

type TeamMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Bio  string `json:"bio"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AboutStat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type About struct {
	Team     []TeamMember `json:"team"`
	Features []Feature    `json:"features"`
	Stats    []AboutStat  `json:"stats"`
}

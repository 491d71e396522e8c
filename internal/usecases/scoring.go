package usecases

import (
	"startup-platform.backend/internal/domain/entities"
)

// ScoreInput carries the startup attributes the scoring engine inspects.
type ScoreInput struct {
	TractionMetrics map[string]float64
	TeamSize        int
	HasTeamSize     bool
	HasMarketSize   bool
	HasProjectCost  bool
	HasGithub       bool
}

// ScoreAnalysis is the full scoring engine output.
type ScoreAnalysis struct {
	OverallScore    float64
	TeamScore       float64
	MarketScore     float64
	TractionScore   float64
	FinancialScore  float64
	TechnologyScore float64

	Strengths       []string
	Weaknesses      []string
	Recommendations []string

	InvestmentReadiness string
}

// AnalyzeStartup scores a startup from its submitted attributes. The engine
// is deterministic and does no I/O.
//
// Traction consults one metric family only: users when present, otherwise
// revenue, otherwise zero. A positive traction score overrides the overall
// with min(100, traction*1.2); without traction the overall falls back to the
// mean of the five sub-scores. The jump between the two formulas is
// intentional and keeps submitting any recognized metric worthwhile.
func AnalyzeStartup(in ScoreInput) ScoreAnalysis {
	var traction float64
	if users, ok := in.TractionMetrics["users"]; ok {
		switch {
		case users > 10000:
			traction = 90
		case users > 1000:
			traction = 70
		case users > 100:
			traction = 50
		default:
			traction = 30
		}
	} else if revenue, ok := in.TractionMetrics["revenue"]; ok {
		switch {
		case revenue > 10000:
			traction = 85
		case revenue > 1000:
			traction = 65
		default:
			traction = 40
		}
	}

	team := 50.0
	if in.HasTeamSize && in.TeamSize > 3 {
		team = 75
	}
	market := 60.0
	if in.HasMarketSize {
		market = 80
	}
	financial := 50.0
	if in.HasProjectCost {
		financial = 70
	}
	technology := 65.0
	if in.HasGithub {
		technology = 85
	}

	var overall float64
	if traction > 0 {
		overall = traction * 1.2
		if overall > 100 {
			overall = 100
		}
	} else {
		overall = (team + market + traction + financial + technology) / 5
	}

	var strengths, weaknesses, recommendations []string

	if team > 70 {
		strengths = append(strengths, "Strong team")
	} else {
		weaknesses = append(weaknesses, "Insufficient team size")
		recommendations = append(recommendations, "Expand the team")
	}

	if market > 70 {
		strengths = append(strengths, "Promising market")
	} else {
		weaknesses = append(weaknesses, "Undefined target market")
		recommendations = append(recommendations, "Conduct market research")
	}

	switch {
	case traction > 60:
		strengths = append(strengths, "Good engagement metrics")
	case traction > 0:
		weaknesses = append(weaknesses, "Low traction")
		recommendations = append(recommendations, "Grow the user base")
	default:
		weaknesses = append(weaknesses, "No traction metrics")
		recommendations = append(recommendations, "Add metrics to track progress")
	}

	if len(strengths) == 0 {
		strengths = append(strengths, "Innovative idea")
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Find strategic partners")
	}

	return ScoreAnalysis{
		OverallScore:        overall,
		TeamScore:           team,
		MarketScore:         market,
		TractionScore:       traction,
		FinancialScore:      financial,
		TechnologyScore:     technology,
		Strengths:           strengths,
		Weaknesses:          weaknesses,
		Recommendations:     recommendations,
		InvestmentReadiness: readinessFor(overall),
	}
}

func readinessFor(overall float64) string {
	switch {
	case overall > 75:
		return entities.ReadinessHigh
	case overall > 60:
		return entities.ReadinessMedium
	default:
		return entities.ReadinessLow
	}
}

// ScoreInputFromStartup projects a startup onto the scoring engine input.
func ScoreInputFromStartup(s *entities.Startup) ScoreInput {
	return ScoreInput{
		TractionMetrics: s.TractionMetrics,
		TeamSize:        s.TeamSize.Int,
		HasTeamSize:     s.TeamSize.Valid,
		HasMarketSize:   s.MarketSize.Valid,
		HasProjectCost:  s.ProjectCost.Valid,
		HasGithub:       s.Github.Valid,
	}
}

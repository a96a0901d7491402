package engine

import "github.com/tfournier/girder/internal/domain"

// EVMetrics is one scope's earned-value measurement set. Every ratio is
// sentinel-guarded: a zero denominator resolves to 1.0, never NaN or Inf.
type EVMetrics struct {
	BAC  float64
	PV   float64
	EV   float64
	AC   float64
	CPI  float64
	SPI  float64
	EAC  float64
	ETC  float64
	VAC  float64
	TCPI float64

	CostVariance     float64
	ScheduleVariance float64
	PercentComplete  float64
	PercentSpent     float64
}

// ComputeEVM derives the full metric set from a scope's rolled-up budget,
// actual cost, and percent complete. PV equals BAC: the measured plan is
// "everything budgeted for this scope", matching how the snapshot rows are
// cut upstream.
func ComputeEVM(baselineCost, actualCost *float64, percentComplete float64) EVMetrics {
	bac := domain.Float64FromPtrWithDefault(0, baselineCost)
	ac := domain.Float64FromPtrWithDefault(0, actualCost)
	pct := clampPercent(percentComplete)

	m := EVMetrics{
		BAC:             bac,
		PV:              bac,
		AC:              ac,
		EV:              bac * pct / 100,
		PercentComplete: pct,
	}

	if m.AC > 0 {
		m.CPI = m.EV / m.AC
	} else {
		m.CPI = 1.0
	}
	if m.PV > 0 {
		m.SPI = m.EV / m.PV
	} else {
		m.SPI = 1.0
	}

	if m.CPI > 0 {
		m.EAC = m.BAC / m.CPI
	} else {
		// No earned value yet: estimate completion as spend so far plus
		// the untouched budget.
		m.EAC = m.AC + (m.BAC - m.EV)
	}
	m.ETC = m.EAC - m.AC
	if m.ETC < 0 {
		m.ETC = 0
	}
	m.VAC = m.BAC - m.EAC

	if m.BAC > m.EV && m.ETC > 0 {
		m.TCPI = (m.BAC - m.EV) / m.ETC
	} else {
		m.TCPI = 1.0
	}

	m.CostVariance = m.EV - m.AC
	m.ScheduleVariance = m.EV - m.PV
	if m.BAC > 0 {
		m.PercentSpent = clampPercent(m.AC / m.BAC * 100)
	}

	return m
}

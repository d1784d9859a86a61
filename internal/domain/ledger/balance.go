package ledger

// MilestonePoints is the target shown on the points card.
const MilestonePoints = 5000

// ComputeBalance sums PointsDelta. Order does not matter, an empty log is 0,
// and the result may be negative.
func ComputeBalance(txs []Transaction) int {
	total := 0
	for _, t := range txs {
		total += t.PointsDelta
	}
	return total
}

// Progress describes how far a balance is toward MilestonePoints.
type Progress struct {
	Target    int `json:"target"`
	Remaining int `json:"remaining"`
	Percent   int `json:"percent"`
}

// ProgressFor returns milestone progress; percent is clamped to [0, 100].
func ProgressFor(balance int) Progress {
	p := Progress{Target: MilestonePoints, Remaining: MilestonePoints - max(balance, 0)}
	if p.Remaining < 0 {
		p.Remaining = 0
	}
	switch {
	case balance <= 0:
		p.Percent = 0
	case balance >= MilestonePoints:
		p.Percent = 100
	default:
		p.Percent = balance * 100 / MilestonePoints
	}
	return p
}

package population

// Strategy selects how one individual's initial partition is built.
type Strategy int

const (
	// StrategyRandom shuffles the stops and splits them into contiguous chunks.
	StrategyRandom Strategy = iota
	// StrategyCluster groups stops by planar k-means and balances the groups.
	StrategyCluster
)

// randomStrategyWeight is the probability of drawing StrategyRandom for an
// individual; the remainder goes to StrategyCluster.
const randomStrategyWeight = 0.2

func (s Strategy) String() string {
	switch s {
	case StrategyRandom:
		return "random"
	case StrategyCluster:
		return "cluster"
	default:
		return "unknown"
	}
}

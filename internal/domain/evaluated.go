package domain

// Decision is the outcome of comparing the two mode costs for a priced shipment.
type Decision struct {
	BestMode        Mode
	AllocationError bool
	SavingPotential float64
}

// EvaluatedRecord is a demand joined with its lane cost.
// Cost is nil when the lane has no reference cost; Decision is nil until the
// record is evaluated and stays nil for unpriced records.
type EvaluatedRecord struct {
	Demand   DemandRecord
	Cost     *CostRecord
	Decision *Decision
}

func (r EvaluatedRecord) Priced() bool { return r.Cost != nil }

package domain

import "math"

// Progress is the separation completion of an order.
type Progress struct {
	Completed  int  `json:"completed"`
	Total      int  `json:"total"`
	Percent    int  `json:"percent"`
	CanProceed bool `json:"can_proceed"`
}

// ComputeProgress counts only items with a defined quantity; an item is
// complete once its separated quantity reaches the defined one.
func ComputeProgress(items []*LineItem) Progress {
	var p Progress
	for _, it := range items {
		if it.Defined <= 0 {
			continue
		}
		p.Total++
		if it.Separated >= it.Defined {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	p.CanProceed = p.Total > 0 && p.Completed == p.Total
	return p
}

// CheckProceed gates the ship-and-verify stage on full separation.
func CheckProceed(items []*LineItem) error {
	if !ComputeProgress(items).CanProceed {
		return ErrSeparationIncomplete
	}
	return nil
}

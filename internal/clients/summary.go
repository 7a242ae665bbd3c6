package clients

// Summary aggregates service usage across client records.
type Summary struct {
	TotalClients int                `json:"totalClients"`
	Services     map[string]float64 `json:"services"`
	AgeGroups    map[string]int     `json:"ageGroups"`
}

// Summarize totals benefits per service and counts clients per age group.
// Records with missing or malformed fields still count toward TotalClients.
func Summarize(recs []Record) Summary {
	sum := Summary{
		TotalClients: len(recs),
		Services:     make(map[string]float64, len(Services)),
		AgeGroups:    make(map[string]int, len(AgeGroups)),
	}
	for _, s := range Services {
		sum.Services[s] = 0
	}

	for _, rec := range recs {
		if g, ok := rec["ageGroup"].(string); ok && g != "" {
			sum.AgeGroups[g]++
		}
		benefits, _ := rec["benefits"].(map[string]any)
		for svc, v := range benefits {
			if n, ok := number(v); ok {
				sum.Services[svc] += n
			}
		}
	}
	return sum
}

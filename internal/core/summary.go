package core

import "time"

// Summary tallies a batch of responses by class.
type Summary struct {
	Queries     int           `json:"queries" yaml:"queries"`
	Responses   int           `json:"responses" yaml:"responses"`
	Available   int           `json:"available" yaml:"available"`
	Unavailable int           `json:"unavailable" yaml:"unavailable"`
	Invalid     int           `json:"invalid" yaml:"invalid"`
	Failed      int           `json:"failed" yaml:"failed"`
	Elapsed     time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Summarize counts responses by class. Nil entries are ignored.
func Summarize(responses []*Response, elapsed time.Duration) Summary {
	summary := Summary{Elapsed: elapsed}
	queries := make(map[string]struct{})
	for _, response := range responses {
		if response == nil {
			continue
		}
		summary.Responses++
		queries[response.Query] = struct{}{}
		switch response.Class() {
		case ClassAvailable:
			summary.Available++
		case ClassUnavailable:
			summary.Unavailable++
		case ClassInvalid:
			summary.Invalid++
		default:
			summary.Failed++
		}
	}
	summary.Queries = len(queries)
	return summary
}

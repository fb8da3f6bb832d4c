// Package analysis summarises recorded step traces.
//
//   - [Inversions]: number of out-of-order pairs in an array
//   - [Profile]: inversions at every step of a trace
//   - [Summarize]: step, comparison, swap and shift counts
//   - [Plot]: the profile as an ASCII chart
//   - [Ensemble]: the same operation over many seeded random arrays
//
// A sort trace drives its profile to zero:
//
//	stats := analysis.Summarize(seq)
//	fmt.Println(analysis.Plot(seq))
package analysis

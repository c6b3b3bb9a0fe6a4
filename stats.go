package crossmatch

// PassStats reports what one enumeration pass has done so far.
type PassStats struct {
	Candidates     int // Combinations examined
	Duplicates     int // Combinations collapsing to an already-processed assignment
	MissingInputs  int // Assignments dropped because an input collection had no files
	MissingOutputs int // Assignments dropped because no output collection resolved a file
	Matches        int // Results returned
}

// Stats returns the counters accumulated by the pass so far.
func (p *Pass) Stats() PassStats {
	return p.stats
}

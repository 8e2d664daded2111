package models

// RunSummary is the explicit accumulator threaded through every pipeline
// stage. Row-level exclusions are recovered locally and counted here so
// silent data loss stays observable.
type RunSummary struct {
	FilesProcessed   int
	RowsRead         int
	RowsKept         int
	RowsFiltered     int
	MalformedRows    int
	UnknownOffices   int
	UnknownCounties  int
	ZeroVoteContests int
	ContestsEmitted  int
}

// Merge folds another summary into this one. Used when independent year
// files are processed concurrently and their accumulators joined afterward.
func (s *RunSummary) Merge(other RunSummary) {
	s.FilesProcessed += other.FilesProcessed
	s.RowsRead += other.RowsRead
	s.RowsKept += other.RowsKept
	s.RowsFiltered += other.RowsFiltered
	s.MalformedRows += other.MalformedRows
	s.UnknownOffices += other.UnknownOffices
	s.UnknownCounties += other.UnknownCounties
	s.ZeroVoteContests += other.ZeroVoteContests
	s.ContestsEmitted += other.ContestsEmitted
}

// Dropped returns the total number of excluded rows and contests.
func (s *RunSummary) Dropped() int {
	return s.MalformedRows + s.UnknownOffices + s.UnknownCounties + s.ZeroVoteContests
}

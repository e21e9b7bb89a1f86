package models

// TableMergeCounts tallies how a single table's conflicts were resolved.
type TableMergeCounts struct {
	// FromLocal counts rows whose local version entered the output,
	// including rows that existed only locally.
	FromLocal int `json:"from_local"`

	// FromRemote counts rows whose remote version entered the output,
	// including rows that existed only remotely.
	FromRemote int `json:"from_remote"`

	// Equal counts rows present on both sides with identical
	// UpdatedAt, treated as already converged.
	Equal int `json:"equal"`
}

// Sum returns the total number of rows the table contributed.
func (c TableMergeCounts) Sum() int {
	return c.FromLocal + c.FromRemote + c.Equal
}

// MergeReport records, per table, which side every merged row came from.
// Callers use it for diagnostics and to decide whether anything actually
// changed before surfacing a "synced" notification.
type MergeReport struct {
	Tables map[TableName]TableMergeCounts `json:"tables"`
}

// NewMergeReport returns an empty report ready for counting.
func NewMergeReport() MergeReport {
	return MergeReport{Tables: make(map[TableName]TableMergeCounts)}
}

// CountLocal records one row resolved in favor of the local side.
func (r MergeReport) CountLocal(table TableName) {
	c := r.Tables[table]
	c.FromLocal++
	r.Tables[table] = c
}

// CountRemote records one row resolved in favor of the remote side.
func (r MergeReport) CountRemote(table TableName) {
	c := r.Tables[table]
	c.FromRemote++
	r.Tables[table] = c
}

// CountEqual records one row identical on both sides.
func (r MergeReport) CountEqual(table TableName) {
	c := r.Tables[table]
	c.Equal++
	r.Tables[table] = c
}

// Totals sums the per-table counts across the whole report.
func (r MergeReport) Totals() TableMergeCounts {
	var total TableMergeCounts
	for _, c := range r.Tables {
		total.FromLocal += c.FromLocal
		total.FromRemote += c.FromRemote
		total.Equal += c.Equal
	}
	return total
}

// Changed reports whether the merge pulled anything from the remote
// side, i.e. whether the local vault content actually changed.
func (r MergeReport) Changed() bool {
	return r.Totals().FromRemote > 0
}

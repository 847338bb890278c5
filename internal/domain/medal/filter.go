package medal

// Filter returns the records for selector. All yields the whole dataset;
// any other value keeps records whose Sport matches exactly (case-sensitive).
// An unknown sport yields an empty, non-nil subset.
func Filter(d *Dataset, selector string) []Record {
	records := d.Records()
	if selector == All {
		return records
	}
	out := make([]Record, 0)
	for _, r := range records {
		if r.Sport == selector {
			out = append(out, r)
		}
	}
	return out
}

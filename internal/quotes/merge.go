package quotes

import "github.com/mrlokans/quotebook/internal/entities"

// Merge appends every remote quote whose text is not already present locally.
// Local entries always win on a text collision and are never modified or removed.
// Duplicates inside the remote batch are rejected after their first occurrence,
// and so are remote entries with an empty text or category.
// It returns the merged collection and the quotes that were appended.
func Merge(local, remote []entities.Quote) ([]entities.Quote, []entities.Quote) {
	existing := make(map[string]struct{}, len(local)+len(remote))
	for _, q := range local {
		existing[q.Text] = struct{}{}
	}

	merged := make([]entities.Quote, len(local), len(local)+len(remote))
	copy(merged, local)

	var added []entities.Quote
	for _, q := range remote {
		if !q.IsComplete() {
			continue
		}
		if _, ok := existing[q.Text]; ok {
			continue
		}
		existing[q.Text] = struct{}{}
		merged = append(merged, q)
		added = append(added, q)
	}

	return merged, added
}

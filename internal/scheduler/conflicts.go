package scheduler

// FindConflicts returns every item in existing whose interval overlaps candidate,
// in input order. existing is expected to hold only items of the candidate's
// date that are not cancelled. When excludeID is set, the item with that ID
// is skipped so that an item being moved is never reported against itself.
func FindConflicts(candidate TimeInterval, existing []ScheduledItem, excludeID *int64) ([]ScheduledItem, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	conflicts := make([]ScheduledItem, 0)
	for _, item := range existing {
		if excludeID != nil && item.ID == *excludeID {
			continue
		}
		if candidate.Overlaps(item.Interval) {
			conflicts = append(conflicts, item)
		}
	}

	return conflicts, nil
}

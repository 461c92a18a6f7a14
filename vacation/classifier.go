/*
classifier.go - Cycle lifecycle classification

PURPOSE:
  Computes a cycle's remaining balance and lifecycle status from its leave
  history and the caller's "today". This is a pure function: same inputs,
  same answer, no hidden state. It runs on every read so a cycle's displayed
  state tracks wall-clock time without any invalidation machinery.

DECISION ORDER (first match wins):
  1. A leave contains today            -> IN_PROGRESS
  2. A leave starts after today        -> SCHEDULED
  3. All leaves past, balance <= 0     -> COMPLETED
  4. Past deadline, balance remaining  -> OVERDUE (double-pay flag set)
  5. Otherwise                         -> ACQUIRED
*/
package vacation

// Classify turns a skeleton plus its recorded leaves into a classified cycle.
func Classify(skeleton CycleSkeleton, leaves []LeavePeriod, today Date) Cycle {
	used := 0
	inProgress := false
	hasFuture := false
	allPast := len(leaves) > 0

	for _, leave := range leaves {
		used += leave.Days
		if leave.Contains(today) {
			inProgress = true
		}
		if today.Before(leave.Start) {
			hasFuture = true
		}
		if !today.After(leave.End) {
			allPast = false
		}
	}

	cycle := Cycle{
		CycleSkeleton:   skeleton,
		ScheduledLeaves: leaves,
		RemainingDays:   FullEntitlementDays - used,
	}

	switch {
	case inProgress:
		cycle.Status = StatusInProgress
	case hasFuture:
		cycle.Status = StatusScheduled
	case allPast && cycle.RemainingDays <= 0:
		cycle.Status = StatusCompleted
	case today.After(skeleton.ConcessiveDeadline) && cycle.RemainingDays > 0:
		cycle.Status = StatusOverdue
		cycle.IsOverdueDouble = true
	default:
		cycle.Status = StatusAcquired
	}

	return cycle
}

package wage

import (
	"sort"
	"time"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	domain "github.com/vitilevu-hr/payroll-backend-go/internal/domain/wage"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/payweek"
)

// The eligibility rules are kept as pure functions over key sets so the
// merge-vs-split precedence can be tested without a store. The guiding rule:
// never offer a final-wage option that would double-process hours already
// covered by a pending-or-approved final-wage batch.

type slotKey struct {
	from   string
	to     string
	branch string // "" for merged
}

func keyOf(k domain.BatchKey) slotKey {
	return slotKey{
		from:   k.DateFrom.Format("2006-01-02"),
		to:     k.DateTo.Format("2006-01-02"),
		branch: k.BranchKey(),
	}
}

// ResolveReviewOptions returns the pay weeks with timesheet data for a branch
// that have no non-declined timesheet-review batch occupying the exact slot.
// A declined review does not block; it is resubmitted instead.
func ResolveReviewOptions(branch employee.Branch, datesWithData []time.Time, activeReviews []domain.BatchKey) []domain.PeriodOption {
	occupied := make(map[slotKey]bool, len(activeReviews))
	for _, k := range activeReviews {
		occupied[keyOf(k)] = true
	}

	seen := make(map[slotKey]bool)
	var options []domain.PeriodOption
	for _, d := range datesWithData {
		week := payweek.Containing(d)
		b := branch
		key := keyOf(domain.BatchKey{DateFrom: week.From, DateTo: week.To, Branch: &b})
		if seen[key] || occupied[key] {
			seen[key] = true
			continue
		}
		seen[key] = true
		options = append(options, domain.PeriodOption{DateFrom: week.From, DateTo: week.To, Branch: &b})
	}

	sort.Slice(options, func(i, j int) bool { return options[i].DateFrom.Before(options[j].DateFrom) })
	return options
}

// ResolveFinalWageOptions builds the submittable final-wage periods from the
// approved timesheet reviews. Reviews are grouped by date range; when both
// branches are covered a single merged option replaces the individual ones,
// unless a pending-or-approved final-wage batch already occupies the merged
// slot or either branch slot for that range, in which case merging is
// suppressed and only the not-yet-processed branch slots are offered.
func ResolveFinalWageOptions(approvedReviews []domain.BatchKey, activeFinal []domain.BatchKey) []domain.PeriodOption {
	processed := make(map[slotKey]bool, len(activeFinal))
	for _, k := range activeFinal {
		processed[keyOf(k)] = true
	}

	type coverage struct {
		from, to time.Time
		labasa   bool
		suva     bool
	}
	groups := make(map[slotKey]*coverage)
	for _, k := range approvedReviews {
		gk := slotKey{from: k.DateFrom.Format("2006-01-02"), to: k.DateTo.Format("2006-01-02")}
		g, ok := groups[gk]
		if !ok {
			g = &coverage{from: payweek.Truncate(k.DateFrom), to: payweek.Truncate(k.DateTo)}
			groups[gk] = g
		}
		switch {
		case k.Branch == nil:
			// A merged review covers both branches.
			g.labasa = true
			g.suva = true
		case *k.Branch == employee.BranchLabasa:
			g.labasa = true
		case *k.Branch == employee.BranchSuva:
			g.suva = true
		}
	}

	slot := func(from, to time.Time, branch string) slotKey {
		return slotKey{from: from.Format("2006-01-02"), to: to.Format("2006-01-02"), branch: branch}
	}

	var options []domain.PeriodOption
	for _, g := range groups {
		mergedDone := processed[slot(g.from, g.to, "")]
		labasaDone := processed[slot(g.from, g.to, string(employee.BranchLabasa))]
		suvaDone := processed[slot(g.from, g.to, string(employee.BranchSuva))]

		if g.labasa && g.suva {
			// Merged-candidate check first; a batch on any of the three slots
			// suppresses the merge.
			if !mergedDone && !labasaDone && !suvaDone {
				options = append(options, domain.PeriodOption{DateFrom: g.from, DateTo: g.to, Merged: true})
				continue
			}
			if mergedDone {
				continue
			}
			if !labasaDone {
				b := employee.BranchLabasa
				options = append(options, domain.PeriodOption{DateFrom: g.from, DateTo: g.to, Branch: &b})
			}
			if !suvaDone {
				b := employee.BranchSuva
				options = append(options, domain.PeriodOption{DateFrom: g.from, DateTo: g.to, Branch: &b})
			}
			continue
		}

		// Single-branch coverage: the merged slot also blocks, since it
		// already spans this branch's hours.
		if mergedDone {
			continue
		}
		if g.labasa && !labasaDone {
			b := employee.BranchLabasa
			options = append(options, domain.PeriodOption{DateFrom: g.from, DateTo: g.to, Branch: &b})
		}
		if g.suva && !suvaDone {
			b := employee.BranchSuva
			options = append(options, domain.PeriodOption{DateFrom: g.from, DateTo: g.to, Branch: &b})
		}
	}

	sort.Slice(options, func(i, j int) bool {
		if !options[i].DateFrom.Equal(options[j].DateFrom) {
			return options[i].DateFrom.Before(options[j].DateFrom)
		}
		bi, bj := "", ""
		if options[i].Branch != nil {
			bi = string(*options[i].Branch)
		}
		if options[j].Branch != nil {
			bj = string(*options[j].Branch)
		}
		return bi < bj
	})
	return options
}

package core

import (
	"github.com/shopspring/decimal"
)

// MemberBalance carries one member's per-cycle totals.
type MemberBalance struct {
	Member string
	// Spent is the sum of real expenses the member paid for.
	Spent decimal.Decimal
	// Contributed is the sum of settlement payments the member transferred.
	Contributed decimal.Decimal
	// Diff is Spent minus the fair share: positive means the member is
	// owed money, negative means the member owes.
	Diff decimal.Decimal
}

// BalanceResult is the settlement derived from one cycle. All amounts are
// exact decimals; rounding to the configured precision happens only at
// display time.
type BalanceResult struct {
	TotalExpenses decimal.Decimal
	FairShare     decimal.Decimal
	Members       []MemberBalance

	// Net is the signed two-member balance:
	// (spent[p1]-spent[p2]) + (contributed[p1]-contributed[p2]).
	// Zero unless exactly two members are configured.
	Net decimal.Decimal

	// Debtor owes Creditor the Owed amount. Empty when settled or when the
	// household has more than two members (no pairwise netting then).
	Debtor   string
	Creditor string
	Owed     decimal.Decimal

	Settled bool
}

// ComputeBalance aggregates per-member totals and derives the net debt.
//
// With two members the settlement uses the net-debt formula: the signed
// difference of expenses plus the signed difference of payments, halved.
// With more members each member only gets an independent diff against the
// fair share; no pairwise netting is attempted.
func (e *Engine) ComputeBalance(expenses, payments []Entry) BalanceResult {
	members := e.settings.Members
	n := int64(len(members))

	spent := map[string]decimal.Decimal{}
	contributed := map[string]decimal.Decimal{}
	for _, m := range members {
		spent[m] = decimal.Zero
		contributed[m] = decimal.Zero
	}

	total := decimal.Zero
	for _, entry := range expenses {
		amount := entry.Amount.Decimal()
		total = total.Add(amount)
		if _, ok := spent[entry.Payer]; ok {
			spent[entry.Payer] = spent[entry.Payer].Add(amount)
		}
	}
	for _, entry := range payments {
		if _, ok := contributed[entry.Payer]; ok {
			contributed[entry.Payer] = contributed[entry.Payer].Add(entry.Amount.Decimal())
		}
	}

	fairShare := total.Div(decimal.NewFromInt(n))

	res := BalanceResult{
		TotalExpenses: total,
		FairShare:     fairShare,
		Owed:          decimal.Zero,
		Net:           decimal.Zero,
	}
	for _, m := range members {
		res.Members = append(res.Members, MemberBalance{
			Member:      m,
			Spent:       spent[m],
			Contributed: contributed[m],
			Diff:        spent[m].Sub(fairShare),
		})
	}

	if n != 2 {
		// Simplified N-member variant: per-member diffs only.
		settled := true
		for _, mb := range res.Members {
			if !mb.Diff.IsZero() {
				settled = false
				break
			}
		}
		res.Settled = settled
		return res
	}

	p1, p2 := members[0], members[1]
	net := spent[p1].Sub(spent[p2]).Add(contributed[p1].Sub(contributed[p2]))
	res.Net = net

	two := decimal.NewFromInt(2)
	switch net.Sign() {
	case 1:
		res.Debtor, res.Creditor = p2, p1
		res.Owed = net.Div(two)
	case -1:
		res.Debtor, res.Creditor = p1, p2
		res.Owed = net.Abs().Div(two)
	default:
		res.Settled = true
	}
	return res
}

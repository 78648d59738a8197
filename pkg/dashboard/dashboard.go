// Package dashboard aggregates every instrument of the current user into the
// totals shown on the overview screen.
package dashboard

import (
	"github.com/finboard/finboard/pkg/budget"
	"github.com/finboard/finboard/pkg/emi"
	"github.com/finboard/finboard/pkg/fixed_deposit"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/progress"
	"github.com/finboard/finboard/pkg/savings_goal"
	"github.com/finboard/finboard/pkg/schedule"
)

type FixedDepositSummary struct {
	Count          int     `json:"count"`
	Matured        int     `json:"matured"`
	TotalPrincipal float64 `json:"totalPrincipal"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalMaturity  float64 `json:"totalMaturity"`
}

type EMISummary struct {
	Count          int     `json:"count"`
	MonthlyOutflow float64 `json:"monthlyOutflow"`
	// DueSoon counts unpaid reminders due within the near-term band, today included.
	DueSoon int `json:"dueSoon"`
	Overdue int `json:"overdue"`
}

type BudgetSummary struct {
	MonthYear     string                `json:"monthYear"`
	Count         int                   `json:"count"`
	TotalBudgeted float64               `json:"totalBudgeted"`
	TotalSpent    float64               `json:"totalSpent"`
	Usage         float64               `json:"usage"`
	Status        progress.BudgetStatus `json:"status"`
}

type SavingsSummary struct {
	Count       int     `json:"count"`
	Completed   int     `json:"completed"`
	TotalSaved  float64 `json:"totalSaved"`
	TotalTarget float64 `json:"totalTarget"`
	Progress    float64 `json:"progress"`
}

type Summary struct {
	FixedDeposits FixedDepositSummary `json:"fixedDeposits"`
	EMIs          EMISummary          `json:"emis"`
	Budgets       BudgetSummary       `json:"budgets"`
	Savings       SavingsSummary      `json:"savings"`
}

func summarizeFixedDeposits(deposits []fixed_deposit.Details) FixedDepositSummary {
	principal := make([]float64, 0, len(deposits))
	interest := make([]float64, 0, len(deposits))
	maturity := make([]float64, 0, len(deposits))
	matured := 0
	for _, d := range deposits {
		principal = append(principal, d.Principal)
		interest = append(interest, d.InterestEarned)
		maturity = append(maturity, d.MaturityAmount)
		if d.Status == fixed_deposit.Matured {
			matured++
		}
	}
	return FixedDepositSummary{
		Count:          len(deposits),
		Matured:        matured,
		TotalPrincipal: money.Sum(principal...),
		TotalInterest:  money.Sum(interest...),
		TotalMaturity:  money.Sum(maturity...),
	}
}

func summarizeEMIs(reminders []emi.Details) EMISummary {
	amounts := make([]float64, 0, len(reminders))
	summary := EMISummary{Count: len(reminders)}
	for _, r := range reminders {
		amounts = append(amounts, r.EMIAmount)
		switch r.Due.Band {
		case schedule.BandToday, schedule.BandSoon:
			summary.DueSoon++
		case schedule.BandOverdue:
			summary.Overdue++
		}
	}
	summary.MonthlyOutflow = money.Sum(amounts...)
	return summary
}

func summarizeBudgets(monthYear string, budgets []budget.Details) BudgetSummary {
	budgeted := make([]float64, 0, len(budgets))
	spent := make([]float64, 0, len(budgets))
	for _, b := range budgets {
		budgeted = append(budgeted, b.BudgetedAmount)
		spent = append(spent, b.SpentAmount)
	}
	summary := BudgetSummary{
		MonthYear:     monthYear,
		Count:         len(budgets),
		TotalBudgeted: money.Sum(budgeted...),
		TotalSpent:    money.Sum(spent...),
	}
	summary.Usage = money.Percentage(summary.TotalSpent, summary.TotalBudgeted)
	summary.Status = progress.ClassifyBudget(summary.Usage)
	return summary
}

func summarizeSavings(goals []savings_goal.Details) SavingsSummary {
	saved := make([]float64, 0, len(goals))
	target := make([]float64, 0, len(goals))
	completed := 0
	for _, g := range goals {
		saved = append(saved, g.CurrentAmount)
		target = append(target, g.TargetAmount)
		if g.Status == progress.Completed {
			completed++
		}
	}
	summary := SavingsSummary{
		Count:       len(goals),
		Completed:   completed,
		TotalSaved:  money.Sum(saved...),
		TotalTarget: money.Sum(target...),
	}
	if p, err := progress.Evaluate(summary.TotalSaved, summary.TotalTarget, progress.Capped); err == nil {
		summary.Progress = p.Ratio
	}
	return summary
}

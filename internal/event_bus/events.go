package event_bus

import (
	"time"

	"github.com/google/uuid"
)

const (
	FixedDepositCreated EventType = "fixed_deposit.created"
	FixedDepositDeleted EventType = "fixed_deposit.deleted"
	EMISaved            EventType = "emi.saved"
	EMIPaid             EventType = "emi.paid"
	EMIRolledOver       EventType = "emi.rolled_over"
	EMIDeleted          EventType = "emi.deleted"
	BudgetSaved         EventType = "budget.saved"
	BudgetSpentUpdated  EventType = "budget.spent_updated"
	BudgetDeleted       EventType = "budget.deleted"
	SavingsGoalSaved    EventType = "savings_goal.saved"
	SavingsGoalDeleted  EventType = "savings_goal.deleted"
)

// AllEventTypes lists every instrument event published by the services.
var AllEventTypes = []EventType{
	FixedDepositCreated,
	FixedDepositDeleted,
	EMISaved,
	EMIPaid,
	EMIRolledOver,
	EMIDeleted,
	BudgetSaved,
	BudgetSpentUpdated,
	BudgetDeleted,
	SavingsGoalSaved,
	SavingsGoalDeleted,
}

// InstrumentChanged is the payload of every instrument event.
type InstrumentChanged struct {
	UserId int
	Id     uuid.UUID
	// Amount is the instrument's headline amount after the change
	// (principal, EMI amount, budgeted or spent amount, saved amount).
	Amount float64
}

type EMIPaidEvent struct {
	UserId     int
	Id         uuid.UUID
	EMIAmount  float64
	SettledDue time.Time
}

package models

// TransactionType classifies a record of the snapshot
type TransactionType string

// Transaction types. Only income and payment contribute to income figures.
const (
	TypeIncome   TransactionType = "income"
	TypePayment  TransactionType = "payment"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
	TypeOpening  TransactionType = "opening"
	TypeClosure  TransactionType = "closure"
)

// PaymentStatus tells how much of an income record has been collected
type PaymentStatus string

// Payment statuses
const (
	StatusCompleted PaymentStatus = "completed"
	StatusPartial   PaymentStatus = "partial"
	StatusPending   PaymentStatus = "pending"
)

// IsKnown returns true for one of the recognised statuses
func (s PaymentStatus) IsKnown() bool {
	switch s {
	case StatusCompleted, StatusPartial, StatusPending:
		return true
	}
	return false
}

// Normalize maps an empty or unknown status to completed
func (s PaymentStatus) Normalize() PaymentStatus {
	if s.IsKnown() {
		return s
	}
	return StatusCompleted
}

// Sentinel tags excluding a transaction from income figures
const (
	CategoryAdjustment           = "adjustment"
	SubcategoryOpeningAdjustment = "opening_adjustment"
)

// Account and payment method values
const (
	AccountCash = "cash"
	AccountBank = "bank"
	AccountYape = "yape"
	AccountPlin = "plin"
)

package usecase

// ComputeRefund turns a disputed item's deposit terms into the refund
// owed to the customer. The deposit base is per-unit deposit times
// quantity; each case settles against its own item's deposit, there is
// no cross-item netting.
//
// The refund is deliberately not clamped at zero: a penalty exceeding
// the deposit yields a negative refund, recorded as a balance the
// customer owes.
func ComputeRefund(depositPerUnit float64, quantity int, penaltyAmount float64) (depositBase, refund float64) {
	depositBase = depositPerUnit * float64(quantity)
	return depositBase, depositBase - penaltyAmount
}

package model

import "strconv"

// Registry is the append-only list of bills issued during a session.
type Registry struct {
	bills []*Bill
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Append adds a bill after every bill already issued.
func (r *Registry) Append(bill *Bill) {
	r.bills = append(r.bills, bill)
}

// Find returns the bill with the given formatted id.
func (r *Registry) Find(id string) (*Bill, bool) {
	for _, bill := range r.bills {
		if bill.ID() == id {
			return bill, true
		}
	}
	return nil, false
}

// FindNumber looks a bill up by the number an operator types, formatted the
// same way stored ids are.
func (r *Registry) FindNumber(n int) (*Bill, bool) {
	return r.Find(FormatBillID(strconv.Itoa(n)))
}

// All returns the bills in issuance order.
func (r *Registry) All() []*Bill {
	out := make([]*Bill, len(r.bills))
	copy(out, r.bills)
	return out
}

// Len returns the number of issued bills.
func (r *Registry) Len() int {
	return len(r.bills)
}

package cashback

// Status is the validation state of an order. Orders start in validation
// and are only auto-approved when the reseller's CPF is on the allow-list
// at creation time; the status is never recomputed after insert.
type Status string

const (
	StatusInValidation Status = "IN_VALIDATION"
	StatusApproved     Status = "APPROVED"
)

// AllowList is the set of normalized CPFs whose orders skip manual
// validation.
type AllowList map[string]struct{}

// NewAllowList builds an allow-list, normalizing each CPF.
func NewAllowList(cpfs ...string) AllowList {
	l := make(AllowList, len(cpfs))
	for _, cpf := range cpfs {
		l[NormalizeCPF(cpf)] = struct{}{}
	}
	return l
}

// DefaultAllowList returns the CPFs with auto-approved orders.
func DefaultAllowList() AllowList {
	return NewAllowList("15350946056")
}

// Contains reports whether the normalized CPF is on the allow-list.
func (l AllowList) Contains(cpf string) bool {
	_, ok := l[NormalizeCPF(cpf)]
	return ok
}

// Status resolves the initial order status for a reseller CPF.
func (l AllowList) Status(cpf string) Status {
	if l.Contains(cpf) {
		return StatusApproved
	}
	return StatusInValidation
}

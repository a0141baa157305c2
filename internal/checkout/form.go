package checkout

import (
	"strings"

	"curtain_store/internal/apperr"
	"curtain_store/internal/pricing"
)

type Form struct {
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	Address       string              `json:"address"`
	PaymentMethod pricing.PaymentPlan `json:"payment_method"`
}

func (f Form) normalized() Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.PaymentMethod = pricing.PaymentPlan(strings.ToLower(strings.TrimSpace(string(f.PaymentMethod))))
	return f
}

// MissingFields lists the blank required fields. A payment method is only
// required when there is something to pay.
func (f Form) MissingFields(total int64) []string {
	f = f.normalized()
	var missing []string
	if f.Name == "" {
		missing = append(missing, "name")
	}
	if f.Email == "" {
		missing = append(missing, "email")
	}
	if f.Phone == "" {
		missing = append(missing, "phone")
	}
	if f.Address == "" {
		missing = append(missing, "address")
	}
	if total > 0 && f.PaymentMethod == "" {
		missing = append(missing, "payment_method")
	}
	return missing
}

func (f Form) Valid(total int64) bool {
	return f.Validate(total) == nil
}

func (f Form) Validate(total int64) error {
	if missing := f.MissingFields(total); len(missing) > 0 {
		return apperr.InvalidArgumentf("missing required fields: %s", strings.Join(missing, ", "))
	}
	switch f.normalized().PaymentMethod {
	case "", pricing.PlanAdvance10, pricing.PlanFull100, pricing.PlanCOD, pricing.PlanGateway:
		return nil
	default:
		return apperr.InvalidArgumentf("unknown payment method %q", f.PaymentMethod)
	}
}

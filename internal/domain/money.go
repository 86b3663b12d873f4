package domain

import "math"

// Charge is the amount due at booking time, split into its components
type Charge struct {
	DepositCents   int64
	TaxCents       int64
	AmountDueCents int64
}

// ComputeCharge calculates the deposit and tax due at booking time.
// depositPercent and taxRate fall back to the provided defaults when the
// service leaves them unset. Rounding is half-up to whole minor units.
func ComputeCharge(svc *Service, defaultDepositPercent, defaultTaxRate float64) Charge {
	depositPct := defaultDepositPercent
	if svc.DepositPercent != nil {
		depositPct = *svc.DepositPercent
	}

	taxRate := defaultTaxRate
	if svc.TaxRate != nil {
		taxRate = *svc.TaxRate
	}

	deposit := roundHalfUp(float64(svc.BasePriceCents) * depositPct)
	tax := roundHalfUp(float64(deposit) * taxRate)

	return Charge{
		DepositCents:   deposit,
		TaxCents:       tax,
		AmountDueCents: deposit + tax,
	}
}

func roundHalfUp(v float64) int64 {
	return int64(math.Round(v))
}

package pricing

import (
	"github.com/shopspring/decimal"
)

const (
	TrackRatePerFoot   int64 = 500
	HubSurcharge       int64 = 6500
	InstallationFee    int64 = 4500
	RemoteSetupFee     int64 = 1500
	FullPaymentPercent int64 = 5
	AdvancePercent     int64 = 10
)

// Base prices do not vary by motor type yet.
var basePrices = map[CurtainType]map[MotorType]int64{
	CurtainSliding: {MotorWiFi: 36000, MotorZigbee: 36000},
	CurtainRoller:  {MotorWiFi: 28000, MotorZigbee: 28000},
}

// Breakdown is denominated in whole currency units.
type Breakdown struct {
	Base            int64 `json:"base"`
	Track           int64 `json:"track"`
	Hub             int64 `json:"hub"`
	InstallationFee int64 `json:"installation_fee"`
	RemoteSetupFee  int64 `json:"remote_setup_fee"`
	Subtotal        int64 `json:"subtotal"`
	Discount        int64 `json:"discount"`
	Total           int64 `json:"total"`
	DueNow          int64 `json:"due_now"`
}

func (b Breakdown) IsZero() bool {
	return b == Breakdown{}
}

// Compute prices a configuration. Partial configurations price to zero.
func Compute(cfg Configuration) Breakdown {
	if !cfg.Complete() {
		return Breakdown{}
	}

	b := Breakdown{
		Base:  basePrices[cfg.Curtain][cfg.Motor],
		Track: TrackPrice(cfg.WidthFeet),
	}
	if cfg.Motor == MotorZigbee {
		b.Hub = HubSurcharge
	}
	if cfg.Installation == InstallationVendor {
		b.InstallationFee = InstallationFee
	}
	if cfg.RemoteSetup {
		b.RemoteSetupFee = RemoteSetupFee
	}
	b.Subtotal = b.Base + b.Track + b.Hub + b.InstallationFee + b.RemoteSetupFee

	b.Discount = Discount(b.Subtotal, cfg.Plan)
	b.Total = b.Subtotal - b.Discount

	switch cfg.Plan {
	case PlanAdvance10:
		b.DueNow = percentOf(b.Total, AdvancePercent)
	case PlanFull100, PlanGateway:
		b.DueNow = b.Total
	}
	return b
}

// TrackPrice rounds width × rate to the nearest whole unit.
func TrackPrice(widthFeet float64) int64 {
	if !(widthFeet > 0) {
		return 0
	}
	return decimal.NewFromFloat(widthFeet).
		Mul(decimal.NewFromInt(TrackRatePerFoot)).
		Round(0).
		IntPart()
}

// Discount is the amount taken off subtotal when paying with plan. Only
// full_100 is discounted.
func Discount(subtotal int64, plan PaymentPlan) int64 {
	if plan != PlanFull100 || subtotal <= 0 {
		return 0
	}
	return percentOf(subtotal, FullPaymentPercent)
}

func percentOf(amount, percent int64) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.New(percent, -2)).
		Round(0).
		IntPart()
}

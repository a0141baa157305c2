package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_PartialConfigurationIsZero(t *testing.T) {
	tests := []struct {
		name string
		cfg  Configuration
	}{
		{name: "nothing selected", cfg: Configuration{Plan: PlanFull100}},
		{name: "curtain only", cfg: Configuration{Curtain: CurtainSliding, WidthFeet: 12, Plan: PlanCOD}},
		{name: "motor only", cfg: Configuration{Motor: MotorZigbee, RemoteSetup: true, Plan: PlanCOD}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Compute(tt.cfg)
			assert.True(t, b.IsZero(), "expected zero breakdown, got %+v", b)
		})
	}
}

func TestCompute_SlidingWiFiCashOnDelivery(t *testing.T) {
	cfg := Configuration{
		Curtain:      CurtainSliding,
		Motor:        MotorWiFi,
		WidthFeet:    10,
		Installation: InstallationSelf,
		Plan:         PlanCOD,
	}

	b := Compute(cfg)

	assert.Equal(t, Breakdown{
		Base:     36000,
		Track:    5000,
		Subtotal: 41000,
		Total:    41000,
	}, b)
}

func TestCompute_FullPaymentDiscount(t *testing.T) {
	cfg := Configuration{
		Curtain:      CurtainSliding,
		Motor:        MotorWiFi,
		WidthFeet:    10,
		Installation: InstallationSelf,
		Plan:         PlanFull100,
	}

	b := Compute(cfg)

	assert.Equal(t, int64(41000), b.Subtotal)
	assert.Equal(t, int64(2050), b.Discount)
	assert.Equal(t, int64(38950), b.Total)
	assert.Equal(t, b.Total, b.DueNow)
}

func TestCompute_Surcharges(t *testing.T) {
	cfg := Configuration{
		Curtain:      CurtainRoller,
		Motor:        MotorZigbee,
		WidthFeet:    4.5,
		Installation: InstallationVendor,
		Plan:         PlanAdvance10,
	}

	b := Compute(cfg)

	assert.Equal(t, int64(28000), b.Base)
	assert.Equal(t, int64(2250), b.Track)
	assert.Equal(t, HubSurcharge, b.Hub)
	assert.Equal(t, InstallationFee, b.InstallationFee)
	assert.Zero(t, b.RemoteSetupFee)
	assert.Equal(t, b.Base+b.Track+b.Hub+b.InstallationFee, b.Subtotal)
	assert.Zero(t, b.Discount)
	assert.Equal(t, b.Subtotal, b.Total)
	assert.Equal(t, int64(4125), b.DueNow)
}

func TestCompute_TotalIsSubtotalMinusDiscount(t *testing.T) {
	plans := []PaymentPlan{PlanAdvance10, PlanFull100, PlanCOD, PlanGateway}
	widths := []float64{0, 1, 3.3, 7.75, 20}

	for _, plan := range plans {
		for _, w := range widths {
			for _, remote := range []bool{false, true} {
				cfg := Configuration{
					Curtain:      CurtainSliding,
					Motor:        MotorZigbee,
					WidthFeet:    w,
					Installation: InstallationSelf,
					RemoteSetup:  remote,
					Plan:         plan,
				}
				b := Compute(cfg)

				assert.Equal(t, b.Subtotal-b.Discount, b.Total)
				if plan == PlanFull100 {
					assert.InDelta(t, float64(b.Subtotal)*0.05, float64(b.Discount), 0.5)
				} else {
					assert.Zero(t, b.Discount)
				}
			}
		}
	}
}

func TestCompute_CashOnDeliveryDueNowIsZero(t *testing.T) {
	b := Compute(Configuration{Curtain: CurtainRoller, Motor: MotorWiFi, Plan: PlanCOD})
	assert.Zero(t, b.DueNow)
	assert.Equal(t, int64(28000), b.Total)
}

func TestDiscount_OnlyFullPayment(t *testing.T) {
	assert.Equal(t, int64(2050), Discount(41000, PlanFull100))
	assert.Equal(t, int64(4100), Discount(82000, PlanFull100))
	assert.Zero(t, Discount(41000, PlanCOD))
	assert.Zero(t, Discount(41000, PlanAdvance10))
	assert.Zero(t, Discount(41000, PlanGateway))
	assert.Zero(t, Discount(0, PlanFull100))
}

func TestTrackPrice_Monotonic(t *testing.T) {
	prev := TrackPrice(0)
	for w := 0.0; w <= 40; w += 0.25 {
		cur := TrackPrice(w)
		assert.GreaterOrEqual(t, cur, prev, "width %v", w)
		prev = cur
	}
	assert.Zero(t, TrackPrice(-3))
}

func TestParseWidth(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{" 7.5 ", 7.5},
		{"", 0},
		{"ten", 0},
		{"-4", 0},
		{"NaN", 0},
		{"+Inf", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseWidth(tt.in), "input %q", tt.in)
	}
}

func TestNewConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		in      ConfigurationInput
		wantErr string
	}{
		{
			name: "valid",
			in:   ConfigurationInput{Curtain: "Sliding", Motor: "wifi", Width: "10", Installation: "self", Plan: "full_100"},
		},
		{
			name: "defaults plan to cod",
			in:   ConfigurationInput{Curtain: "roller", Motor: "zigbee"},
		},
		{
			name:    "remote setup with vendor installation",
			in:      ConfigurationInput{Curtain: "roller", Motor: "zigbee", Installation: "vendor", RemoteSetup: true},
			wantErr: "remote setup cannot be combined",
		},
		{
			name:    "unknown motor",
			in:      ConfigurationInput{Curtain: "roller", Motor: "bluetooth"},
			wantErr: "unknown motor type",
		},
		{
			name:    "unknown plan",
			in:      ConfigurationInput{Curtain: "roller", Motor: "wifi", Plan: "crypto"},
			wantErr: "unknown payment plan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfiguration(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, cfg.Plan)
		})
	}
}

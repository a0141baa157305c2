package pricing

import (
	"math"
	"strconv"
	"strings"

	"curtain_store/internal/apperr"
)

type CurtainType string

const (
	CurtainUnset   CurtainType = ""
	CurtainSliding CurtainType = "sliding"
	CurtainRoller  CurtainType = "roller"
)

type MotorType string

const (
	MotorUnset  MotorType = ""
	MotorWiFi   MotorType = "wifi"
	MotorZigbee MotorType = "zigbee"
)

type Installation string

const (
	InstallationUnset  Installation = ""
	InstallationSelf   Installation = "self"
	InstallationVendor Installation = "vendor"
)

type PaymentPlan string

const (
	PlanAdvance10 PaymentPlan = "advance_10"
	PlanFull100   PaymentPlan = "full_100"
	PlanCOD       PaymentPlan = "cod"
	PlanGateway   PaymentPlan = "gateway"
)

// Configuration is the set of choices a shopper makes on the product detail,
// services and installation views.
type Configuration struct {
	Curtain      CurtainType  `json:"curtain_type"`
	Motor        MotorType    `json:"motor_type"`
	WidthFeet    float64      `json:"width_feet"`
	Installation Installation `json:"installation"`
	RemoteSetup  bool         `json:"remote_setup"`
	Plan         PaymentPlan  `json:"payment_plan"`
}

// ConfigurationInput carries the raw form values; Width is free text.
type ConfigurationInput struct {
	Curtain      string `json:"curtain_type"`
	Motor        string `json:"motor_type"`
	Width        string `json:"width"`
	Installation string `json:"installation"`
	RemoteSetup  bool   `json:"remote_setup"`
	Plan         string `json:"payment_plan"`
}

func NewConfiguration(in ConfigurationInput) (Configuration, error) {
	cfg := Configuration{
		Curtain:      CurtainType(strings.ToLower(strings.TrimSpace(in.Curtain))),
		Motor:        MotorType(strings.ToLower(strings.TrimSpace(in.Motor))),
		WidthFeet:    ParseWidth(in.Width),
		Installation: Installation(strings.ToLower(strings.TrimSpace(in.Installation))),
		RemoteSetup:  in.RemoteSetup,
		Plan:         PaymentPlan(strings.ToLower(strings.TrimSpace(in.Plan))),
	}
	if cfg.Plan == "" {
		cfg.Plan = PlanCOD
	}
	return cfg, cfg.Validate()
}

func (c Configuration) Validate() error {
	switch c.Curtain {
	case CurtainUnset, CurtainSliding, CurtainRoller:
	default:
		return apperr.InvalidArgumentf("unknown curtain type %q", c.Curtain)
	}
	switch c.Motor {
	case MotorUnset, MotorWiFi, MotorZigbee:
	default:
		return apperr.InvalidArgumentf("unknown motor type %q", c.Motor)
	}
	switch c.Installation {
	case InstallationUnset, InstallationSelf, InstallationVendor:
	default:
		return apperr.InvalidArgumentf("unknown installation option %q", c.Installation)
	}
	switch c.Plan {
	case PlanAdvance10, PlanFull100, PlanCOD, PlanGateway:
	default:
		return apperr.InvalidArgumentf("unknown payment plan %q", c.Plan)
	}
	if c.RemoteSetup && c.Installation == InstallationVendor {
		return apperr.InvalidArgument("remote setup cannot be combined with vendor installation")
	}
	if c.WidthFeet < 0 || math.IsNaN(c.WidthFeet) || math.IsInf(c.WidthFeet, 0) {
		return apperr.InvalidArgument("width must be a finite, non-negative number")
	}
	return nil
}

// Complete reports whether both curtain and motor are chosen.
func (c Configuration) Complete() bool {
	return c.Curtain != CurtainUnset && c.Motor != MotorUnset
}

// ParseWidth reads a width in feet from user input. Anything that is not a
// finite positive number is 0.
func ParseWidth(raw string) float64 {
	w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return 0
	}
	return w
}

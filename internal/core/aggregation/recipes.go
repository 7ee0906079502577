package aggregation

import (
	"context"
	"math"

	v1 "github.com/wattline/wattline/internal/api/v1"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
)

// Builtin returns the recipes every deployment registers.
func Builtin() []Params {
	var out []Params
	add := func(name string, src, dst resource.Unit, opt Option, def bool, scale float64, per Combinator, cross string) *Params {
		out = append(out, Params{
			Name:       name,
			SourceUnit: src,
			TargetUnit: dst,
			Option:     opt,
			Default:    def,
			Scale:      scale,
			PerBucket:  per,
			Cross:      cross,
		})
		return &out[len(out)-1]
	}

	// Power.
	add("power_mean", resource.Watt, resource.Watt, OptionMean, true, 1, Mean, OpSum)
	add("power_peak", resource.Watt, resource.Watt, OptionMax, false, 1, Max, OpMax)
	add("power_floor", resource.Watt, resource.Watt, OptionMin, false, 1, Min, OpMin)
	add("power_mean_kw", resource.Watt, resource.Kilowatt, OptionMean, true, 0.001, Mean, OpSum)
	add("power_energy", resource.Watt, resource.WattHour, OptionEnergy, true, 1, PowerToEnergy, OpSum)
	add("power_energy_kwh", resource.Watt, resource.KilowattHour, OptionEnergy, true, 0.001, PowerToEnergy, OpSum)
	add("kw_mean", resource.Kilowatt, resource.Kilowatt, OptionMean, true, 1, Mean, OpSum)
	add("kw_peak", resource.Kilowatt, resource.Kilowatt, OptionMax, false, 1, Max, OpMax)
	add("kw_mean_w", resource.Kilowatt, resource.Watt, OptionMean, true, 1000, Mean, OpSum)
	add("kw_energy_kwh", resource.Kilowatt, resource.KilowattHour, OptionEnergy, true, 1, PowerToEnergy, OpSum)

	// Energy.
	add("energy_sum", resource.WattHour, resource.WattHour, OptionSum, true, 1, Sum, OpSum)
	add("energy_peak", resource.WattHour, resource.WattHour, OptionMax, false, 1, Max, OpMax)
	add("energy_sum_kwh", resource.WattHour, resource.KilowattHour, OptionSum, true, 0.001, Sum, OpSum)
	add("energy_power", resource.WattHour, resource.Watt, OptionPower, true, 1, EnergyToPower, OpSum)
	add("kwh_sum", resource.KilowattHour, resource.KilowattHour, OptionSum, true, 1, Sum, OpSum)
	add("kwh_sum_wh", resource.KilowattHour, resource.WattHour, OptionSum, true, 1000, Sum, OpSum)
	add("kwh_power", resource.KilowattHour, resource.Kilowatt, OptionPower, true, 1, EnergyToPower, OpSum)
	add("gas_volume", resource.CubicMetre, resource.CubicMetre, OptionSum, true, 1, Sum, OpSum)

	// Cost. Rates are per watt-hour, so kilo units are scaled down first.
	for _, src := range []struct {
		unit  resource.Unit
		scale float64
	}{
		{resource.Watt, 1},
		{resource.Kilowatt, 1000},
		{resource.WattHour, 1},
		{resource.KilowattHour, 1000},
	} {
		cost := add("cost_"+string(src.unit), src.unit, resource.Currency, OptionCost, true, src.scale, Cost, OpSum)
		cost.Joins = []Join{JoinTariff}

		cashback := add("cashback_"+string(src.unit), src.unit, resource.Currency, OptionCashback, false, src.scale, CashbackDelta, OpSum)
		cashback.Joins = []Join{JoinTariff}
		cashback.AllowedResolutions = []timegrid.Resolution{timegrid.Day}
		cashback.PreQuery = alignToDays
	}

	// Ambient sensors.
	add("temperature_mean", resource.Celsius, resource.Celsius, OptionMean, true, 1, Mean, OpAvg)
	add("temperature_max", resource.Celsius, resource.Celsius, OptionMax, false, 1, Max, OpMax)
	add("temperature_min", resource.Celsius, resource.Celsius, OptionMin, false, 1, Min, OpMin)
	add("co2_mean", resource.PPM, resource.PPM, OptionMean, true, 1, Mean, OpAvg)
	add("co2_max", resource.PPM, resource.PPM, OptionMax, false, 1, Max, OpMax)
	pct := add("percent_mean", resource.Percent, resource.Percent, OptionMean, true, 1, Mean, OpAvg)
	pct.PostQuery = clampPercent

	return out
}

// alignToDays widens the window to whole local days.
func alignToDays(_ context.Context, rules *Rules) error {
	if !rules.From.IsZero() {
		rules.From = timegrid.BucketTruncate(rules.From, timegrid.Day, rules.Location)
	}
	if start := timegrid.BucketTruncate(rules.To, timegrid.Day, rules.Location); start.Before(rules.To) {
		rules.To = timegrid.Next(start, timegrid.Day, rules.Location)
	}
	return nil
}

func clampPercent(rows []v1.TimeValue) []v1.TimeValue {
	for i := range rows {
		if rows[i].Value != nil {
			v := math.Max(0, math.Min(100, *rows[i].Value))
			rows[i].Value = &v
		}
	}
	return rows
}

package aggregation

import (
	"github.com/shopspring/decimal"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/tariff"
)

// Cost prices the energy of a bucket with the normal tariffs and adds the
// standing charge of the bucket's resolution. A collapsed bucket carries
// the standing charges of every day and month it spans.
func Cost(in *BucketInput) (float64, bool) {
	if len(in.Samples) == 0 {
		return 0, false
	}

	total := energyCost(in, tariff.KindNormal)
	if in.Collapsed {
		total = total.Add(tariff.StandingCharges(in.Tariffs, in.Start, in.End, in.Location, tariff.KindNormal))
	} else {
		total = total.Add(tariff.BucketStandingCharge(in.Tariffs, in.Resolution, in.Start, in.Location, tariff.KindNormal))
	}

	f, _ := total.Float64()
	return f, true
}

// CashbackDelta returns what the cash-back tariffs would pay minus what the
// normal tariffs charge for the same energy. Standing charges cancel out.
func CashbackDelta(in *BucketInput) (float64, bool) {
	if len(in.Samples) == 0 {
		return 0, false
	}
	cashback := energyCost(in, tariff.KindCashbackTOU, tariff.KindCashbackFlat)
	normal := energyCost(in, tariff.KindNormal)
	f, _ := cashback.Sub(normal).Float64()
	return f, true
}

// energyCost sums energy × unit rate over the samples, each priced with the
// tariff in force at its own time. Samples with no tariff cost nothing.
func energyCost(in *BucketInput, kinds ...tariff.Kind) decimal.Decimal {
	total := decimal.Zero
	for _, s := range in.Samples {
		t := tariff.Select(in.Tariffs, s.Time, in.Location, kinds...)
		if t == nil {
			continue
		}
		total = total.Add(t.UnitEnergyCost.Mul(decimal.NewFromFloat(sampleEnergy(in, s))))
	}
	return total
}

// sampleEnergy returns the watt-hours of one sample. Power samples are
// integrated over their native period; energy samples are taken as is.
func sampleEnergy(in *BucketInput, s resource.Sample) float64 {
	switch in.Resource.Unit {
	case resource.Watt, resource.Kilowatt:
		return s.Value * samplePeriod(in, s).Hours()
	}
	return s.Value
}

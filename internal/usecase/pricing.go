package usecase

import "math"

// PriceBreakdown is the derived price of one order. Total is the gross fare
// before surcharge, PreTax the payable amount stored on the checkout, Tax the
// surcharge component reported to the caller.
type PriceBreakdown struct {
	Total  float64
	PreTax float64
	Net    float64
	Tax    float64
}

// ComputePrice derives the breakdown for passengers seats at fare each,
// infants riding free. rate is the surcharge rate, e.g. 0.10.
//
//	total  = (passengers - infants) * fare
//	preTax = total * (1 + rate)
//	net    = preTax / (1 + rate)
//	tax    = round2(preTax - net)
func ComputePrice(fare float64, passengers, infants int, rate float64) PriceBreakdown {
	total := float64(passengers-infants) * fare
	preTax := total + total*rate
	net := preTax / (1 + rate)
	tax := round2(preTax - net)

	return PriceBreakdown{
		Total:  total,
		PreTax: preTax,
		Net:    net,
		Tax:    tax,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

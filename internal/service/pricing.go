package service

// EstimatePrice computes the total price of a booking in cents.
//
// The total starts at the flat base price when one is configured and zero
// otherwise, then adds perGuest × guests when a per-guest rate is
// configured.  When neither is configured the result is nil: "no price
// configured" must stay distinguishable from "free".
//
// This is the only place the rule is implemented; the quote endpoint and
// the reservation creator both call it.
func EstimatePrice(basePrice, perGuest *int64, guests int) *int64 {
	if basePrice == nil && perGuest == nil {
		return nil
	}
	var total int64
	if basePrice != nil {
		total = *basePrice
	}
	if perGuest != nil {
		total += *perGuest * int64(guests)
	}
	return &total
}

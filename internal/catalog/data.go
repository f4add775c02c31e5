package catalog

import "propcomfy/internal/domain"

func i64(v int64) *int64 { return &v }

func builtinUnits() domain.UnitsMap {
	return domain.UnitsMap{
		"Lekki": {
			{Title: "Cozy Studio by the Lagoon", Bedrooms: 0, Guests: 2, PricePerNight: 65000, Highlights: []string{"Wifi", "Kitchen", "Security"}},
			{Title: "Bright 1BR with Pool Access", Bedrooms: 1, Guests: 3, PricePerNight: 85000, Highlights: []string{"Pool", "Gym", "Wifi"}},
		},
		"Victoria Island": {
			{Title: "Modern 1BR with Terrace", Bedrooms: 1, Guests: 3, PricePerNight: 120000, Highlights: []string{"Terrace", "Security", "AC"}},
			{Title: "Sea View 2BR Apartment", Bedrooms: 2, Guests: 5, PricePerNight: 145000, Highlights: []string{"Sea view", "Generator", "Parking"}},
		},
		"Ajah": {
			{Title: "Minimalist Studio Close to Palms", Bedrooms: 0, Guests: 2, PricePerNight: 50000, Highlights: []string{"Wifi", "AC", "Security"}},
		},
		"Ikeja": {
			{Title: "Ikeja GRA 1BR Near Airport", Bedrooms: 1, Guests: 2, PricePerNight: 60000, Highlights: []string{"Wifi", "Parking", "Security"}},
		},
	}
}

func builtinLocations() []domain.Location {
	sa, rent, land := domain.CategoryServiceApartment, domain.CategoryRent, domain.CategoryLand
	return []domain.Location{
		{
			City:           "Lekki",
			Neighborhoods:  []string{"Lekki Phase 1", "Ikate", "Chevron"},
			Categories:     []domain.Category{sa, rent, land},
			MedianPriceNGN: i64(90000),
			Highlights:     []string{"Gated estates", "Proximity to VI", "Modern serviced units"},
			Laws: []domain.LawNote{
				{Title: "Tenancy Law (Lagos)", Summary: "Defines tenant/landlord rights, notice periods, and rent review guidelines."},
				{Title: "Service Charge Transparency", Summary: "Landlords must disclose service charge scope and reconciliation annually."},
			},
			Payments: domain.PaymentPolicy{
				MinDepositPercent:  20,
				InstallmentOptions: "3–12 month plans common for off-plan and some rentals (subject to checks).",
				RefundPolicy:       "Deposits refundable less administrative fees if conditions are unmet before exchange.",
			},
			Media: []string{"https://images.unsplash.com/photo-1502005229762-cf1b2da7c05c?q=80&w=1200&auto=format&fit=crop"},
		},
		{
			City:           "Victoria Island",
			Neighborhoods:  []string{"Oniru", "Ozumba Mbadiwe"},
			Categories:     []domain.Category{sa, rent},
			MedianPriceNGN: i64(140000),
			Highlights:     []string{"Prime business district", "Sea views", "High security buildings"},
			Laws: []domain.LawNote{
				{Title: "Condo/Strata Rules", Summary: "Building by-laws often govern short-lets, pets, and alterations."},
				{Title: "Title Verification", Summary: "Always verify Governor’s Consent and deed chain for long leases."},
			},
			Payments: domain.PaymentPolicy{
				MinDepositPercent:  30,
				InstallmentOptions: "Quarterly payments typical for high-end rentals; off-plan varies by developer.",
				RefundPolicy:       "Developer contracts stipulate refund steps; read termination clauses carefully.",
			},
			Media: []string{"https://images.unsplash.com/photo-1505691723518-36a5ac3b2d95?q=80&w=1200&auto=format&fit=crop"},
		},
		{
			City:           "Ikeja",
			Neighborhoods:  []string{"GRA", "Allen", "Opebi"},
			Categories:     []domain.Category{sa, rent, land},
			MedianPriceNGN: i64(65000),
			Highlights:     []string{"Close to airport", "Quieter streets", "Corporate stays"},
			Laws: []domain.LawNote{
				{Title: "Lagos Planning Permit", Summary: "Development and change-of-use require permits from LASPPPA/LASBCA."},
			},
			Payments: domain.PaymentPolicy{
				MinDepositPercent:  15,
				InstallmentOptions: "Monthly/Quarterly for rents; staged payments for land with excision/COO.",
				RefundPolicy:       "Subject to due diligence outcomes; ensure escrow or trustee arrangements.",
			},
			Media: []string{"https://images.unsplash.com/photo-1494526585095-c41746248156?q=80&w=1200&auto=format&fit=crop"},
		},
		{
			City:           "Abuja",
			Neighborhoods:  []string{"Central Area", "Wuse", "Gwarinpa"},
			Categories:     []domain.Category{sa, rent, land},
			MedianPriceNGN: i64(95000),
			Highlights:     []string{"Planned districts", "Good infrastructure", "Steady power in select estates"},
			Laws: []domain.LawNote{
				{Title: "FCTA Land Administration", Summary: "Titles via R of O/Statutory Right—verify with AGIS and consent for transfer."},
				{Title: "Short-let Policies", Summary: "Some districts impose short-let restrictions—confirm HOA rules."},
			},
			Payments: domain.PaymentPolicy{
				MinDepositPercent:  20,
				InstallmentOptions: "6–18 month developer plans for land/off-plan; proof of income required.",
				RefundPolicy:       "Cooling-off varies; ensure clauses on delays and completion milestones.",
			},
			Media: []string{"https://images.unsplash.com/photo-1499955085172-a104c9463ece?q=80&w=1200&auto=format&fit=crop"},
		},
	}
}

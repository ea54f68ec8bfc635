package resolution

// Shared fixtures: a camper-van catalog shaped like the production seed data.

func testElements() []Element {
	return []Element{
		{Code: "ANTENA_PAR", Name: "Antena parabólica", Keywords: []string{"antena", "antena parabolica", "parabolica"}, SortOrder: 1},
		{Code: "PORTABICIS", Name: "Portabicicletas", Keywords: []string{"portabicis", "portabicicletas"}, SortOrder: 2},
		{Code: "ESC_MEC", Name: "Escalera mecánica", Keywords: []string{"escalera", "escalera mecanica"}, SortOrder: 3},
		{Code: "TOLDO_LAT", Name: "Toldo lateral", Keywords: []string{"toldo", "toldo lateral"}, SortOrder: 4},
		{Code: "PLACA_200W", Name: "Placa solar 200W", Keywords: []string{"placa solar", "placas solares", "placa"}, SortOrder: 5},
		{Code: "CLARABOYA", Name: "Claraboya", Keywords: []string{"claraboya"}, SortOrder: 6},
		{Code: "VENTANA", Name: "Ventana lateral", Keywords: []string{"ventana"}, SortOrder: 7},
		{Code: "SUSP", Name: "Suspensión", Keywords: []string{"suspension"}, SortOrder: 8},
		{Code: "SUSP_DEL", Name: "Suspensión delantera", BaseCode: "SUSP", VariantLabel: "Delantera", Keywords: []string{"delantera"}, SortOrder: 9},
		{Code: "SUSP_TRAS", Name: "Suspensión trasera", BaseCode: "SUSP", VariantLabel: "Trasera", Keywords: []string{"trasera"}, SortOrder: 10},
	}
}

// testTiers mirrors the seeded camper tariff ladder: T6 is the cheap
// accessories tier, T3 bundles the common roof work and includes T6, T2 caps
// how much of T3 it grants, T1 includes everything.
func testTiers() []Tier {
	return []Tier{
		{
			Code: "T6", Name: "Tarifa 6", Price: 59, SortOrder: 6, Active: true,
			Inclusions: []Inclusion{
				{ElementCode: "ANTENA_PAR", MaxQuantity: 1},
				{ElementCode: "PORTABICIS", MaxQuantity: Unlimited},
			},
		},
		{
			Code: "T5", Name: "Tarifa 5", Price: 210, SortOrder: 5, Active: true,
			Inclusions: []Inclusion{{ElementCode: "VENTANA", MaxQuantity: 1}},
			References: []TierReference{{TierCode: "T6", MaxElements: Unlimited}},
		},
		{
			Code: "T4", Name: "Tarifa 4", Price: 200, SortOrder: 4, Active: true,
			Inclusions: []Inclusion{{ElementCode: "CLARABOYA", MaxQuantity: 2}},
			References: []TierReference{{TierCode: "T6", MaxElements: Unlimited}},
		},
		{
			Code: "T3", Name: "Tarifa 3", Price: 180, SortOrder: 3, Active: true,
			Inclusions: []Inclusion{
				{ElementCode: "ESC_MEC", MaxQuantity: 1},
				{ElementCode: "TOLDO_LAT", MaxQuantity: 1},
				{ElementCode: "PLACA_200W", MaxQuantity: 1},
			},
			References: []TierReference{{TierCode: "T6", MaxElements: Unlimited}},
		},
		{
			Code: "T2", Name: "Tarifa 2", Price: 230, SortOrder: 2, Active: true,
			References: []TierReference{
				{TierCode: "T3", MaxElements: 2},
				{TierCode: "T6", MaxElements: Unlimited},
			},
		},
		{
			Code: "T1", Name: "Tarifa 1", Price: 270, SortOrder: 1, Active: true,
			References: []TierReference{
				{TierCode: "T2", MaxElements: Unlimited},
				{TierCode: "T3", MaxElements: Unlimited},
				{TierCode: "T4", MaxElements: Unlimited},
				{TierCode: "T5", MaxElements: Unlimited},
				{TierCode: "T6", MaxElements: Unlimited},
			},
		},
	}
}

func testSnapshot() *Snapshot {
	return NewSnapshot("camper", 1, testElements(), testTiers(), SnapshotWarnings{})
}

func testSnapshotWithWarnings(w SnapshotWarnings) *Snapshot {
	return NewSnapshot("camper", 1, testElements(), testTiers(), w)
}

package testutil

// WithStandardCars adds the two cars used throughout the docs: a Dublin Toyota
// sedan and a Waterford Ford hatchback.
func (b *Builder) WithStandardCars() *Builder {
	return b.
		WithCar("Toyota", "Corolla",
			CarType("Sedan"), Price(15000), Registration("221-D-12345"), Year(2021)).
		WithCar("Ford", "Focus",
			CarType("Hatchback"), Price(16000), Registration("219-W-67890"), Year(2019))
}

// WithMixedLot adds a wider spread of makes, types, prices and registrations,
// including a malformed registration.
func (b *Builder) WithMixedLot() *Builder {
	return b.
		WithStandardCars().
		WithCar("toyota", "Yaris",
			CarType("Hatchback"), Price(9000), Registration("191-c-4411"), Year(2019)).
		WithCar("Volkswagen", "Golf",
			CarType("hatchback"), Price(15500), Registration("231-KK-98"), Year(2023)).
		WithCar("BMW", "320d",
			CarType("SEDAN"), Price(32000), Registration("222WX123"), Year(2022)).
		WithCar("Skoda", "Octavia",
			CarType("Estate"), Price(0), Registration("182-WX-7"), Year(2018))
}

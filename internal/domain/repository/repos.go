package repository

// Repos agrupa los repositorios de un mismo ámbito: el pool (lecturas sueltas)
// o una transacción (todo lo que se lee y escribe dentro de una acción).
type Repos interface {
	Products() ProductRepository
	PriceOptions() PriceOptionRepository
	Recipes() RecipeRepository
	Mutations() StockMutationRepository
	Rooms() RoomRepository
	Customers() CustomerRepository
	Sales() SaleRepository
}

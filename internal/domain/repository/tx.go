package repository

// TxRepos repositorios atados a una misma transacción. Todo lo escrito a través de
// ellos se confirma o se descarta en bloque.
type TxRepos struct {
	Products  ProductRepository
	Batches   BatchRepository
	Sales     SaleRepository
	Returns   ReturnRepository
	Movements MovementRepository
}

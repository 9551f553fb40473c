package repository

// TxRepos repositorios atados a una misma transacción.
// Todo lo escrito a través de ellos se confirma o se descarta junto.
type TxRepos struct {
	Stock     StockRepository
	Movements StockMovementRepository
	Transfers TransferRepository
	Orders    OrderRepository
	Products  ProductRepository
}

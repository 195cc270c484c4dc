package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gudangmaju/motorparts-api/internal/application/inventory"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta escrituras de inventario y ledger dentro de una transacción
// de MongoDB. Requiere un despliegue con replica set; con un nodo standalone
// las sesiones transaccionales no están disponibles.
type TxRunner struct {
	client *Client
}

// NewTxRunner construye el ejecutor transaccional.
func NewTxRunner(client *Client) *TxRunner {
	return &TxRunner{client: client}
}

// Run abre una sesión, ejecuta fn dentro de una transacción y confirma.
// El contexto que recibe fn es el SessionContext, así que los repositorios
// construidos aquí participan de la misma transacción.
func (t *TxRunner) Run(ctx context.Context, fn func(txCtx context.Context, parts repository.PartRepository, ledger repository.TransactionRepository) error) error {
	session, err := t.client.client.StartSession()
	if err != nil {
		return fmt.Errorf("start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	parts := NewPartRepository(t.client)
	ledger := NewTransactionRepository(t.client)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx, parts, ledger)
	})
	return err
}

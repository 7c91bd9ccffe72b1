// Package agents wires the specialist handlers into the registry the
// orchestrator routes through.
package agents

import (
	"github.com/kchia/paperflow-ai/agent/agents/inventory"
	"github.com/kchia/paperflow-ai/agent/agents/quoting"
	"github.com/kchia/paperflow-ai/agent/agents/sales"
	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

type registryImpl struct {
	inventory contractx.Handler
	quoting   contractx.Handler
	sales     contractx.Handler
}

func (r *registryImpl) Inventory() contractx.Handler {
	return r.inventory
}

func (r *registryImpl) Quoting() contractx.Handler {
	return r.quoting
}

func (r *registryImpl) Sales() contractx.Handler {
	return r.sales
}

func NewRegistry(
	inv contractx.Inventory,
	ledger contractx.Ledger,
	history contractx.QuoteHistory,
) (contractx.Registry, error) {
	inventoryHandler, err := inventory.New(inv, ledger)
	if err != nil {
		return nil, err
	}
	quotingHandler, err := quoting.New(inv, history)
	if err != nil {
		return nil, err
	}
	salesHandler, err := sales.New(inv, ledger)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		inventory: inventoryHandler,
		quoting:   quotingHandler,
		sales:     salesHandler,
	}, nil
}

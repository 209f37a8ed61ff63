package actions

import (
	"context"

	"github.com/carson-networks/pocket-planner/internal/storage"
)

// IAction is a unit of work performed inside one database transaction.
// Returning an error rolls the transaction back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// Func lets a plain function run as an action.
type Func func(ctx context.Context, writer *storage.Writer) error

func (f Func) Perform(ctx context.Context, writer *storage.Writer) error {
	return f(ctx, writer)
}

// Name is the label used for an action in logs, e.g. "DeleteCard".
func Name(action IAction) string {
	switch action.(type) {
	case *CreateTransaction:
		return "CreateTransaction"
	case *DeleteTransaction:
		return "DeleteTransaction"
	case *DeleteCard:
		return "DeleteCard"
	case *UpdateCard:
		return "UpdateCard"
	case Func:
		return "Func"
	default:
		return "unknown"
	}
}

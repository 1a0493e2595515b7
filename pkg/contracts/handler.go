package contracts

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Pinger reports whether the backing stores are reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

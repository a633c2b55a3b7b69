package contracts

import "github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"

type ReadModel interface {
	Snapshot() snapshot.State
}

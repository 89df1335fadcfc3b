package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/types"
)

var (
	ErrUnknownKind       = errors.New("unknown entity kind")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Context keys for error values
const (
	KindKey       = "kind"
	CollectionKey = "collection"
)

func errUnknownKind(kind types.EntityKind) error {
	return goerr.Wrap(ErrUnknownKind, "unsupported entity kind", goerr.V(KindKey, kind))
}

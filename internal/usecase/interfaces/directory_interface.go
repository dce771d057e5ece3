package interfaces

import (
	"context"

	"servicios_locales/internal/domain/entities"
)

//go:generate mockgen -source=directory_interface.go -destination=mocks/directory_mock.go -package=mock_interfaces

// IServiceListingLookup reads service listings owned by the catalog.
// GetByID returns a zero-value listing (ID == 0) when the service does not exist.
type IServiceListingLookup interface {
	GetByID(ctx context.Context, id int64) (entities.ServiceListing, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]entities.ServiceListing, error)
}

// IUserDirectory resolves display identities. Unknown ids are absent from the result.
type IUserDirectory interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]entities.UserProfile, error)
}

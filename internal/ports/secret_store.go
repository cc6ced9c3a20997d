package ports

import "context"

// SecretStore holds opaque string values under slash-separated keys. Get
// reports a missing key with domain.ErrSecretNotFound; Delete of a missing
// key succeeds.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

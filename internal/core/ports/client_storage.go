package ports

// ClientStorage is durable storage on the client's side: values survive reloads
// until removed.
type ClientStorage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Client identifies the caller of an app operation.
type Client struct {
	// ID keys the client's transient navigation state.
	ID      string
	Storage ClientStorage
	// Origin is the scheme and host share links are built on.
	Origin string
}

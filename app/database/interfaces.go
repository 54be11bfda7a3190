package database

type CollectionRepository interface {
	ListCollections() ([]Collection, error)
	GetCollection(id string) (*Collection, error)
	// FindCollectionByName matches case-insensitively; returns nil when absent.
	FindCollectionByName(name string) (*Collection, error)
	// CreateCollection has create-or-fetch-on-conflict semantics: concurrent
	// creates of the same name (any casing) converge on a single row.
	CreateCollection(name string, category Category) (*Collection, error)
	GetCollectionCount() (int, error)
}

type ItemRepository interface {
	// ListItems returns items newest first; collectionID narrows the result
	// when non-empty.
	ListItems(collectionID string) ([]Item, error)
	GetItem(id string) (*Item, error)
	CreateItem(item Item) (*Item, error)
	GetItemCount() (int, error)
	// SubscribeInserts registers a callback invoked after every successful
	// CreateItem. The returned function removes the subscription.
	SubscribeInserts(fn func(Item)) func()
}

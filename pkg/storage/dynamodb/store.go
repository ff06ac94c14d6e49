package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/ewallet-ledger/pkg/storage"
)

// DynamoDBAPI defines the subset of the DynamoDB client used by the store.
// Having an interface here lets tests substitute a mock client.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the storage interfaces using AWS DynamoDB.
//
// Three tables back the store: accounts (pk id, with an optimistic version
// attribute), handles (pk handle, claiming handle uniqueness and backing the
// resolver), and records (pk account_id, sk id, the append-only history).
type Store struct {
	Client            DynamoDBAPI
	AccountsTableName string
	HandlesTableName  string
	RecordsTableName  string
}

// New creates a new Store.
func New(client DynamoDBAPI, accountsTable, handlesTable, recordsTable string) *Store {
	return &Store{
		Client:            client,
		AccountsTableName: accountsTable,
		HandlesTableName:  handlesTable,
		RecordsTableName:  recordsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

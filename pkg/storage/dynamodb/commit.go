package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/ewallet-ledger/pkg/storage"
	"github.com/google/uuid"
)

// AtomicCommit applies one ledger commit as a single TransactWriteItems
// call. Every account overwrite is conditioned on the version of the
// snapshot the decision was computed from and written back with version+1;
// every record put is guarded against id reuse. If any condition fails the
// whole commit is cancelled and ErrConflict is returned so the coordinator
// can retry from a fresh snapshot.
func (s *Store) AtomicCommit(ctx context.Context, commit storage.Commit) error {
	now := time.Now()
	items := make([]types.TransactWriteItem, 0, len(commit.Accounts)+len(commit.Records))

	for _, account := range commit.Accounts {
		snapshotVersion := account.Version
		account.Version = snapshotVersion + 1

		accountAV, err := attributevalue.MarshalMap(account)
		if err != nil {
			return fmt.Errorf("failed to marshal account %s: %w", account.Id, err)
		}

		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.AccountsTableName),
				Item:                accountAV,
				ConditionExpression: aws.String("version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", snapshotVersion)},
				},
			},
		})
	}

	for _, record := range commit.Records {
		record.Id = uuid.New().String()
		record.Timestamp = now

		recordAV, err := attributevalue.MarshalMap(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record for account %s: %w", record.AccountId, err)
		}

		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.RecordsTableName),
				Item:                recordAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		})
	}

	input := &dynamodb.TransactWriteItemsInput{TransactItems: items}

	_, err := s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for _, reason := range txc.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return fmt.Errorf("stale snapshot: %w", storage.ErrConflict)
				}
			}
		}
		return fmt.Errorf("failed to execute commit: %w", err)
	}

	return nil
}

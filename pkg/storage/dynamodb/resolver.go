package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/ewallet-ledger/pkg/storage"
)

// ResolveHandle looks up the account id owning a handle via the claim row
// written at account creation. Handles are immutable, so a resolved id never
// goes stale across commit retries.
func (s *Store) ResolveHandle(ctx context.Context, handle string) (string, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"handle": handle})
	if err != nil {
		return "", fmt.Errorf("failed to marshal handle: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.HandlesTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to get handle from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return "", fmt.Errorf("handle %q: %w", handle, storage.ErrNotFound)
	}

	var claim handleClaim
	if err := attributevalue.UnmarshalMap(result.Item, &claim); err != nil {
		return "", fmt.Errorf("failed to unmarshal handle claim: %w", err)
	}

	return claim.AccountId, nil
}

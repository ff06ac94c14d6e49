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
	"github.com/chris/ewallet-ledger/pkg/models"
	"github.com/chris/ewallet-ledger/pkg/storage"
	"github.com/google/uuid"
)

// handleClaim is the uniqueness row written next to a new account. Its bare
// existence reserves the handle; its account_id backs the resolver.
type handleClaim struct {
	Handle    string `dynamodbav:"handle"`
	AccountId string `dynamodbav:"account_id"`
}

// CreateAccount atomically persists a new account and claims its handle.
// Both puts are part of one TransactWriteItems call, so an account can never
// exist without its handle claim or vice versa.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	account.Id = uuid.New().String()
	account.CreatedAt = time.Now()

	accountAV, err := attributevalue.MarshalMap(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}
	claimAV, err := attributevalue.MarshalMap(handleClaim{Handle: account.Handle, AccountId: account.Id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal handle claim: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Claim the handle. Fails if another account holds it.
				Put: &types.Put{
					TableName:           aws.String(s.HandlesTableName),
					Item:                claimAV,
					ConditionExpression: aws.String("attribute_not_exists(handle)"),
				},
			},
			{
				// Operation 2: Create the account record.
				Put: &types.Put{
					TableName:           aws.String(s.AccountsTableName),
					Item:                accountAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for _, reason := range txc.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return nil, fmt.Errorf("handle %q: %w", account.Handle, storage.ErrHandleTaken)
				}
			}
		}
		return nil, fmt.Errorf("failed to create account in DynamoDB: %w", err)
	}

	return account, nil
}

// GetAccount retrieves an account from DynamoDB by its id. Reads are
// strongly consistent: the snapshot feeds validation inside an atomic
// attempt and must not come from a stale replica.
func (s *Store) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account id: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.AccountsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get account from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrNotFound)
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Item, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

// GetAccounts retrieves several accounts by id, in the given order. Each
// snapshot carries its version, so the commit conditions catch any account
// that changes between these reads and the write.
func (s *Store) GetAccounts(ctx context.Context, accountIDs []string) ([]models.Account, error) {
	accounts := make([]models.Account, 0, len(accountIDs))
	for _, id := range accountIDs {
		account, err := s.GetAccount(ctx, id)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

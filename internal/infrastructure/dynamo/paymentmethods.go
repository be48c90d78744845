package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-approvals-api/internal/domain"
)

// PaymentMethodRepo manages payment-method rows. PK: payment_method_id.
type PaymentMethodRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPaymentMethodRepo(client *dynamodb.Client, tableName string) *PaymentMethodRepo {
	return &PaymentMethodRepo{client: client, tableName: tableName}
}

// Get reads one row, for the display label on the operator prompt.
func (r *PaymentMethodRepo) Get(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("payment_method_id", paymentMethodID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("payment method not found: %w", domain.ErrNotFound)
	}
	var pm domain.PaymentMethod
	if err := attributevalue.UnmarshalMap(out.Item, &pm); err != nil {
		return nil, err
	}
	return &pm, nil
}

// SetVerified marks the payment method verified. Unconditional SET, so the
// call is idempotent: running it twice (duplicate callback, retry after a
// network error) leaves the row in the same state.
func (r *PaymentMethodRepo) SetVerified(ctx context.Context, paymentMethodID string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		"verified":   true,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("payment_method_id", paymentMethodID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

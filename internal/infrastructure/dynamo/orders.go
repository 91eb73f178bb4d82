package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/wardro8e/api/internal/domain"
)

// OrderItemRepo reads the order_items table. Items are written by the
// marketplace checkout flow; this service only lists them per brand.
type OrderItemRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOrderItemRepo(client *dynamodb.Client, tableName string) *OrderItemRepo {
	return &OrderItemRepo{client: client, tableName: tableName}
}

// ListByBrand returns the brand's order items newest-first via the
// brand_id-created_at-index GSI.
func (r *OrderItemRepo) ListByBrand(ctx context.Context, brandID string) ([]domain.OrderItem, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("brand_id-created_at-index"),
		KeyConditionExpression:    aws.String("#b = :v"),
		ExpressionAttributeNames:  map[string]string{"#b": "brand_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: brandID}},
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var items []domain.OrderItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

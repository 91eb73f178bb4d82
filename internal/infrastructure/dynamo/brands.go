package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/wardro8e/api/internal/domain"
)

// BrandRepo provides typed DynamoDB operations for the brands table.
// The partition key equals the owning account's id.
type BrandRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBrandRepo(client *dynamodb.Client, tableName string) *BrandRepo {
	return &BrandRepo{client: client, tableName: tableName}
}

func (r *BrandRepo) Put(ctx context.Context, b *domain.Brand) error {
	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return fmt.Errorf("marshal brand: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *BrandRepo) Get(ctx context.Context, brandID string) (*domain.Brand, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("brand_id", brandID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("brand %s: %w", brandID, domain.ErrNotFound)
	}
	var b domain.Brand
	if err := attributevalue.UnmarshalMap(out.Item, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepo) Update(ctx context.Context, brandID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("brand_id", brandID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

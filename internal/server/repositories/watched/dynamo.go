package watched

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/reelist/reelist/internal/common"
	"github.com/reelist/reelist/internal/server/models"
)

// DynamoAPI is the subset of the DynamoDB client this repository calls.
// *dynamodb.Client satisfies it; tests substitute a fake.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoRepository implements Repository on a DynamoDB table with partition
// key user_id and sort key imdb_id. Conditional expressions provide the
// same conflict semantics the Postgres composite key does.
type DynamoRepository struct {
	client DynamoAPI
	table  string
}

// movieItem is the stored representation. Timestamps are RFC 3339 strings.
type movieItem struct {
	UserID  string `dynamodbav:"user_id"`
	ImdbID  string `dynamodbav:"imdb_id"`
	Title   string `dynamodbav:"title"`
	Year    string `dynamodbav:"year"`
	Poster  string `dynamodbav:"poster"`
	AddedAt string `dynamodbav:"added_at"`
}

// NewDynamoRepository constructs a repository over the given table.
func NewDynamoRepository(client DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func (r *DynamoRepository) Create(ctx context.Context, movie *models.WatchedMovie) (*models.WatchedMovie, error) {
	item, err := attributevalue.MarshalMap(movieItem{
		UserID:  movie.UserID,
		ImdbID:  movie.ImdbID,
		Title:   movie.Title,
		Year:    movie.Year,
		Poster:  movie.Poster,
		AddedAt: movie.AddedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(imdb_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}

	return movie, nil
}

func (r *DynamoRepository) ListByUser(ctx context.Context, userID string) ([]*models.WatchedMovie, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}

	result := make([]*models.WatchedMovie, 0, len(out.Items))
	for _, raw := range out.Items {
		var item movieItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, fmt.Errorf("unmarshal error: %w", err)
		}
		addedAt, err := time.Parse(time.RFC3339Nano, item.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid added_at: %w", err)
		}
		result = append(result, &models.WatchedMovie{
			UserID:  item.UserID,
			ImdbID:  item.ImdbID,
			Title:   item.Title,
			Year:    item.Year,
			Poster:  item.Poster,
			AddedAt: addedAt,
		})
	}

	// The sort key orders by imdb_id; the API contract wants newest-first.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AddedAt.After(result[j].AddedAt)
	})

	return result, nil
}

func (r *DynamoRepository) Delete(ctx context.Context, userID, imdbID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
			"imdb_id": &types.AttributeValueMemberS{Value: imdbID},
		},
		ConditionExpression: aws.String("attribute_exists(imdb_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return common.ErrNotFound
		}
		return fmt.Errorf("dynamodb error: %w", err)
	}

	return nil
}

var _ Repository = (*DynamoRepository)(nil)

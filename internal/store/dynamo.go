package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrVersionConflict is returned by Put when the stored record changed since
// it was read. Callers re-read, re-merge, and retry.
var ErrVersionConflict = errors.New("movie record version conflict")

// MovieStore keeps the canonical per-title records in DynamoDB.
type MovieStore struct {
	db        *dynamodb.Client
	tableName string
}

func NewMovieStore(cfg aws.Config, tableName string) *MovieStore {
	endpoint := os.Getenv("DYNAMO_ENDPOINT")

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &MovieStore{db: client, tableName: tableName}
}

// Get loads one record by title. Missing records return (nil, nil).
func (s *MovieStore) Get(ctx context.Context, title string) (*models.Movie, error) {
	out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"title": &types.AttributeValueMemberS{Value: title},
		},
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var m models.Movie
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Put writes the full record, conditioned on the version it was read at.
// Two concurrent read-merge-write cycles for the same title cannot silently
// drop each other's prices; the loser gets ErrVersionConflict.
func (s *MovieStore) Put(ctx context.Context, m models.Movie) error {
	readVersion := m.Version
	m.Version++

	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return err
	}

	_, err = s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(title) OR version = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", readVersion)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return ErrVersionConflict
		}
		return err
	}
	return nil
}

// List returns up to limit records, in no particular order.
func (s *MovieStore) List(ctx context.Context, limit int32) ([]models.Movie, error) {
	out, err := s.db.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
		Limit:     aws.Int32(limit),
	})
	if err != nil {
		return nil, err
	}

	var movies []models.Movie
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// LatestPriceUpdate scans every record and returns the newest price
// lastUpdated across all providers, or the zero time when no price exists.
// Deliberately a full O(n) table scan; there is no secondary index on
// lastUpdated.
func (s *MovieStore) LatestPriceUpdate(ctx context.Context) (time.Time, error) {
	var latest time.Time
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.db.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return time.Time{}, err
		}

		var movies []models.Movie
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &movies); err != nil {
			return time.Time{}, err
		}
		for _, m := range movies {
			for _, p := range m.Prices {
				if p.LastUpdated.After(latest) {
					latest = p.LastUpdated
				}
			}
		}

		if out.LastEvaluatedKey == nil {
			return latest, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

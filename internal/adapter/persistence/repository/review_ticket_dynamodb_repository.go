package repository

import (
	"context"
	"strconv"
	"time"

	"homologacion_motos/internal/domain/entities"
	"homologacion_motos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultReviewTicketsTableName = "review_tickets"
	reviewTicketsCaseIDIndex      = "case_id-index"
)

type reviewTicketItem struct {
	ID             string `dynamodbav:"id"`
	CaseID         string `dynamodbav:"case_id"`
	ConversationID string `dynamodbav:"conversation_id"`
	TierID         string `dynamodbav:"tier_id"`
	Price          string `dynamodbav:"price"`
	CreatedAt      string `dynamodbav:"created_at"`
}

// ReviewTicketDynamoRepository persists ReviewTicket entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: case_id-index (PK: case_id)

type ReviewTicketDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IReviewTicketRepository = (*ReviewTicketDynamoRepository)(nil)

func NewReviewTicketDynamoRepository(ddb *dynamodb.Client) *ReviewTicketDynamoRepository {
	return &ReviewTicketDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("REVIEW_TICKETS_TABLE", defaultReviewTicketsTableName),
	}
}

func (r *ReviewTicketDynamoRepository) Create(ctx context.Context, t entities.ReviewTicket) (entities.ReviewTicket, error) {
	it := toReviewTicketItem(t)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.ReviewTicket{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ReviewTicket{}, err
	}
	return t, nil
}

func (r *ReviewTicketDynamoRepository) GetByCaseID(ctx context.Context, caseID string) (entities.ReviewTicket, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(reviewTicketsCaseIDIndex),
		KeyConditionExpression: aws.String("case_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: caseID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.ReviewTicket{}, err
	}
	if len(out.Items) == 0 {
		return entities.ReviewTicket{}, nil
	}

	var it reviewTicketItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.ReviewTicket{}, err
	}
	return fromReviewTicketItem(it), nil
}

func toReviewTicketItem(t entities.ReviewTicket) reviewTicketItem {
	return reviewTicketItem{
		ID:             t.ID,
		CaseID:         t.CaseID,
		ConversationID: t.ConversationID,
		TierID:         t.TierID,
		Price:          floatToString(t.Price),
		CreatedAt:      t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromReviewTicketItem(it reviewTicketItem) entities.ReviewTicket {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	price, _ := strconv.ParseFloat(it.Price, 64)
	return entities.ReviewTicket{
		ID:             it.ID,
		CaseID:         it.CaseID,
		ConversationID: it.ConversationID,
		TierID:         it.TierID,
		Price:          price,
		CreatedAt:      createdAt,
	}
}

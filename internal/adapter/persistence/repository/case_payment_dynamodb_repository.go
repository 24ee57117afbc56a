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
	defaultPaymentsTableName = "payments"
	paymentsCaseIDIndex      = "case_id-index"
)

type casePaymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	CaseID             string                 `dynamodbav:"case_id"`
	ConversationID     string                 `dynamodbav:"conversation_id"`
	Amount             string                 `dynamodbav:"amount"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// CasePaymentDynamoRepository persists CasePayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: case_id-index (PK: case_id)

type CasePaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICasePaymentRepository = (*CasePaymentDynamoRepository)(nil)

func NewCasePaymentDynamoRepository(ddb *dynamodb.Client) *CasePaymentDynamoRepository {
	return &CasePaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *CasePaymentDynamoRepository) Create(ctx context.Context, p entities.CasePayment) (entities.CasePayment, error) {
	it := toCasePaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.CasePayment{}, err
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
		return entities.CasePayment{}, err
	}
	return p, nil
}

func (r *CasePaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.CasePayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.CasePayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.CasePayment{}, nil
	}

	var it casePaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.CasePayment{}, err
	}
	return fromCasePaymentItem(it), nil
}

func (r *CasePaymentDynamoRepository) ListByCaseID(ctx context.Context, caseID string) ([]entities.CasePayment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsCaseIDIndex),
		KeyConditionExpression: aws.String("case_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: caseID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.CasePayment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it casePaymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromCasePaymentItem(it))
	}
	return items, nil
}

func toCasePaymentItem(p entities.CasePayment) casePaymentItem {
	return casePaymentItem{
		ID:                 p.ID,
		CaseID:             p.CaseID,
		ConversationID:     p.ConversationID,
		Amount:             floatToString(p.Amount),
		Date:               p.Date.UTC().Format(time.RFC3339Nano),
		Status:             string(p.Status),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromCasePaymentItem(it casePaymentItem) entities.CasePayment {
	dt, _ := time.Parse(time.RFC3339Nano, it.Date)
	amount, _ := strconv.ParseFloat(it.Amount, 64)
	return entities.CasePayment{
		ID:                 it.ID,
		CaseID:             it.CaseID,
		ConversationID:     it.ConversationID,
		Amount:             amount,
		Date:               dt,
		Status:             entities.PaymentStatus(it.Status),
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: []byte(it.ProviderPayloadRaw),
	}
}

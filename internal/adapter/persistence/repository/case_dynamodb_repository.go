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
	defaultCasesTableName    = "cases"
	casesConversationIDIndex = "conversation_id-index"
)

type casePendingItem struct {
	Text     string `dynamodbav:"text"`
	Quantity int    `dynamodbav:"quantity"`
}

type caseElementItem struct {
	Code            string            `dynamodbav:"code"`
	Quantity        int               `dynamodbav:"quantity"`
	PhotosConfirmed bool              `dynamodbav:"photos_confirmed"`
	FieldsComplete  bool              `dynamodbav:"fields_complete"`
	FieldValues     map[string]string `dynamodbav:"field_values,omitempty"`
}

type caseVariantOptionItem struct {
	Code string `dynamodbav:"code"`
	Name string `dynamodbav:"name"`
}

type casePendingVariantItem struct {
	BaseCode string                  `dynamodbav:"base_code"`
	Prompt   string                  `dynamodbav:"prompt"`
	Options  []caseVariantOptionItem `dynamodbav:"options,omitempty"`
	Quantity int                     `dynamodbav:"quantity"`
}

type caseNoteItem struct {
	At   string `dynamodbav:"at"`
	Text string `dynamodbav:"text"`
}

type caseItem struct {
	ID             string `dynamodbav:"id"`
	ConversationID string `dynamodbav:"conversation_id"`
	CategoryID     string `dynamodbav:"category_id"`
	Status         string `dynamodbav:"status"`
	Phase          string `dynamodbav:"phase"`
	ElementIndex   int    `dynamodbav:"element_index"`

	StartItems     []casePendingItem       `dynamodbav:"start_items,omitempty"`
	Elements       []caseElementItem       `dynamodbav:"elements,omitempty"`
	PendingVariant *casePendingVariantItem `dynamodbav:"pending_variant,omitempty"`
	PendingItems   []casePendingItem       `dynamodbav:"pending_items,omitempty"`

	PersonalData map[string]string `dynamodbav:"personal_data,omitempty"`
	VehicleData  map[string]string `dynamodbav:"vehicle_data,omitempty"`
	WorkshopData map[string]string `dynamodbav:"workshop_data,omitempty"`

	SelectedTierID string `dynamodbav:"selected_tier_id,omitempty"`
	TierPrice      string `dynamodbav:"tier_price,omitempty"`

	PriceCommunicated bool `dynamodbav:"price_communicated"`
	DocsImagesSent    bool `dynamodbav:"docs_images_sent"`

	ReviewTicketID string         `dynamodbav:"review_ticket_id,omitempty"`
	CancellationID string         `dynamodbav:"cancellation_id,omitempty"`
	Notes          []caseNoteItem `dynamodbav:"notes,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// CaseDynamoRepository persists Case entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: conversation_id-index (PK: conversation_id, SK: created_at)
//
// The whole case is a single item. Every action rewrites it under the
// per-conversation lock, so replay detection always reads the exact state the
// previous action left behind.

type CaseDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICaseRepository = (*CaseDynamoRepository)(nil)

func NewCaseDynamoRepository(ddb *dynamodb.Client) *CaseDynamoRepository {
	return &CaseDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CASES_TABLE", defaultCasesTableName),
	}
}

func (r *CaseDynamoRepository) Create(ctx context.Context, c entities.Case) (entities.Case, error) {
	it := toCaseItem(c)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Case{}, err
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
		return entities.Case{}, err
	}
	return c, nil
}

func (r *CaseDynamoRepository) Save(ctx context.Context, c entities.Case) (entities.Case, error) {
	it := toCaseItem(c)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Case{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Case{}, err
	}
	return c, nil
}

func (r *CaseDynamoRepository) GetByID(ctx context.Context, id string) (entities.Case, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Case{}, err
	}
	if len(out.Item) == 0 {
		return entities.Case{}, nil
	}

	var it caseItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Case{}, err
	}
	return fromCaseItem(it), nil
}

// GetCurrentByConversationID returns the newest case of the conversation, in
// whatever status. The flow layer decides what "active" means.
func (r *CaseDynamoRepository) GetCurrentByConversationID(ctx context.Context, conversationID string) (entities.Case, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(casesConversationIDIndex),
		KeyConditionExpression: aws.String("conversation_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: conversationID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return entities.Case{}, err
	}
	if len(out.Items) == 0 {
		return entities.Case{}, nil
	}

	var it caseItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Case{}, err
	}
	return fromCaseItem(it), nil
}

func toCaseItem(c entities.Case) caseItem {
	it := caseItem{
		ID:                c.ID,
		ConversationID:    c.ConversationID,
		CategoryID:        c.CategoryID,
		Status:            string(c.Status),
		Phase:             string(c.Phase),
		ElementIndex:      c.ElementIndex,
		StartItems:        toPendingItems(c.StartItems),
		Elements:          make([]caseElementItem, 0, len(c.Elements)),
		PendingItems:      toPendingItems(c.PendingItems),
		PersonalData:      c.PersonalData,
		VehicleData:       c.VehicleData,
		WorkshopData:      c.WorkshopData,
		SelectedTierID:    c.SelectedTierID,
		PriceCommunicated: c.Flags.PriceCommunicated,
		DocsImagesSent:    c.Flags.DocsImagesSent,
		ReviewTicketID:    c.ReviewTicketID,
		CancellationID:    c.CancellationID,
		CreatedAt:         c.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if c.TierPrice != 0 {
		it.TierPrice = floatToString(c.TierPrice)
	}
	for _, e := range c.Elements {
		it.Elements = append(it.Elements, caseElementItem{
			Code:            e.Code,
			Quantity:        e.Quantity,
			PhotosConfirmed: e.PhotosConfirmed,
			FieldsComplete:  e.FieldsComplete,
			FieldValues:     e.FieldValues,
		})
	}
	if q := c.PendingVariant; q != nil {
		pv := casePendingVariantItem{
			BaseCode: q.BaseCode,
			Prompt:   q.Prompt,
			Quantity: q.Quantity,
		}
		for _, o := range q.Options {
			pv.Options = append(pv.Options, caseVariantOptionItem{Code: o.Code, Name: o.Name})
		}
		it.PendingVariant = &pv
	}
	for _, n := range c.Notes {
		it.Notes = append(it.Notes, caseNoteItem{
			At:   n.At.UTC().Format(time.RFC3339Nano),
			Text: n.Text,
		})
	}
	return it
}

func fromCaseItem(it caseItem) entities.Case {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	price, _ := strconv.ParseFloat(it.TierPrice, 64)

	c := entities.Case{
		ID:             it.ID,
		ConversationID: it.ConversationID,
		CategoryID:     it.CategoryID,
		Status:         entities.CaseStatus(it.Status),
		Phase:          entities.CasePhase(it.Phase),
		ElementIndex:   it.ElementIndex,
		StartItems:     fromPendingItems(it.StartItems),
		PendingItems:   fromPendingItems(it.PendingItems),
		PersonalData:   it.PersonalData,
		VehicleData:    it.VehicleData,
		WorkshopData:   it.WorkshopData,
		SelectedTierID: it.SelectedTierID,
		TierPrice:      price,
		Flags: entities.CaseFlags{
			PriceCommunicated: it.PriceCommunicated,
			DocsImagesSent:    it.DocsImagesSent,
		},
		ReviewTicketID: it.ReviewTicketID,
		CancellationID: it.CancellationID,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
	c.Elements = make([]entities.CaseElement, 0, len(it.Elements))
	for _, e := range it.Elements {
		c.Elements = append(c.Elements, entities.CaseElement{
			Code:            e.Code,
			Quantity:        e.Quantity,
			PhotosConfirmed: e.PhotosConfirmed,
			FieldsComplete:  e.FieldsComplete,
			FieldValues:     e.FieldValues,
		})
	}
	if pv := it.PendingVariant; pv != nil {
		q := entities.PendingVariantQuestion{
			BaseCode: pv.BaseCode,
			Prompt:   pv.Prompt,
			Quantity: pv.Quantity,
		}
		for _, o := range pv.Options {
			q.Options = append(q.Options, entities.VariantOption{Code: o.Code, Name: o.Name})
		}
		c.PendingVariant = &q
	}
	for _, n := range it.Notes {
		at, _ := time.Parse(time.RFC3339Nano, n.At)
		c.Notes = append(c.Notes, entities.CaseNote{At: at, Text: n.Text})
	}
	return c
}

func toPendingItems(items []entities.PendingItem) []casePendingItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]casePendingItem, 0, len(items))
	for _, p := range items {
		out = append(out, casePendingItem{Text: p.Text, Quantity: p.Quantity})
	}
	return out
}

func fromPendingItems(items []casePendingItem) []entities.PendingItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]entities.PendingItem, 0, len(items))
	for _, p := range items {
		out = append(out, entities.PendingItem{Text: p.Text, Quantity: p.Quantity})
	}
	return out
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package repository

import (
	"context"
	"strconv"

	"homologacion_motos/internal/domain/entities"
	"homologacion_motos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultCategoriesTableName     = "categories"
	defaultElementsTableName       = "elements"
	defaultTiersTableName          = "tariff_tiers"
	defaultTierInclusionsTableName = "tier_inclusions"

	catalogCategoryIDIndex = "category_id-index"
	inclusionsTierIDIndex  = "tier_id-index"
)

type categoryItem struct {
	ID   string `dynamodbav:"id"`
	Name string `dynamodbav:"name"`
	Slug string `dynamodbav:"slug"`
}

type fieldConditionItem struct {
	FieldKey string `dynamodbav:"field_key"`
	Equals   string `dynamodbav:"equals"`
}

type requiredFieldItem struct {
	Key       string              `dynamodbav:"key"`
	Label     string              `dynamodbav:"label"`
	Type      string              `dynamodbav:"type"`
	Options   []string            `dynamodbav:"options,omitempty"`
	Condition *fieldConditionItem `dynamodbav:"condition,omitempty"`
}

type elementItem struct {
	ID              string              `dynamodbav:"id"`
	CategoryID      string              `dynamodbav:"category_id"`
	Code            string              `dynamodbav:"code"`
	Name            string              `dynamodbav:"name"`
	Keywords        []string            `dynamodbav:"keywords,omitempty"`
	ParentElementID string              `dynamodbav:"parent_element_id,omitempty"`
	RequiredFields  []requiredFieldItem `dynamodbav:"required_fields,omitempty"`
}

type classificationItem struct {
	Keywords        []string `dynamodbav:"keywords,omitempty"`
	Priority        int      `dynamodbav:"priority"`
	RequiresProject bool     `dynamodbav:"requires_project"`
}

type tariffTierItem struct {
	ID             string             `dynamodbav:"id"`
	CategoryID     string             `dynamodbav:"category_id"`
	Code           string             `dynamodbav:"code"`
	Name           string             `dynamodbav:"name"`
	Price          string             `dynamodbav:"price"`
	Classification classificationItem `dynamodbav:"classification"`
	MinElements    int                `dynamodbav:"min_elements"`
	MaxElements    int                `dynamodbav:"max_elements"`
}

type tierInclusionItem struct {
	ID             string `dynamodbav:"id"`
	TierID         string `dynamodbav:"tier_id"`
	ElementID      string `dynamodbav:"element_id,omitempty"`
	IncludedTierID string `dynamodbav:"included_tier_id,omitempty"`
	MinQuantity    int    `dynamodbav:"min_quantity,omitempty"`
	MaxQuantity    int    `dynamodbav:"max_quantity,omitempty"`
}

// CatalogDynamoRepository reads the homologation catalog from DynamoDB. The
// catalog is written by the management interface; this service only reads it.
//
// Table requirements:
//   - categories: PK id (string)
//   - elements: PK id, GSI category_id-index (PK: category_id)
//   - tariff_tiers: PK id, GSI category_id-index (PK: category_id)
//   - tier_inclusions: PK id, GSI tier_id-index (PK: tier_id)

type CatalogDynamoRepository struct {
	ddb             *dynamodb.Client
	categoriesTable string
	elementsTable   string
	tiersTable      string
	inclusionsTable string
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb *dynamodb.Client) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{
		ddb:             ddb,
		categoriesTable: getenvDefault("CATEGORIES_TABLE", defaultCategoriesTableName),
		elementsTable:   getenvDefault("ELEMENTS_TABLE", defaultElementsTableName),
		tiersTable:      getenvDefault("TARIFF_TIERS_TABLE", defaultTiersTableName),
		inclusionsTable: getenvDefault("TIER_INCLUSIONS_TABLE", defaultTierInclusionsTableName),
	}
}

func (r *CatalogDynamoRepository) GetCategory(ctx context.Context, id string) (entities.Category, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.categoriesTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Category{}, err
	}
	if len(out.Item) == 0 {
		return entities.Category{}, nil
	}

	var it categoryItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Category{}, err
	}
	return entities.Category{ID: it.ID, Name: it.Name, Slug: it.Slug}, nil
}

func (r *CatalogDynamoRepository) ListElementsByCategoryID(ctx context.Context, categoryID string) ([]entities.Element, error) {
	items, err := r.queryByKey(ctx, r.elementsTable, catalogCategoryIDIndex, "category_id", categoryID)
	if err != nil {
		return nil, err
	}

	elements := make([]entities.Element, 0, len(items))
	for _, raw := range items {
		var it elementItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		elements = append(elements, fromElementItem(it))
	}
	return elements, nil
}

func (r *CatalogDynamoRepository) ListTiersByCategoryID(ctx context.Context, categoryID string) ([]entities.TariffTier, error) {
	items, err := r.queryByKey(ctx, r.tiersTable, catalogCategoryIDIndex, "category_id", categoryID)
	if err != nil {
		return nil, err
	}

	tiers := make([]entities.TariffTier, 0, len(items))
	for _, raw := range items {
		var it tariffTierItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		tiers = append(tiers, fromTariffTierItem(it))
	}
	return tiers, nil
}

func (r *CatalogDynamoRepository) ListInclusionsByTierID(ctx context.Context, tierID string) ([]entities.TierInclusion, error) {
	items, err := r.queryByKey(ctx, r.inclusionsTable, inclusionsTierIDIndex, "tier_id", tierID)
	if err != nil {
		return nil, err
	}

	inclusions := make([]entities.TierInclusion, 0, len(items))
	for _, raw := range items {
		var it tierInclusionItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		inclusions = append(inclusions, entities.TierInclusion{
			ID:             it.ID,
			TierID:         it.TierID,
			ElementID:      it.ElementID,
			IncludedTierID: it.IncludedTierID,
			MinQuantity:    it.MinQuantity,
			MaxQuantity:    it.MaxQuantity,
		})
	}
	return inclusions, nil
}

func (r *CatalogDynamoRepository) queryByKey(ctx context.Context, table, index, key, value string) ([]map[string]types.AttributeValue, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": key,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}
	return out.Items, nil
}

func fromElementItem(it elementItem) entities.Element {
	e := entities.Element{
		ID:              it.ID,
		CategoryID:      it.CategoryID,
		Code:            it.Code,
		Name:            it.Name,
		Keywords:        it.Keywords,
		ParentElementID: it.ParentElementID,
	}
	for _, f := range it.RequiredFields {
		rf := entities.RequiredField{
			Key:     f.Key,
			Label:   f.Label,
			Type:    entities.FieldType(f.Type),
			Options: f.Options,
		}
		if f.Condition != nil {
			rf.Condition = &entities.FieldCondition{FieldKey: f.Condition.FieldKey, Equals: f.Condition.Equals}
		}
		e.RequiredFields = append(e.RequiredFields, rf)
	}
	return e
}

func fromTariffTierItem(it tariffTierItem) entities.TariffTier {
	price, _ := strconv.ParseFloat(it.Price, 64)
	return entities.TariffTier{
		ID:         it.ID,
		CategoryID: it.CategoryID,
		Code:       it.Code,
		Name:       it.Name,
		Price:      price,
		Classification: entities.ClassificationRule{
			Keywords:        it.Classification.Keywords,
			Priority:        it.Classification.Priority,
			RequiresProject: it.Classification.RequiresProject,
		},
		MinElements: it.MinElements,
		MaxElements: it.MaxElements,
	}
}

package repository

import (
	"context"
	"time"

	"forneiro_pix/internal/domain/entities"
	"forneiro_pix/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultChargesTableName = "charges"

type chargeItem struct {
	ID                 string  `dynamodbav:"id"`
	OrderID            string  `dynamodbav:"order_id"`
	Amount             float64 `dynamodbav:"amount"`
	Status             string  `dynamodbav:"status"`
	ProviderPayloadRaw string  `dynamodbav:"provider_payload_raw,omitempty"`
	OrderData          string  `dynamodbav:"order_data,omitempty"`
	PrintForwarded     bool    `dynamodbav:"print_forwarded"`
	CreatedAt          string  `dynamodbav:"created_at"`
	UpdatedAt          string  `dynamodbav:"updated_at"`
}

// ChargeDynamoRepository is the DynamoDB-backed charge store, selected with
// CHARGE_STORE=dynamodb. Upsert is a read-merge-put, same last-write-wins
// semantics as the file store.
//
// Table requirements:
//   - PK: id (string)
type ChargeDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IChargeRepository = (*ChargeDynamoRepository)(nil)

func NewChargeDynamoRepository(ddb *dynamodb.Client) *ChargeDynamoRepository {
	return &ChargeDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CHARGES_TABLE", defaultChargesTableName),
	}
}

func (r *ChargeDynamoRepository) Upsert(ctx context.Context, id string, patch entities.ChargePatch) (entities.Charge, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return entities.Charge{}, err
	}
	now := time.Now().UTC()
	if c.ID == "" {
		c = entities.Charge{ID: id, Status: entities.ChargeStatusPending, CreatedAt: now}
	}
	c.Apply(patch)
	c.UpdatedAt = now

	av, err := attributevalue.MarshalMap(toChargeItem(c))
	if err != nil {
		return entities.Charge{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Charge{}, err
	}
	return c, nil
}

func (r *ChargeDynamoRepository) GetByID(ctx context.Context, id string) (entities.Charge, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Charge{}, err
	}
	if out.Item == nil {
		return entities.Charge{}, nil
	}

	var it chargeItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Charge{}, err
	}
	return fromChargeItem(it), nil
}

func toChargeItem(c entities.Charge) chargeItem {
	return chargeItem{
		ID:                 c.ID,
		OrderID:            c.OrderID,
		Amount:             c.Amount,
		Status:             string(c.Status),
		ProviderPayloadRaw: string(c.ProviderPayloadRaw),
		OrderData:          string(c.OrderData),
		PrintForwarded:     c.PrintForwarded,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:          c.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func fromChargeItem(it chargeItem) entities.Charge {
	c := entities.Charge{
		ID:             it.ID,
		OrderID:        it.OrderID,
		Amount:         it.Amount,
		Status:         entities.ChargeStatus(it.Status),
		PrintForwarded: it.PrintForwarded,
	}
	if it.ProviderPayloadRaw != "" {
		c.ProviderPayloadRaw = []byte(it.ProviderPayloadRaw)
	}
	if it.OrderData != "" {
		c.OrderData = []byte(it.OrderData)
	}
	if t, err := time.Parse(time.RFC3339Nano, it.CreatedAt); err == nil {
		c.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, it.UpdatedAt); err == nil {
		c.UpdatedAt = t
	}
	return c
}

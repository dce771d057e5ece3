package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"servicios_locales/internal/config"
)

const (
	ReservationsClientIndex       = "cliente_id-index"
	ReservationsProfessionalIndex = "profesional_id-index"
)

// TableDefinitions describes every table the service reads or writes.
//
//   - reservas: PK id (N); GSIs cliente_id-index and profesional_id-index sorted by creado_en
//   - servicios, usuarios: PK id (N)
//   - contadores: PK nombre (S), holds the reservation id sequence
func TableDefinitions(cfg config.DynamoDBConfig) []*dynamodb.CreateTableInput {
	byParty := func(index, attr string) types.GlobalSecondaryIndex {
		return types.GlobalSecondaryIndex{
			IndexName: aws.String(index),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(attr), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("creado_en"), KeyType: types.KeyTypeRange},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}
	}
	numericPK := func(name string) *dynamodb.CreateTableInput {
		return &dynamodb.CreateTableInput{
			TableName:            aws.String(name),
			BillingMode:          types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeN}},
			KeySchema:            []types.KeySchemaElement{{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash}},
		}
	}

	reservations := numericPK(cfg.ReservationsTable)
	reservations.AttributeDefinitions = append(reservations.AttributeDefinitions,
		types.AttributeDefinition{AttributeName: aws.String("cliente_id"), AttributeType: types.ScalarAttributeTypeN},
		types.AttributeDefinition{AttributeName: aws.String("profesional_id"), AttributeType: types.ScalarAttributeTypeN},
		types.AttributeDefinition{AttributeName: aws.String("creado_en"), AttributeType: types.ScalarAttributeTypeS},
	)
	reservations.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{
		byParty(ReservationsClientIndex, "cliente_id"),
		byParty(ReservationsProfessionalIndex, "profesional_id"),
	}

	counters := &dynamodb.CreateTableInput{
		TableName:            aws.String(cfg.CountersTable),
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{{AttributeName: aws.String("nombre"), AttributeType: types.ScalarAttributeTypeS}},
		KeySchema:            []types.KeySchemaElement{{AttributeName: aws.String("nombre"), KeyType: types.KeyTypeHash}},
	}

	return []*dynamodb.CreateTableInput{
		reservations,
		numericPK(cfg.ServicesTable),
		numericPK(cfg.UsersTable),
		counters,
	}
}

// TableCreator is the subset of the DynamoDB client used for provisioning.
type TableCreator interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// CreateTables creates missing tables and returns the names it created.
// Tables that already exist are left untouched.
func CreateTables(ctx context.Context, ddb TableCreator, cfg config.DynamoDBConfig) ([]string, error) {
	var created []string
	for _, def := range TableDefinitions(cfg) {
		_, err := ddb.CreateTable(ctx, def)
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return created, fmt.Errorf("create table %s: %w", aws.ToString(def.TableName), err)
		}
		created = append(created, aws.ToString(def.TableName))
	}
	return created, nil
}

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"servicios_locales/internal/config"
)

type fakeCreator struct {
	existing map[string]bool
	fail     string
	calls    []string
}

func (f *fakeCreator) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	name := aws.ToString(in.TableName)
	f.calls = append(f.calls, name)
	if f.existing[name] {
		return nil, &types.ResourceInUseException{Message: aws.String("exists")}
	}
	if name == f.fail {
		return nil, errors.New("boom")
	}
	return &dynamodb.CreateTableOutput{}, nil
}

func tablesConfig() config.DynamoDBConfig {
	return config.DynamoDBConfig{
		ReservationsTable: "reservas",
		ServicesTable:     "servicios",
		UsersTable:        "usuarios",
		CountersTable:     "contadores",
	}
}

func TestTableDefinitions(t *testing.T) {
	defs := TableDefinitions(tablesConfig())
	if len(defs) != 4 {
		t.Fatalf("expected 4 tables, got %d", len(defs))
	}
	reservations := defs[0]
	if len(reservations.GlobalSecondaryIndexes) != 2 {
		t.Fatalf("expected two party indexes")
	}
	for _, gsi := range reservations.GlobalSecondaryIndexes {
		if aws.ToString(gsi.KeySchema[1].AttributeName) != "creado_en" {
			t.Fatalf("index %s must sort by creado_en", aws.ToString(gsi.IndexName))
		}
	}
}

func TestCreateTables(t *testing.T) {
	t.Run("skips existing tables", func(t *testing.T) {
		f := &fakeCreator{existing: map[string]bool{"servicios": true}}
		created, err := CreateTables(context.Background(), f, tablesConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.calls) != 4 || len(created) != 3 {
			t.Fatalf("unexpected calls=%v created=%v", f.calls, created)
		}
	})

	t.Run("stops on error", func(t *testing.T) {
		f := &fakeCreator{fail: "usuarios"}
		created, err := CreateTables(context.Background(), f, tablesConfig())
		if err == nil {
			t.Fatalf("expected error")
		}
		if len(created) != 2 {
			t.Fatalf("expected two tables created before failure, got %v", created)
		}
	})
}

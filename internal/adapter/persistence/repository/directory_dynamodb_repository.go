package repository

import (
	"context"

	"servicios_locales/internal/config"
	"servicios_locales/internal/domain/entities"
	"servicios_locales/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type serviceItem struct {
	ID             int64   `dynamodbav:"id"`
	ProfessionalID int64   `dynamodbav:"profesional_id"`
	Title          string  `dynamodbav:"titulo"`
	Category       string  `dynamodbav:"categoria"`
	BasePrice      float64 `dynamodbav:"precio_base"`
	Active         bool    `dynamodbav:"activo"`
}

type userItem struct {
	ID        int64   `dynamodbav:"id"`
	FirstName string  `dynamodbav:"nombre"`
	LastName  string  `dynamodbav:"apellido"`
	PhotoURL  *string `dynamodbav:"foto_url,omitempty"`
	Phone     *string `dynamodbav:"telefono,omitempty"`
}

// ServiceListingDynamoRepository reads the service catalog table (PK id, number).
type ServiceListingDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IServiceListingLookup = (*ServiceListingDynamoRepository)(nil)

func NewServiceListingDynamoRepository(ddb DynamoAPI, cfg config.DynamoDBConfig) *ServiceListingDynamoRepository {
	return &ServiceListingDynamoRepository{ddb: ddb, tableName: cfg.ServicesTable}
}

func (r *ServiceListingDynamoRepository) GetByID(ctx context.Context, id int64) (entities.ServiceListing, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       numberKey(id),
	})
	if err != nil {
		return entities.ServiceListing{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceListing{}, nil
	}
	var it serviceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceListing{}, err
	}
	return fromServiceItem(it), nil
}

// UpsertService writes a catalog entry. Only the seed command writes here.
func (r *ServiceListingDynamoRepository) UpsertService(ctx context.Context, s entities.ServiceListing) error {
	av, err := attributevalue.MarshalMap(serviceItem{
		ID:             s.ID,
		ProfessionalID: s.ProfessionalID,
		Title:          s.Title,
		Category:       s.Category,
		BasePrice:      s.BasePrice,
		Active:         s.Active,
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(r.tableName), Item: av})
	return err
}

func (r *ServiceListingDynamoRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]entities.ServiceListing, error) {
	raw, err := batchGet(ctx, r.ddb, r.tableName, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]entities.ServiceListing, len(raw))
	for _, item := range raw {
		var it serviceItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		out[it.ID] = fromServiceItem(it)
	}
	return out, nil
}

// UserDynamoRepository reads display identities from the users table (PK id, number).
type UserDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IUserDirectory = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoAPI, cfg config.DynamoDBConfig) *UserDynamoRepository {
	return &UserDynamoRepository{ddb: ddb, tableName: cfg.UsersTable}
}

func (r *UserDynamoRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]entities.UserProfile, error) {
	raw, err := batchGet(ctx, r.ddb, r.tableName, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]entities.UserProfile, len(raw))
	for _, item := range raw {
		var it userItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		out[it.ID] = entities.UserProfile{
			ID:        it.ID,
			FirstName: it.FirstName,
			LastName:  it.LastName,
			PhotoURL:  it.PhotoURL,
			Phone:     it.Phone,
		}
	}
	return out, nil
}

func (r *UserDynamoRepository) UpsertUser(ctx context.Context, u entities.UserProfile) error {
	av, err := attributevalue.MarshalMap(userItem{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		PhotoURL:  u.PhotoURL,
		Phone:     u.Phone,
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(r.tableName), Item: av})
	return err
}

func fromServiceItem(it serviceItem) entities.ServiceListing {
	return entities.ServiceListing{
		ID:             it.ID,
		ProfessionalID: it.ProfessionalID,
		Title:          it.Title,
		Category:       it.Category,
		BasePrice:      it.BasePrice,
		Active:         it.Active,
	}
}

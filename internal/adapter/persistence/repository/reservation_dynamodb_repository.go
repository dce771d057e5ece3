package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"servicios_locales/internal/config"
	"servicios_locales/internal/domain/entities"
	"servicios_locales/internal/infrastructure/database"
	"servicios_locales/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const reservationsCounterName = "reservas"

type reservationItem struct {
	ID             int64  `dynamodbav:"id"`
	ServiceID      int64  `dynamodbav:"servicio_id"`
	ClientID       int64  `dynamodbav:"cliente_id"`
	ProfessionalID int64  `dynamodbav:"profesional_id"`
	Status         string `dynamodbav:"estado"`
	ActionRequired string `dynamodbav:"accion_requerida_por,omitempty"`

	ClientDescription *string `dynamodbav:"descripcion_cliente,omitempty"`
	RequestedAt       string  `dynamodbav:"fecha_hora_solicitada,omitempty"`
	ProposedAt        string  `dynamodbav:"fecha_hora_propuesta,omitempty"`
	ProposalMessage   *string `dynamodbav:"mensaje_propuesta,omitempty"`

	CanceledBy   string  `dynamodbav:"cancelado_por,omitempty"`
	CancelReason *string `dynamodbav:"motivo_cancelacion,omitempty"`

	ClientRated         bool    `dynamodbav:"cliente_califico"`
	ClientScore         *int    `dynamodbav:"cliente_puntaje,omitempty"`
	ClientComment       *string `dynamodbav:"cliente_comentario,omitempty"`
	ProfessionalRated   bool    `dynamodbav:"profesional_califico"`
	ProfessionalScore   *int    `dynamodbav:"profesional_puntaje,omitempty"`
	ProfessionalComment *string `dynamodbav:"profesional_comentario,omitempty"`

	CreatedAt string `dynamodbav:"creado_en"`
	UpdatedAt string `dynamodbav:"actualizado_en"`
}

// ReservationDynamoRepository persists Reservation entities in DynamoDB.
//
// Table requirements:
//   - reservas: PK id (number)
//   - GSI cliente_id-index (PK cliente_id, SK creado_en)
//   - GSI profesional_id-index (PK profesional_id, SK creado_en)
//   - contadores: PK nombre (string); item "reservas" holds the last issued id
//
// Every mutation is conditional on the status the caller decided from, so two
// parties racing on the same reservation cannot both win.
type ReservationDynamoRepository struct {
	ddb           DynamoAPI
	tableName     string
	countersTable string
}

var _ interfaces.IReservationRepository = (*ReservationDynamoRepository)(nil)

func NewReservationDynamoRepository(ddb DynamoAPI, cfg config.DynamoDBConfig) *ReservationDynamoRepository {
	return &ReservationDynamoRepository{
		ddb:           ddb,
		tableName:     cfg.ReservationsTable,
		countersTable: cfg.CountersTable,
	}
}

func (r *ReservationDynamoRepository) nextID(ctx context.Context) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.countersTable),
		Key: map[string]types.AttributeValue{
			"nombre": &types.AttributeValueMemberS{Value: reservationsCounterName},
		},
		UpdateExpression:          aws.String("ADD #valor :one"),
		ExpressionAttributeNames:  map[string]string{"#valor": "valor"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("next reservation id: %w", err)
	}
	v, ok := out.Attributes["valor"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("next reservation id: counter value missing")
	}
	return strconv.ParseInt(v.Value, 10, 64)
}

func (r *ReservationDynamoRepository) Create(ctx context.Context, e entities.Reservation) (entities.Reservation, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return entities.Reservation{}, err
	}
	e.ID = id

	av, err := attributevalue.MarshalMap(toReservationItem(e))
	if err != nil {
		return entities.Reservation{}, err
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
		return entities.Reservation{}, err
	}
	return e, nil
}

func (r *ReservationDynamoRepository) GetByID(ctx context.Context, id int64) (entities.Reservation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            numberKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Reservation{}, err
	}
	if len(out.Item) == 0 {
		return entities.Reservation{}, nil
	}

	var it reservationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Reservation{}, err
	}
	return fromReservationItem(it), nil
}

func (r *ReservationDynamoRepository) ListByClient(ctx context.Context, clientID int64, statuses []entities.ReservationStatus) ([]entities.Reservation, error) {
	return r.listByParty(ctx, database.ReservationsClientIndex, "cliente_id", clientID, statuses)
}

func (r *ReservationDynamoRepository) ListByProfessional(ctx context.Context, professionalID int64, statuses []entities.ReservationStatus) ([]entities.Reservation, error) {
	return r.listByParty(ctx, database.ReservationsProfessionalIndex, "profesional_id", professionalID, statuses)
}

func (r *ReservationDynamoRepository) listByParty(
	ctx context.Context,
	index, attr string,
	partyID int64,
	statuses []entities.ReservationStatus,
) ([]entities.Reservation, error) {
	values := map[string]types.AttributeValue{
		":pid": &types.AttributeValueMemberN{Value: strconv.FormatInt(partyID, 10)},
	}
	placeholders := make([]string, 0, len(statuses))
	for i, s := range statuses {
		ph := fmt.Sprintf(":s%d", i)
		placeholders = append(placeholders, ph)
		values[ph] = &types.AttributeValueMemberS{Value: string(s)}
	}

	in := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#pid = :pid"),
		ExpressionAttributeNames:  map[string]string{"#pid": attr},
		ExpressionAttributeValues: values,
		ScanIndexForward:          aws.Bool(false),
	}
	if len(placeholders) > 0 {
		in.FilterExpression = aws.String("#estado IN (" + strings.Join(placeholders, ", ") + ")")
		in.ExpressionAttributeNames["#estado"] = "estado"
	}

	items := make([]entities.Reservation, 0)
	p := dynamodb.NewQueryPaginator(r.ddb, in)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it reservationItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromReservationItem(it))
		}
	}
	return items, nil
}

func (r *ReservationDynamoRepository) ApplyTransition(
	ctx context.Context,
	id int64,
	expected entities.ReservationStatus,
	upd entities.ReservationUpdate,
	now time.Time,
) error {
	return r.update(ctx, id, func() (string, string, map[string]types.AttributeValue, map[string]string) {
		sets := []string{"#estado = :estado", "#actualizado_en = :now"}
		values := map[string]types.AttributeValue{
			":estado":   &types.AttributeValueMemberS{Value: string(upd.Status)},
			":now":      &types.AttributeValueMemberS{Value: formatTime(now)},
			":expected": &types.AttributeValueMemberS{Value: string(expected)},
		}
		names := map[string]string{
			"#estado":         "estado",
			"#actualizado_en": "actualizado_en",
			"#accion":         "accion_requerida_por",
		}

		var removes []string
		if upd.ActionRequired == entities.RoleNone {
			removes = append(removes, "#accion")
		} else {
			sets = append(sets, "#accion = :accion")
			values[":accion"] = &types.AttributeValueMemberS{Value: string(upd.ActionRequired)}
		}

		set := func(attr, placeholder string, v types.AttributeValue) {
			names["#"+attr] = attr
			sets = append(sets, "#"+attr+" = "+placeholder)
			values[placeholder] = v
		}
		if upd.ProposedAt != nil {
			set("fecha_hora_propuesta", ":propuesta", &types.AttributeValueMemberS{Value: formatTime(*upd.ProposedAt)})
		}
		if upd.ProposalMessage != nil {
			set("mensaje_propuesta", ":mensaje", &types.AttributeValueMemberS{Value: *upd.ProposalMessage})
		}
		if upd.CanceledBy != entities.RoleNone {
			set("cancelado_por", ":cancelado_por", &types.AttributeValueMemberS{Value: string(upd.CanceledBy)})
		}
		if upd.CancelReason != nil {
			set("motivo_cancelacion", ":motivo", &types.AttributeValueMemberS{Value: *upd.CancelReason})
		}

		expr := "SET " + strings.Join(sets, ", ")
		if len(removes) > 0 {
			expr += " REMOVE " + strings.Join(removes, ", ")
		}
		return expr, "#estado = :expected", values, names
	})
}

func (r *ReservationDynamoRepository) SaveRating(ctx context.Context, id int64, role entities.Role, slot entities.RatingSlot, now time.Time) error {
	prefix := "cliente"
	if role == entities.RoleProfesional {
		prefix = "profesional"
	}

	return r.update(ctx, id, func() (string, string, map[string]types.AttributeValue, map[string]string) {
		names := map[string]string{
			"#estado":         "estado",
			"#califico":       prefix + "_califico",
			"#actualizado_en": "actualizado_en",
		}
		values := map[string]types.AttributeValue{
			":true":    &types.AttributeValueMemberBOOL{Value: true},
			":false":   &types.AttributeValueMemberBOOL{Value: false},
			":cerrado": &types.AttributeValueMemberS{Value: string(entities.ReservationStatusCerrado)},
			":now":     &types.AttributeValueMemberS{Value: formatTime(now)},
		}
		sets := []string{"#califico = :true", "#actualizado_en = :now"}
		if slot.Score != nil {
			names["#puntaje"] = prefix + "_puntaje"
			sets = append(sets, "#puntaje = :puntaje")
			values[":puntaje"] = &types.AttributeValueMemberN{Value: strconv.Itoa(*slot.Score)}
		}
		if slot.Comment != nil {
			names["#comentario"] = prefix + "_comentario"
			sets = append(sets, "#comentario = :comentario")
			values[":comentario"] = &types.AttributeValueMemberS{Value: *slot.Comment}
		}
		cond := "#estado = :cerrado AND (attribute_not_exists(#califico) OR #califico = :false)"
		return "SET " + strings.Join(sets, ", "), cond, values, names
	})
}

// update runs a conditional UpdateItem on an existing reservation.
// A failed condition is reported as interfaces.ErrStaleWrite.
func (r *ReservationDynamoRepository) update(
	ctx context.Context,
	id int64,
	build func() (updateExpr, condition string, values map[string]types.AttributeValue, names map[string]string),
) error {
	updateExpr, condition, values, names := build()

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       numberKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id) AND " + condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return interfaces.ErrStaleWrite
		}
		return err
	}
	return nil
}

func toReservationItem(e entities.Reservation) reservationItem {
	return reservationItem{
		ID:                  e.ID,
		ServiceID:           e.ServiceID,
		ClientID:            e.ClientID,
		ProfessionalID:      e.ProfessionalID,
		Status:              string(e.Status),
		ActionRequired:      string(e.ActionRequired),
		ClientDescription:   e.ClientDescription,
		RequestedAt:         formatOptionalTime(e.RequestedAt),
		ProposedAt:          formatOptionalTime(e.ProposedAt),
		ProposalMessage:     e.ProposalMessage,
		CanceledBy:          string(e.CanceledBy),
		CancelReason:        e.CancelReason,
		ClientRated:         e.ClientRating.Submitted,
		ClientScore:         e.ClientRating.Score,
		ClientComment:       e.ClientRating.Comment,
		ProfessionalRated:   e.ProfessionalRating.Submitted,
		ProfessionalScore:   e.ProfessionalRating.Score,
		ProfessionalComment: e.ProfessionalRating.Comment,
		CreatedAt:           formatTime(e.CreatedAt),
		UpdatedAt:           formatTime(e.UpdatedAt),
	}
}

func fromReservationItem(it reservationItem) entities.Reservation {
	return entities.Reservation{
		ID:                it.ID,
		ServiceID:         it.ServiceID,
		ClientID:          it.ClientID,
		ProfessionalID:    it.ProfessionalID,
		Status:            entities.ReservationStatus(it.Status),
		ActionRequired:    entities.Role(it.ActionRequired),
		ClientDescription: it.ClientDescription,
		RequestedAt:       parseOptionalTime(it.RequestedAt),
		ProposedAt:        parseOptionalTime(it.ProposedAt),
		ProposalMessage:   it.ProposalMessage,
		CanceledBy:        entities.Role(it.CanceledBy),
		CancelReason:      it.CancelReason,
		ClientRating: entities.RatingSlot{
			Submitted: it.ClientRated,
			Score:     it.ClientScore,
			Comment:   it.ClientComment,
		},
		ProfessionalRating: entities.RatingSlot{
			Submitted: it.ProfessionalRated,
			Score:     it.ProfessionalScore,
			Comment:   it.ProfessionalComment,
		},
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}

package domain

import "context"

// OrderSubmitter отправляет оформленный заказ на бэкенд.
type OrderSubmitter interface {
	// PlaceOrder выполняет один запрос; ошибки транспорта возвращаются как *TransportError.
	PlaceOrder(ctx context.Context, req OrderRequest) (OrderResult, error)
}

// SubmitState задаёт состояние отправки заказа.
type SubmitState string

const (
	SubmitStateIdle    SubmitState = "idle"
	SubmitStatePending SubmitState = "pending"
)

// SubmitOutcome задаёт константы исходов отправки для метрик/логов.
type SubmitOutcome string

const (
	SubmitOutcomeSuccess    SubmitOutcome = "success"
	SubmitOutcomeRejected   SubmitOutcome = "rejected"
	SubmitOutcomeTransport  SubmitOutcome = "transport_error"
	SubmitOutcomeValidation SubmitOutcome = "validation_error"
	SubmitOutcomeDuplicate  SubmitOutcome = "duplicate"
)

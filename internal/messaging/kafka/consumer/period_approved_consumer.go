package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-payroll/internal/events"
	"go-payroll/internal/remittance"
)

// ConsumePeriodApproved schedules statutory remittances for each approved
// period. Scheduling is a no-op for already covered (period, tax type)
// pairs, so redelivered messages are safe to reprocess.
func ConsumePeriodApproved(
	ctx context.Context,
	reader *kafkago.Reader,
	remittanceService remittance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.period_approved")
	log.Info("period approved consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("period approved consumer stopped")
				return
			}
			log.Error("fetch period approved message failed", zap.Error(err))
			continue
		}

		var event events.PeriodApprovedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode period approved event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = remittanceService.SchedulePeriod(ctx, event.CompanyID, event.PeriodID)
		if err != nil {
			log.Error("schedule remittances failed",
				zap.String("period_id", event.PeriodID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit period approved message failed", zap.Error(err))
			continue
		}

		log.Info("remittances scheduled from period approved event",
			zap.String("period_id", event.PeriodID),
			zap.String("company_id", event.CompanyID),
		)
	}
}

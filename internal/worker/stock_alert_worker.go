package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/infra"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// StockAlertWorker mails the store owner when a sale drops a product to or
// below its minimum stock. Best-effort: a failed mail is logged, never
// retried — the low-stock report remains the authoritative view.
type StockAlertWorker struct {
	products repository.ProductRepository
	mailer   *infra.Mailer
	alertTo  string
}

func NewStockAlertWorker(products repository.ProductRepository, mailer *infra.Mailer, alertTo string) *StockAlertWorker {
	return &StockAlertWorker{products: products, mailer: mailer, alertTo: alertTo}
}

func (w *StockAlertWorker) Handle(ctx context.Context, job Job) error {
	if job.Type != "stock_alert" {
		return fmt.Errorf("stock alert worker: unknown job type %q", job.Type)
	}

	var payload StockAlertPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("stock alert worker: decode payload: %w", err)
	}
	id, err := uuid.Parse(payload.ProductID)
	if err != nil {
		return fmt.Errorf("stock alert worker: bad product id: %w", err)
	}

	p, err := w.products.FindByID(ctx, id)
	if err != nil {
		// Product may have been deleted between sale and check — not an error
		log.Debug().Str("product_id", payload.ProductID).Msg("stock alert: product gone")
		return nil
	}
	if p.Stock > p.MinStock {
		return nil
	}

	if w.alertTo == "" {
		log.Warn().Str("product", p.Name).Int("stock", p.Stock).
			Msg("low stock detected but ALERT_EMAIL is not configured")
		return nil
	}

	subject := fmt.Sprintf("Stock bajo: %s", p.Name)
	body := fmt.Sprintf("El producto %q quedó con %d unidades (mínimo %d). Conviene reabastecer.",
		p.Name, p.Stock, p.MinStock)
	if err := w.mailer.Send(w.alertTo, subject, body); err != nil {
		return fmt.Errorf("stock alert worker: send mail: %w", err)
	}

	log.Info().Str("product", p.Name).Int("stock", p.Stock).Msg("low stock alert sent")
	return nil
}

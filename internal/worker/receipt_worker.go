package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: loads the committed bill, renders
// the PDF receipt, then hands off to the email queue for delivery.

import (
	"context"
	"encoding/json"
	"fmt"

	"restomate/internal/infra"
	"restomate/internal/repository"

	"github.com/rs/zerolog/log"
)

type ReceiptWorker struct {
	restaurants repository.RestaurantRepository
	bills       repository.BillRepository
	dispatcher  *Dispatcher
	storagePath string
}

func NewReceiptWorker(
	restaurants repository.RestaurantRepository,
	bills repository.BillRepository,
	dispatcher *Dispatcher,
	storagePath string,
) *ReceiptWorker {
	return &ReceiptWorker{
		restaurants: restaurants,
		bills:       bills,
		dispatcher:  dispatcher,
		storagePath: storagePath,
	}
}

// Process renders the receipt and enqueues the delivery email.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}

	restaurant, err := w.restaurants.FindByID(ctx, payload.RestaurantID)
	if err != nil {
		return fmt.Errorf("receipt_worker: load restaurant %d: %w", payload.RestaurantID, err)
	}
	bill, items, err := w.bills.FindByID(ctx, payload.RestaurantID, payload.BillID)
	if err != nil {
		return fmt.Errorf("receipt_worker: load bill %d: %w", payload.BillID, err)
	}

	pdfPath, err := infra.GenerateReceiptPDF(restaurant, bill, items, w.storagePath)
	if err != nil {
		return fmt.Errorf("receipt_worker: render pdf: %w", err)
	}

	subject := fmt.Sprintf("Your receipt from %s", restaurant.Name)
	body := fmt.Sprintf("Thank you for dining at %s. Your receipt (bill #%d) is attached.",
		restaurant.Name, bill.BillNumber)

	if err := w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: payload.ToEmail,
		Subject: subject,
		Body:    body,
		PDFPath: pdfPath,
	}); err != nil {
		return fmt.Errorf("receipt_worker: enqueue email: %w", err)
	}

	log.Info().
		Int64("bill_id", payload.BillID).
		Str("pdf", pdfPath).
		Msg("receipt_worker: receipt generated")
	return nil
}

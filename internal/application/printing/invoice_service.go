// Package printing produces printable sale invoices.
package printing

import (
	"context"
	"errors"
	"fmt"
	"time"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	tradeapp "github.com/bricksflow/backend/internal/application/trade"
	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	infra "github.com/bricksflow/backend/internal/infrastructure/printing"
	"github.com/bricksflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrPrintingDisabled is returned when no PDF renderer is configured
	ErrPrintingDisabled = shared.ErrUnavailable.WithMessage("Invoice printing is not enabled on this server")
	ErrRenderTimeout    = shared.ErrUnavailable.WithMessage("Invoice rendering timed out, try again")
)

// ObjectStore keeps rendered documents and hands out download links
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	DownloadURL(ctx context.Context, key string) (string, time.Time, error)
}

// Invoice is a rendered invoice. Either PDF or URL is set.
type Invoice struct {
	Number    string
	Filename  string
	PDF       []byte
	URL       string
	ExpiresAt time.Time
}

// InvoiceService renders sale invoices to PDF
type InvoiceService struct {
	sales    trade.SaleRepository
	products catalog.ProductRepository
	guard    *factoryapp.Guard
	renderer infra.PDFRenderer
	store    ObjectStore
	logger   *zap.Logger
}

// NewInvoiceService creates a new invoice service. A nil renderer disables
// printing; a nil store disables uploads.
func NewInvoiceService(
	sales trade.SaleRepository,
	products catalog.ProductRepository,
	guard *factoryapp.Guard,
	renderer infra.PDFRenderer,
	store ObjectStore,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		sales:    sales,
		products: products,
		guard:    guard,
		renderer: renderer,
		store:    store,
		logger:   logger,
	}
}

// StorageEnabled reports whether invoices can be stored and linked
func (s *InvoiceService) StorageEnabled() bool {
	return s.store != nil
}

// Document builds the printable content of a sale invoice
func (s *InvoiceService) Document(ctx context.Context, userID, saleID uuid.UUID) (*infra.InvoiceDocument, error) {
	doc, _, err := s.document(ctx, userID, saleID)
	return doc, err
}

func (s *InvoiceService) document(ctx context.Context, userID, saleID uuid.UUID) (*infra.InvoiceDocument, uuid.UUID, error) {
	sale, err := factoryapp.LoadOwned[trade.Sale](ctx, s.guard, s.sales, userID, saleID, tradeapp.ErrSaleNotFound)
	if err != nil {
		return nil, uuid.Nil, err
	}
	f, err := s.guard.Authorize(ctx, userID, sale.FactoryID)
	if err != nil {
		return nil, uuid.Nil, err
	}

	brickType := "Unknown"
	if product, err := s.products.FindByID(ctx, sale.ProductID); err == nil {
		brickType = product.Name
	}

	return &infra.InvoiceDocument{
		Number:         sale.InvoiceNumber(),
		Date:           sale.Date,
		CustomerName:   sale.CustomerName,
		CustomerPhone:  sale.CustomerPhone,
		BrickType:      brickType,
		Quantity:       sale.QuantitySold,
		Rate:           sale.RatePerBrick,
		Total:          sale.TotalAmount,
		Received:       sale.AmountReceived,
		Balance:        sale.BalanceDue,
		PaymentStatus:  string(sale.PaymentStatus()),
		FactoryName:    f.Name,
		FactoryAddress: f.Location,
		FactoryPhone:   f.ContactNumber,
	}, sale.FactoryID, nil
}

// Render produces the invoice PDF of a sale. With store set and storage
// enabled the PDF is uploaded under invoices/<factory>/<number>.pdf and a
// presigned link is returned instead of the bytes.
func (s *InvoiceService) Render(ctx context.Context, userID, saleID uuid.UUID, store bool) (*Invoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "printing", "render_invoice")
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	if s.renderer == nil {
		err = ErrPrintingDisabled
		return nil, err
	}
	doc, factoryID, err := s.document(ctx, userID, saleID)
	if err != nil {
		return nil, err
	}
	html, err := infra.RenderInvoiceHTML(doc)
	if err != nil {
		return nil, err
	}
	result, err := s.renderer.Render(ctx, &infra.RenderRequest{HTML: html, Title: "Invoice " + doc.Number})
	if err != nil {
		var renderErr *infra.RenderError
		if errors.As(err, &renderErr) && renderErr.Timeout() {
			err = fmt.Errorf("%w: %w", ErrRenderTimeout, err)
		}
		return nil, err
	}

	inv := &Invoice{Number: doc.Number, Filename: doc.Number + ".pdf"}
	logger.L(ctx).Info("Invoice rendered",
		zap.String("invoice", doc.Number),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration),
	)

	if !store || s.store == nil {
		inv.PDF = result.PDFData
		return inv, nil
	}

	key := fmt.Sprintf("invoices/%s/%s.pdf", factoryID, doc.Number)
	if err = s.store.Upload(ctx, key, result.PDFData, "application/pdf"); err != nil {
		return nil, err
	}
	inv.URL, inv.ExpiresAt, err = s.store.DownloadURL(ctx, key)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

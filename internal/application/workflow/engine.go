// Package workflow implementa el flujo de captura de movimientos de inventario: se registra una
// cabecera (transacción), se acumulan líneas candidatas y se confirman todas en una sola
// transacción de base de datos.
//
// Máquina de estados por sesión:
//
//	empty            --OpenTransaction-->  transaction_open
//	transaction_open --RequestReview-->    review_pending
//	review_pending   --ReturnToEditing-->  transaction_open
//	review_pending   --ConfirmAndCommit--> empty
//	transaction_open, review_pending --CancelAll--> empty
//
// La cabecera se confirma en su propia transacción; CancelAll no la elimina.
package workflow

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/ledger"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// Engine servicio sin estado propio; todo el estado vive en la Session recibida.
type Engine struct {
	txRunner     TxRunner
	catalog      Catalog
	transactions TransactionChecker
	log          zerolog.Logger
	recheckStock bool
	now          func() time.Time
}

// Option configura el Engine.
type Option func(*Engine)

// WithLogger registra las transiciones en el logger dado.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithStockRecheck vuelve a validar el stock de las ventas dentro de la transacción de confirmación,
// bloqueando la fila del producto.
func WithStockRecheck(enabled bool) Option {
	return func(e *Engine) { e.recheckStock = enabled }
}

// WithClock reemplaza el reloj (fecha por defecto de la cabecera y UpdatedAt de la sesión).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine construye el motor del flujo.
func NewEngine(txRunner TxRunner, catalog Catalog, transactions TransactionChecker, opts ...Option) *Engine {
	e := &Engine{
		txRunner:     txRunner,
		catalog:      catalog,
		transactions: transactions,
		log:          zerolog.Nop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OpenInput datos de la cabecera a registrar.
type OpenInput struct {
	Code      string
	UserID    int64 // 0 = usuario de la sesión
	Date      time.Time
	Reference string
}

// TransactionRef cabecera registrada.
type TransactionRef struct {
	ID   int64     `json:"id"`
	Code string    `json:"code"`
	Date time.Time `json:"date"`
}

// CommitLine movimiento insertado.
type CommitLine struct {
	MovementID  int64           `json:"movement_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CommitReport resultado de una confirmación, en el orden de captura.
type CommitReport struct {
	Code  string       `json:"code"`
	Lines []CommitLine `json:"lines"`
}

// OpenTransaction registra la cabecera en su propia transacción y deja la sesión capturando con ese código.
// Se admite desde empty, o desde transaction_open mientras no haya líneas capturadas.
func (e *Engine) OpenTransaction(ctx context.Context, s *Session, in OpenInput) (*TransactionRef, error) {
	const op = "open_transaction"
	state := s.Current()
	if state != StateEmpty && (state != StateTransactionOpen || len(s.Items) > 0) {
		return nil, &StateError{Op: op, State: state}
	}
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, domain.ErrMissingCode
	}

	exists, err := e.transactions.ExistsByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("verificar transacción %s: %w", code, err)
	}
	if exists {
		return nil, domain.ErrDuplicateCode
	}

	date := in.Date
	if date.IsZero() {
		date = e.now()
	}
	userID := in.UserID
	if userID == 0 {
		userID = s.UserID
	}
	header := &entity.Transaction{
		Code:               code,
		UserID:             userID,
		Date:               date,
		Reference:          strings.TrimSpace(in.Reference),
		RegistrationMethod: entity.RegistrationManual,
	}
	err = e.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		txRepo repository.TransactionRepository,
		_ repository.ProductRepository,
	) error {
		return txRepo.Create(ctx, header)
	})
	if err != nil {
		return nil, fmt.Errorf("registrar transacción %s: %w", code, err)
	}

	s.State = StateTransactionOpen
	s.ActiveCode = code
	s.UpdatedAt = e.now()
	e.log.Info().
		Int64("user_id", s.UserID).
		Str("code", code).
		Int64("transaction_id", header.ID).
		Msg("transacción registrada")

	return &TransactionRef{ID: header.ID, Code: header.Code, Date: header.Date}, nil
}

// StageItem valida el candidato contra la foto actual del producto y lo agrega al final de la lista.
func (e *Engine) StageItem(ctx context.Context, s *Session, c ledger.Candidate) error {
	if state := s.Current(); state != StateTransactionOpen {
		return &StateError{Op: "stage_item", State: state}
	}
	p, err := e.catalog.GetByID(ctx, c.ProductID)
	if err != nil {
		return fmt.Errorf("consultar producto %d: %w", c.ProductID, err)
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	item, err := ledger.ValidateNewStagedItem(s.Items, c, p)
	if err != nil {
		e.log.Debug().Err(err).Str("code", s.ActiveCode).Int64("product_id", c.ProductID).Msg("línea rechazada")
		return err
	}

	s.Items = append(s.Items, item)
	s.UpdatedAt = e.now()
	e.log.Debug().
		Str("code", s.ActiveCode).
		Int64("product_id", item.ProductID).
		Str("quantity", item.Quantity.String()).
		Str("type", string(item.Type)).
		Int("items", len(s.Items)).
		Msg("línea agregada")
	return nil
}

// RemoveStagedItem quita la línea en la posición index (0-based, orden de captura). No revalida nada.
func (e *Engine) RemoveStagedItem(s *Session, index int) error {
	if state := s.Current(); state != StateTransactionOpen {
		return &StateError{Op: "remove_staged_item", State: state}
	}
	if index < 0 || index >= len(s.Items) {
		return domain.ErrIndexOutOfRange
	}
	s.Items = slices.Delete(s.Items, index, index+1)
	s.UpdatedAt = e.now()
	return nil
}

// RequestReview congela el lote para confirmación. Vuelve a verificar que la cabecera exista,
// por si su registro falló o nunca se completó.
func (e *Engine) RequestReview(ctx context.Context, s *Session) error {
	if state := s.Current(); state != StateTransactionOpen {
		return &StateError{Op: "request_review", State: state}
	}
	exists, err := e.exists(ctx, s)
	if err != nil {
		return err
	}
	if err := ledger.ValidateFinalization(s.Items, s.ActiveCode, exists); err != nil {
		return err
	}

	s.State = StateReviewPending
	s.UpdatedAt = e.now()
	e.log.Info().Str("code", s.ActiveCode).Int("items", len(s.Items)).Msg("lote en revisión")
	return nil
}

// ReturnToEditing vuelve a la captura sin tocar las líneas.
func (e *Engine) ReturnToEditing(s *Session) error {
	if state := s.Current(); state != StateReviewPending {
		return &StateError{Op: "return_to_editing", State: state}
	}
	s.State = StateTransactionOpen
	s.UpdatedAt = e.now()
	return nil
}

// ConfirmAndCommit inserta todas las líneas en una sola transacción, en orden de captura.
// Todo o nada: ante cualquier fallo se revierte el lote y se devuelve *CommitError con la
// sesión intacta en review_pending. Una vez iniciada la transacción no se cancela.
func (e *Engine) ConfirmAndCommit(ctx context.Context, s *Session) (*CommitReport, error) {
	if state := s.Current(); state != StateReviewPending {
		return nil, &StateError{Op: "confirm_and_commit", State: state}
	}
	exists, err := e.exists(ctx, s)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateFinalization(s.Items, s.ActiveCode, exists); err != nil {
		return nil, err
	}

	code := s.ActiveCode
	items := s.Items
	var lines []CommitLine
	err = e.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.TransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		lines = make([]CommitLine, 0, len(items))
		for _, it := range items {
			if e.recheckStock && it.Type == entity.MovementTypeSale {
				if err := recheckStock(ctx, productRepo, it); err != nil {
					return err
				}
			}
			mov := &entity.Movement{
				Code:      code,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Type:      it.Type,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return fmt.Errorf("insertar movimiento del producto %d: %w", it.ProductID, err)
			}
			lines = append(lines, CommitLine{MovementID: mov.ID, ProductName: it.ProductName, Quantity: it.Quantity})
		}
		return nil
	})
	if err != nil {
		if ledger.IsValidationError(err) {
			return nil, err
		}
		e.log.Error().Err(err).Str("code", code).Int("items", len(items)).Msg("lote revertido")
		return nil, &CommitError{Code: code, Cause: err}
	}

	s.reset(e.now())
	e.log.Info().Str("code", code).Int("movements", len(lines)).Msg("movimientos registrados")
	return &CommitReport{Code: code, Lines: lines}, nil
}

// CancelAll descarta las líneas y deja la sesión vacía. La cabecera ya registrada permanece.
func (e *Engine) CancelAll(s *Session) error {
	state := s.Current()
	if state != StateTransactionOpen && state != StateReviewPending {
		return &StateError{Op: "cancel_all", State: state}
	}
	code := s.ActiveCode
	discarded := len(s.Items)
	s.reset(e.now())
	e.log.Info().Str("code", code).Int("discarded", discarded).Msg("captura cancelada")
	return nil
}

// exists consulta la cabecera solo si hay algo que finalizar; lote vacío o código vacío
// los reporta ValidateFinalization antes de mirar la existencia.
func (e *Engine) exists(ctx context.Context, s *Session) (bool, error) {
	if len(s.Items) == 0 || strings.TrimSpace(s.ActiveCode) == "" {
		return false, nil
	}
	ok, err := e.transactions.ExistsByCode(ctx, s.ActiveCode)
	if err != nil {
		return false, fmt.Errorf("verificar transacción %s: %w", s.ActiveCode, err)
	}
	return ok, nil
}

func recheckStock(ctx context.Context, productRepo repository.ProductRepository, it entity.StagedItem) error {
	p, err := productRepo.GetForUpdate(ctx, it.ProductID)
	if err != nil {
		return fmt.Errorf("bloquear producto %d: %w", it.ProductID, err)
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	if p.StockActual.LessThan(it.Quantity) {
		return &ledger.InsufficientStockError{ProductID: it.ProductID, Available: p.StockActual, Requested: it.Quantity}
	}
	return nil
}

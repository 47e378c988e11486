package http

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/workflow"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/ledger"
)

// SessionLocker serializa las peticiones de una misma sesión. Lock devuelve domain.ErrSessionBusy
// si no obtiene el lock a tiempo.
type SessionLocker interface {
	Lock(ctx context.Context, userID int64) (unlock func(), err error)
}

// WorkflowHandler expone el flujo de captura de movimientos. Cada petición carga la sesión del
// usuario, aplica una operación del Engine y la guarda de nuevo, todo bajo el lock del usuario.
type WorkflowHandler struct {
	engine *workflow.Engine
	store  workflow.SessionStore
	locks  SessionLocker
	log    zerolog.Logger
}

// NewWorkflowHandler construye el handler.
func NewWorkflowHandler(engine *workflow.Engine, store workflow.SessionStore, locks SessionLocker, log zerolog.Logger) *WorkflowHandler {
	return &WorkflowHandler{engine: engine, store: store, locks: locks, log: log}
}

type sessionOp func(ctx context.Context, s *workflow.Session) (any, error)

// withSession ejecuta op sobre la sesión del usuario y la persiste si op terminó bien.
func (h *WorkflowHandler) withSession(c *fiber.Ctx, status int, op sessionOp) error {
	userID := GetUserID(c)
	if userID <= 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	ctx := c.UserContext()
	unlock, err := h.locks.Lock(ctx, userID)
	if err != nil {
		h.log.Warn().Err(err).Int64("user_id", userID).Msg("lock de sesión")
		return writeError(c, err)
	}
	defer unlock()

	s, err := h.store.Load(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("cargar sesión")
		return writeError(c, fmt.Errorf("%w: %v", domain.ErrConnectionUnavailable, err))
	}
	out, err := op(ctx, s)
	if err != nil {
		if !ledger.IsValidationError(err) {
			h.log.Warn().Err(err).Int64("user_id", userID).Str("state", string(s.Current())).Str("request_id", GetRequestID(c)).Msg("operación rechazada")
		}
		return writeError(c, err)
	}
	if err := h.store.Save(ctx, s); err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("guardar sesión")
		// una sesión vieja en review_pending podría confirmarse dos veces: mejor vaciarla
		if delErr := h.store.Delete(ctx, userID); delErr != nil {
			h.log.Error().Err(delErr).Int64("user_id", userID).Msg("descartar sesión")
		}
		if _, committed := out.(dto.CommitResponse); !committed {
			return writeError(c, fmt.Errorf("%w: %v", domain.ErrConnectionUnavailable, err))
		}
	}
	if out == nil {
		out = toSessionResponse(s)
	}
	return c.Status(status).JSON(out)
}

// Get godoc
// @Summary      Sesión de captura actual
// @Tags         workflow
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/workflow [get]
func (h *WorkflowHandler) Get(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID <= 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	s, err := h.store.Load(c.UserContext(), userID)
	if err != nil {
		return writeError(c, fmt.Errorf("%w: %v", domain.ErrConnectionUnavailable, err))
	}
	return c.JSON(toSessionResponse(s))
}

// OpenTransaction godoc
// @Summary      Registrar cabecera de transacción
// @Tags         workflow
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenTransactionRequest  true  "code, date, reference"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/workflow/transaction [post]
func (h *WorkflowHandler) OpenTransaction(c *fiber.Ctx) error {
	var in dto.OpenTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if resp := validateStruct(in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	var date time.Time
	if in.Date != nil {
		date = *in.Date
	}
	return h.withSession(c, fiber.StatusCreated, func(ctx context.Context, s *workflow.Session) (any, error) {
		ref, err := h.engine.OpenTransaction(ctx, s, workflow.OpenInput{Code: in.Code, Date: date, Reference: in.Reference})
		if err != nil {
			return nil, err
		}
		return dto.TransactionResponse{ID: ref.ID, Code: ref.Code, Date: ref.Date, Session: toSessionResponse(s)}, nil
	})
}

// StageItem godoc
// @Summary      Agregar producto al lote
// @Tags         workflow
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StageItemRequest  true  "product_id, quantity, movement_type"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/workflow/items [post]
func (h *WorkflowHandler) StageItem(c *fiber.Ctx) error {
	var in dto.StageItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if resp := validateStruct(in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	typ, err := entity.ParseMovementType(in.MovementType)
	if err != nil {
		// tipo desconocido: lo reporta el ledger, después de verificar el producto
		typ = entity.MovementType(in.MovementType)
	}
	cand := ledger.Candidate{ProductID: in.ProductID, Quantity: in.Quantity, Type: typ}
	return h.withSession(c, fiber.StatusCreated, func(ctx context.Context, s *workflow.Session) (any, error) {
		return nil, h.engine.StageItem(ctx, s, cand)
	})
}

// RemoveItem godoc
// @Summary      Quitar producto del lote
// @Tags         workflow
// @Security     Bearer
// @Produce      json
// @Param        index  path  int  true  "posición (0-based)"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/workflow/items/{index} [delete]
func (h *WorkflowHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return badRequest(c, "INVALID_INDEX", "índice inválido")
	}
	return h.withSession(c, fiber.StatusOK, func(_ context.Context, s *workflow.Session) (any, error) {
		return nil, h.engine.RemoveStagedItem(s, index)
	})
}

// RequestReview godoc
// @Summary      Pasar el lote a revisión
// @Tags         workflow
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workflow/review [post]
func (h *WorkflowHandler) RequestReview(c *fiber.Ctx) error {
	return h.withSession(c, fiber.StatusOK, func(ctx context.Context, s *workflow.Session) (any, error) {
		return nil, h.engine.RequestReview(ctx, s)
	})
}

// ReturnToEditing godoc
// @Summary      Volver a edición
// @Tags         workflow
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.SessionResponse
// @Router       /api/workflow/edit [post]
func (h *WorkflowHandler) ReturnToEditing(c *fiber.Ctx) error {
	return h.withSession(c, fiber.StatusOK, func(_ context.Context, s *workflow.Session) (any, error) {
		return nil, h.engine.ReturnToEditing(s)
	})
}

// Confirm godoc
// @Summary      Confirmar y registrar los movimientos
// @Tags         workflow
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.CommitResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/workflow/confirm [post]
func (h *WorkflowHandler) Confirm(c *fiber.Ctx) error {
	return h.withSession(c, fiber.StatusOK, func(ctx context.Context, s *workflow.Session) (any, error) {
		report, err := h.engine.ConfirmAndCommit(ctx, s)
		if err != nil {
			return nil, err
		}
		lines := make([]dto.CommitLineResponse, 0, len(report.Lines))
		for _, l := range report.Lines {
			lines = append(lines, dto.CommitLineResponse{MovementID: l.MovementID, ProductName: l.ProductName, Quantity: l.Quantity})
		}
		return dto.CommitResponse{Code: report.Code, Lines: lines, Session: toSessionResponse(s)}, nil
	})
}

// Cancel godoc
// @Summary      Cancelar la captura
// @Description  Descarta las líneas; la cabecera ya registrada no se elimina.
// @Tags         workflow
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.SessionResponse
// @Router       /api/workflow/cancel [post]
func (h *WorkflowHandler) Cancel(c *fiber.Ctx) error {
	return h.withSession(c, fiber.StatusOK, func(_ context.Context, s *workflow.Session) (any, error) {
		return nil, h.engine.CancelAll(s)
	})
}

func toSessionResponse(s *workflow.Session) dto.SessionResponse {
	out := dto.SessionResponse{
		State:      string(s.Current()),
		ActiveCode: s.ActiveCode,
		Items:      make([]dto.StagedItemResponse, 0, len(s.Items)),
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		out.UpdatedAt = &t
	}
	for i, it := range s.Items {
		out.Items = append(out.Items, dto.StagedItemResponse{
			Index:         i,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Brand:         it.Brand,
			Quantity:      it.Quantity,
			MovementType:  string(it.Type),
			StockSnapshot: it.StockSnapshot,
		})
	}
	return out
}
